package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cucumber/godog"

	"github.com/dbooster/trustd/test/integration/mock"
)

func registerSecuritySteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the remote authorities are healthy$`, authoritiesHealthy)
	ctx.Step(`^the rate limit authority denies all requests$`, rateAuthorityDenies)
	ctx.Step(`^the rate limit authority is unreachable$`, rateAuthorityDown)
	ctx.Step(`^the password "([^"]*)" is known to be breached$`, passwordIsBreached)
	ctx.Step(`^I analyze the password "([^"]*)"$`, analyzePassword)
	ctx.Step(`^I sign up with email "([^"]*)" and password "([^"]*)"$`, signUp)
	ctx.Step(`^I create a session$`, createSession)
	ctx.Step(`^I validate the session$`, validateSession)
	ctx.Step(`^I revoke the session$`, revokeSession)
	ctx.Step(`^the stored validation record is corrupted$`, corruptValidationRecord)
	ctx.Step(`^the response status should be (\d+)$`, responseStatusShouldBe)
	ctx.Step(`^the analysis score should be below (\d+)$`, scoreShouldBeBelow)
	ctx.Step(`^the analysis score should be at least (\d+)$`, scoreShouldBeAtLeast)
	ctx.Step(`^the analysis should include feedback$`, analysisShouldIncludeFeedback)
	ctx.Step(`^the analysis should flag the password as compromised$`, analysisShouldFlagCompromised)
	ctx.Step(`^the response should contain a session token$`, responseShouldContainSession)
	ctx.Step(`^the session should be reported valid$`, sessionShouldBeValid)
	ctx.Step(`^the session should be reported invalid$`, sessionShouldBeInvalid)
	ctx.Step(`^the session should be reported invalid with reason "([^"]*)"$`, sessionShouldBeInvalidWithReason)
}

func (tc *TestContext) post(path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	resp, err := tc.client.Post(tc.server.URL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	tc.status = resp.StatusCode
	tc.body = nil
	return json.NewDecoder(resp.Body).Decode(&tc.body)
}

func (tc *TestContext) delete(path string) error {
	req, err := http.NewRequest(http.MethodDelete, tc.server.URL+path, nil)
	if err != nil {
		return err
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	tc.status = resp.StatusCode
	tc.body = nil
	return json.NewDecoder(resp.Body).Decode(&tc.body)
}

func testSignals() map[string]any {
	return map[string]any{
		"user_agent":       "godog-integration",
		"screen":           "1920x1080x24",
		"language":         "en-US",
		"timezone":         "UTC",
		"cpu_count":        8,
		"platform":         "linux",
		"transport_secure": true,
		"has_crypto":       true,
		"secure_context":   true,
	}
}

func authoritiesHealthy(ctx context.Context) error {
	GetTestContext(ctx).rateMock.SetMode(mock.ModeAllow)
	return nil
}

func rateAuthorityDenies(ctx context.Context) error {
	GetTestContext(ctx).rateMock.SetMode(mock.ModeDeny)
	return nil
}

func rateAuthorityDown(ctx context.Context) error {
	GetTestContext(ctx).rateMock.SetMode(mock.ModeDown)
	return nil
}

func passwordIsBreached(ctx context.Context, password string) error {
	GetTestContext(ctx).breachMock.AddBreached(password)
	return nil
}

func analyzePassword(ctx context.Context, password string) error {
	return GetTestContext(ctx).post("/api/v1/password/analyze", map[string]any{
		"password": password,
	})
}

func signUp(ctx context.Context, email, password string) error {
	return GetTestContext(ctx).post("/api/v1/signup", map[string]any{
		"email":    email,
		"name":     "Integration Tester",
		"password": password,
		"signals":  testSignals(),
	})
}

func createSession(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if err := tc.post("/api/v1/sessions", map[string]any{"signals": testSignals()}); err != nil {
		return err
	}
	if id, ok := tc.body["id"].(string); ok {
		tc.sessionID = id
	}
	if token, ok := tc.body["token"].(string); ok {
		tc.sessionToken = token
	}
	return nil
}

func validateSession(ctx context.Context) error {
	tc := GetTestContext(ctx)
	return tc.post("/api/v1/sessions/validate", map[string]any{
		"session_id": tc.sessionID,
		"token":      tc.sessionToken,
		"signals":    testSignals(),
	})
}

func revokeSession(ctx context.Context) error {
	tc := GetTestContext(ctx)
	return tc.delete("/api/v1/sessions/" + tc.sessionID)
}

// corruptValidationRecord flips the stored checksum so the next validation
// detects tampering.
func corruptValidationRecord(ctx context.Context) error {
	tc := GetTestContext(ctx)
	key := "trustd:validation:" + tc.sessionID

	stored, err := tc.redis.Get(key)
	if err != nil {
		return fmt.Errorf("no validation record stored for session %q: %w", tc.sessionID, err)
	}

	var record map[string]any
	if err := json.Unmarshal([]byte(stored), &record); err != nil {
		return err
	}
	record["checksum"] = "corrupted"

	mutated, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return tc.redis.Set(key, string(mutated))
}

func responseStatusShouldBe(ctx context.Context, expected int) error {
	tc := GetTestContext(ctx)
	if tc.status != expected {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expected, tc.status, tc.body)
	}
	return nil
}

func score(tc *TestContext) (int, error) {
	raw, ok := tc.body["score"].(float64)
	if !ok {
		return 0, fmt.Errorf("response has no score field: %v", tc.body)
	}
	return int(raw), nil
}

func scoreShouldBeBelow(ctx context.Context, limit int) error {
	s, err := score(GetTestContext(ctx))
	if err != nil {
		return err
	}
	if s >= limit {
		return fmt.Errorf("expected score below %d, got %d", limit, s)
	}
	return nil
}

func scoreShouldBeAtLeast(ctx context.Context, floor int) error {
	s, err := score(GetTestContext(ctx))
	if err != nil {
		return err
	}
	if s < floor {
		return fmt.Errorf("expected score of at least %d, got %d", floor, s)
	}
	return nil
}

func analysisShouldIncludeFeedback(ctx context.Context) error {
	tc := GetTestContext(ctx)
	feedback, ok := tc.body["feedback"].([]any)
	if !ok || len(feedback) == 0 {
		return fmt.Errorf("expected non-empty feedback, got %v", tc.body["feedback"])
	}
	return nil
}

func analysisShouldFlagCompromised(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if compromised, _ := tc.body["is_compromised"].(bool); !compromised {
		return fmt.Errorf("expected is_compromised to be true (body: %v)", tc.body)
	}
	return nil
}

func responseShouldContainSession(ctx context.Context) error {
	tc := GetTestContext(ctx)
	session, ok := tc.body["session"].(map[string]any)
	if !ok {
		return fmt.Errorf("response has no session object: %v", tc.body)
	}
	if token, _ := session["token"].(string); token == "" {
		return fmt.Errorf("session has no token: %v", session)
	}
	return nil
}

func sessionShouldBeValid(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if valid, _ := tc.body["valid"].(bool); !valid {
		return fmt.Errorf("expected valid session, got %v", tc.body)
	}
	return nil
}

func sessionShouldBeInvalid(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if valid, _ := tc.body["valid"].(bool); valid {
		return fmt.Errorf("expected invalid session, got %v", tc.body)
	}
	return nil
}

func sessionShouldBeInvalidWithReason(ctx context.Context, reason string) error {
	tc := GetTestContext(ctx)
	if valid, _ := tc.body["valid"].(bool); valid {
		return fmt.Errorf("expected invalid session, got %v", tc.body)
	}
	if got, _ := tc.body["reason"].(string); got != reason {
		return fmt.Errorf("expected reason %q, got %q", reason, got)
	}
	return nil
}
