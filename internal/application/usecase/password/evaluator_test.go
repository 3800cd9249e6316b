package password

import (
	"context"
	"strings"
	"testing"

	"github.com/dbooster/trustd/internal/domain/entity"
)

// stubOracle returns a fixed breach status for every check.
type stubOracle struct {
	status entity.BreachStatus
}

func (s *stubOracle) Check(_ context.Context, _ string) entity.BreachStatus {
	return s.status
}

func newTestEvaluator(status entity.BreachStatus) *Evaluator {
	return NewEvaluator(
		NewPolicyStore(entity.DefaultPasswordPolicy()),
		&stubOracle{status: status},
	)
}

func TestStrengthBandBoundaries(t *testing.T) {
	tests := []struct {
		score    int
		expected entity.Strength
	}{
		{0, entity.StrengthVeryWeak},
		{19, entity.StrengthVeryWeak},
		{20, entity.StrengthWeak},
		{39, entity.StrengthWeak},
		{40, entity.StrengthFair},
		{59, entity.StrengthFair},
		{60, entity.StrengthGood},
		{79, entity.StrengthGood},
		{80, entity.StrengthStrong},
		{89, entity.StrengthStrong},
		{90, entity.StrengthVeryStrong},
		{100, entity.StrengthVeryStrong},
	}

	for _, tt := range tests {
		t.Run(string(tt.expected), func(t *testing.T) {
			got := entity.StrengthForScore(tt.score)
			if got != tt.expected {
				t.Errorf("StrengthForScore(%d) = %s, expected %s", tt.score, got, tt.expected)
			}
		})
	}
}

func TestEvaluateScoreAlwaysClamped(t *testing.T) {
	evaluator := newTestEvaluator(entity.BreachStatusCompromised)

	secrets := []string{
		"",
		"a",
		"password",
		"aaaaaaaaaaaa",
		"123456",
		"kT8#mQ2$vL5xW9z@pR4&nB7*",
		strings.Repeat("kT8#mQ2$", 16),
	}

	for _, secret := range secrets {
		analysis := evaluator.Evaluate(context.Background(), secret, nil)
		if analysis.Score < 0 || analysis.Score > 100 {
			t.Errorf("Evaluate(%q) score %d out of [0,100]", secret, analysis.Score)
		}
		if analysis.Strength != entity.StrengthForScore(analysis.Score) {
			t.Errorf("Evaluate(%q) strength %s does not match score %d", secret, analysis.Strength, analysis.Score)
		}
	}
}

func TestEvaluateRepeatedCharacterSecret(t *testing.T) {
	evaluator := newTestEvaluator(entity.BreachStatusClean)

	analysis := evaluator.Evaluate(context.Background(), "aaaaaaaaaaaa", nil)

	if analysis.Score >= 40 {
		t.Errorf("expected score < 40 for repeated-character secret, got %d", analysis.Score)
	}
	if !HasWeakStructure("aaaaaaaaaaaa", nil) {
		t.Error("expected repeated-character secret to be flagged as weak structure")
	}
}

func TestEvaluatePersonalInfoPenalty(t *testing.T) {
	evaluator := newTestEvaluator(entity.BreachStatusClean)
	userCtx := &entity.UserContext{Email: "jane@x.com"}

	with := evaluator.Evaluate(context.Background(), "Password-jane-99", userCtx)
	without := evaluator.Evaluate(context.Background(), "Password-jane-99", nil)

	if with.Score >= without.Score {
		t.Errorf("expected personal-info penalty to lower score: with=%d without=%d", with.Score, without.Score)
	}

	found := false
	for _, item := range with.Feedback {
		if strings.Contains(item, "personal information") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected personal-info feedback entry, got %v", with.Feedback)
	}
}

func TestEvaluateCompromisedSecret(t *testing.T) {
	evaluator := newTestEvaluator(entity.BreachStatusCompromised)

	analysis := evaluator.Evaluate(context.Background(), "kT8#mQ2$vL5xW9z@", nil)

	if !analysis.IsCompromised {
		t.Error("expected IsCompromised to be true when the oracle reports a breach")
	}

	clean := newTestEvaluator(entity.BreachStatusClean).Evaluate(context.Background(), "kT8#mQ2$vL5xW9z@", nil)
	if analysis.Score >= clean.Score {
		t.Errorf("expected breach penalty to lower score: compromised=%d clean=%d", analysis.Score, clean.Score)
	}
}

func TestEvaluateOracleUnavailableIsNotClean(t *testing.T) {
	evaluator := newTestEvaluator(entity.BreachStatusUnavailable)

	analysis := evaluator.Evaluate(context.Background(), "kT8#mQ2$vL5xW9z@", nil)

	if analysis.IsCompromised {
		t.Error("unavailable oracle must not mark the secret compromised")
	}

	found := false
	for _, item := range analysis.Feedback {
		if strings.Contains(item, "Breach check unavailable") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an unavailability feedback entry, got %v", analysis.Feedback)
	}
}

func TestEvaluateFeedbackLeadsWithPositiveRemark(t *testing.T) {
	evaluator := newTestEvaluator(entity.BreachStatusClean)

	analysis := evaluator.Evaluate(context.Background(), "kT8#mQ2$vL5xW9z@pR4&", nil)

	if analysis.Score < positiveRemarkThreshold {
		t.Fatalf("expected a strong score for test secret, got %d", analysis.Score)
	}
	if len(analysis.Feedback) == 0 {
		t.Fatal("expected leading positive feedback entry")
	}
	first := analysis.Feedback[0]
	if !strings.HasPrefix(first, "Excellent") && !strings.HasPrefix(first, "Good") {
		t.Errorf("expected positive leading remark, got %q", first)
	}
}

func TestGenerateRoundTrip(t *testing.T) {
	evaluator := newTestEvaluator(entity.BreachStatusClean)

	for i := 0; i < 20; i++ {
		generated, err := evaluator.Generate(16)
		if err != nil {
			t.Fatalf("Generate(16) returned error: %v", err)
		}
		if len(generated) != 16 {
			t.Fatalf("Generate(16) returned %d characters", len(generated))
		}

		classes := classifyCharacters(generated)
		if !classes.hasLower || !classes.hasUpper || !classes.hasDigit || !classes.hasSymbol {
			t.Fatalf("generated password %q missing a required character class", generated)
		}

		analysis := evaluator.Evaluate(context.Background(), generated, nil)
		switch analysis.Strength {
		case entity.StrengthGood, entity.StrengthStrong, entity.StrengthVeryStrong:
		default:
			t.Errorf("generated password %q scored %d (%s), expected at least good",
				generated, analysis.Score, analysis.Strength)
		}
	}
}

func TestGenerateLengthFloor(t *testing.T) {
	evaluator := newTestEvaluator(entity.BreachStatusClean)

	generated, err := evaluator.Generate(2)
	if err != nil {
		t.Fatalf("Generate(2) returned error: %v", err)
	}

	policy := entity.DefaultPasswordPolicy()
	if len(generated) < policy.MinLength {
		t.Errorf("Generate(2) returned %d characters, expected at least %d", len(generated), policy.MinLength)
	}
}
