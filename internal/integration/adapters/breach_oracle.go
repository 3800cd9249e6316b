// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dbooster/trustd/internal/domain/entity"
)

// hashPrefixLength is the number of hex digest characters disclosed to the
// remote oracle under the k-anonymity protocol. The full secret and full
// hash never leave this process.
const hashPrefixLength = 5

// fallbackBreachedHashes is a small embedded denylist of SHA-1 digests of
// known-breached passwords, consulted when the remote oracle is unreachable.
var fallbackBreachedHashes = map[string]struct{}{
	// password
	"5baa61e4c9b93f3f0682250b6cf8331b7ee68fd8": {},
	// 123456
	"7c4a8d09ca3762af61e59520943dc26494f8941b": {},
	// 12345678
	"7c222fb2927d828af22f592134e8932480637c0d": {},
	// qwerty
	"b1b3773a05c0ed0176787a4f1574ff0075f7521e": {},
	// abc123
	"6367c48dd193d56ea7b0baad25b19455e529f5ee": {},
	// password1
	"e38ad214943daad1d64c102faec29de4afe9da3d": {},
	// 111111
	"3d4f2bf07dc1be38b20cd6e46949a1071f9d0e3d": {},
	// letmein
	"b7a875fc1ea228b9061041b7cec4bd3c52ab3ce3": {},
}

// BreachOracleClient checks secrets against a remote breach corpus using the
// range endpoint of the k-anonymity protocol. It implements
// adapter.BreachOracle: all failures degrade to BreachStatusUnavailable or
// the embedded fallback, never to an error.
type BreachOracleClient struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

// NewBreachOracleClient creates a breach oracle client with a bounded
// request timeout.
func NewBreachOracleClient(baseURL, userAgent string, client *http.Client) *BreachOracleClient {
	return &BreachOracleClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		client:    client,
	}
}

// Check reports whether the secret appears in the breach corpus. Only the
// 5-character digest prefix is sent over the wire; the suffix comparison
// happens locally.
func (c *BreachOracleClient) Check(ctx context.Context, secret string) entity.BreachStatus {
	digest := sha1.Sum([]byte(secret))
	hexDigest := strings.ToUpper(hex.EncodeToString(digest[:]))
	prefix, suffix := hexDigest[:hashPrefixLength], hexDigest[hashPrefixLength:]

	status, err := c.queryRange(ctx, prefix, suffix)
	if err != nil {
		slog.Warn("breach oracle unreachable, using embedded fallback", "error", err)
		return c.fallback(hexDigest)
	}
	return status
}

// queryRange fetches the suffix set for a prefix and matches locally. A
// malformed response line is skipped; it can hide a breached suffix, so a
// response that yields no parseable lines at all is treated as an error,
// not as a clean verdict.
func (c *BreachOracleClient) queryRange(ctx context.Context, prefix, suffix string) (entity.BreachStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/range/"+prefix, nil)
	if err != nil {
		return entity.BreachStatusUnavailable, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Add-Padding", "true")

	resp, err := c.client.Do(req)
	if err != nil {
		return entity.BreachStatusUnavailable, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return entity.BreachStatusUnavailable, fmt.Errorf("unexpected status %d from breach oracle", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return entity.BreachStatusUnavailable, err
	}

	lines := strings.Split(strings.ReplaceAll(string(body), "\r\n", "\n"), "\n")
	parsed := 0
	for _, line := range lines {
		candidate, _, found := strings.Cut(strings.TrimSpace(line), ":")
		if !found || candidate == "" {
			continue
		}
		parsed++
		if strings.EqualFold(candidate, suffix) {
			return entity.BreachStatusCompromised, nil
		}
	}

	if parsed == 0 && len(strings.TrimSpace(string(body))) > 0 {
		return entity.BreachStatusUnavailable, fmt.Errorf("unparseable breach oracle response")
	}

	return entity.BreachStatusClean, nil
}

// fallback consults the embedded denylist. A miss here means the check was
// unavailable, not that the secret is clean.
func (c *BreachOracleClient) fallback(hexDigest string) entity.BreachStatus {
	if _, ok := fallbackBreachedHashes[strings.ToLower(hexDigest)]; ok {
		return entity.BreachStatusCompromised
	}
	return entity.BreachStatusUnavailable
}
