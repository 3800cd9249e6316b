package password

import (
	"strings"

	"github.com/dbooster/trustd/internal/domain/entity"
)

// keyboardWalks are adjacency substrings that betray a keyboard-walk secret.
var keyboardWalks = []string{
	"qwerty", "qwertz", "azerty", "asdf", "asdfgh", "zxcv", "zxcvbn",
	"1qaz", "2wsx", "qaz", "wsx",
}

// roleWords are generic account words that appear in low-effort secrets.
var roleWords = []string{"password", "admin", "login", "root", "user"}

// minContextTokenLength is the shortest name token matched against a secret.
const minContextTokenLength = 3

// HasWeakStructure reports whether a secret shows a low-entropy structural
// weakness that raw entropy underestimates. Each rule is checked
// independently; any single hit flags the secret.
func HasWeakStructure(secret string, userCtx *entity.UserContext) bool {
	if secret == "" {
		return false
	}

	lower := strings.ToLower(secret)

	if allIdentical(secret) {
		return true
	}
	if isSequentialRun(lower) {
		return true
	}
	for _, walk := range keyboardWalks {
		if strings.Contains(lower, walk) {
			return true
		}
	}
	for _, word := range roleWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	if userCtx != nil && ContainsPersonalInfo(secret, userCtx) {
		return true
	}

	return false
}

// ContainsPersonalInfo reports whether the secret leaks the user's email
// local-part, name tokens, or username. Matching is case-insensitive.
func ContainsPersonalInfo(secret string, userCtx *entity.UserContext) bool {
	if userCtx == nil {
		return false
	}

	lower := strings.ToLower(secret)

	if userCtx.Email != "" {
		localPart := strings.ToLower(strings.SplitN(userCtx.Email, "@", 2)[0])
		if len(localPart) >= minContextTokenLength && strings.Contains(lower, localPart) {
			return true
		}
	}
	if userCtx.Name != "" {
		for _, token := range strings.Fields(strings.ToLower(userCtx.Name)) {
			if len(token) >= minContextTokenLength && strings.Contains(lower, token) {
				return true
			}
		}
	}
	if userCtx.Username != "" {
		username := strings.ToLower(userCtx.Username)
		if len(username) >= minContextTokenLength && strings.Contains(lower, username) {
			return true
		}
	}

	return false
}

// ConsecutiveRunLength returns the length of the longest run of identical
// adjacent characters in the secret.
func ConsecutiveRunLength(secret string) int {
	if secret == "" {
		return 0
	}

	runes := []rune(secret)
	longest, current := 1, 1
	for i := 1; i < len(runes); i++ {
		if runes[i] == runes[i-1] {
			current++
			if current > longest {
				longest = current
			}
		} else {
			current = 1
		}
	}
	return longest
}

// allIdentical reports whether every character in the secret is the same.
func allIdentical(secret string) bool {
	runes := []rune(secret)
	for i := 1; i < len(runes); i++ {
		if runes[i] != runes[0] {
			return false
		}
	}
	return len(runes) > 1
}

// isSequentialRun reports whether the whole secret is a single ascending or
// descending run of digits or letters ("12345", "edcba").
func isSequentialRun(lower string) bool {
	runes := []rune(lower)
	if len(runes) < 3 {
		return false
	}

	ascending, descending := true, true
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		if !isDigitOrLetter(prev) || !isDigitOrLetter(cur) {
			return false
		}
		if cur != prev+1 {
			ascending = false
		}
		if cur != prev-1 {
			descending = false
		}
	}
	return ascending || descending
}

func isDigitOrLetter(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z')
}
