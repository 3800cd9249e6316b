// Package password contains password strength evaluation use cases.
package password

import "math"

// Character class alphabet sizes used for the entropy pool.
const (
	lowercasePool = 26
	uppercasePool = 26
	digitPool     = 10
	symbolPool    = 32
)

// EntropyBits computes the information-theoretic strength of a secret from
// its character-class composition and length. A class contributes its
// alphabet size to the pool only when at least one of its characters is
// present. The empty string scores 0.
func EntropyBits(secret string) float64 {
	if secret == "" {
		return 0
	}

	classes := classifyCharacters(secret)

	poolSize := 0
	if classes.hasLower {
		poolSize += lowercasePool
	}
	if classes.hasUpper {
		poolSize += uppercasePool
	}
	if classes.hasDigit {
		poolSize += digitPool
	}
	if classes.hasSymbol {
		poolSize += symbolPool
	}

	if poolSize == 0 {
		return 0
	}

	return float64(len(secret)) * math.Log2(float64(poolSize))
}

// characterClasses records which character classes appear in a secret.
type characterClasses struct {
	hasLower  bool
	hasUpper  bool
	hasDigit  bool
	hasSymbol bool
}

// classifyCharacters scans a secret and flags every class it contains.
// Anything outside the three ASCII letter/digit ranges counts as a symbol.
func classifyCharacters(secret string) characterClasses {
	var c characterClasses
	for _, r := range secret {
		switch {
		case r >= 'a' && r <= 'z':
			c.hasLower = true
		case r >= 'A' && r <= 'Z':
			c.hasUpper = true
		case r >= '0' && r <= '9':
			c.hasDigit = true
		default:
			c.hasSymbol = true
		}
	}
	return c
}
