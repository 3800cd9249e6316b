package password

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Generation alphabets, one per character class.
const (
	lowercaseAlphabet = "abcdefghijklmnopqrstuvwxyz"
	uppercaseAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitAlphabet     = "0123456789"
	symbolAlphabet    = "!@#$%^&*()-_=+[]{};:,.<>?"
)

// Generate builds a random password of the requested length that is
// guaranteed to contain one character from each policy-required class, with
// the remainder drawn from the combined alphabet. The result is shuffled so
// the guaranteed characters are not positionally predictable.
func (e *Evaluator) Generate(length int) (string, error) {
	policy := e.policies.Get()

	var required []string
	if policy.RequireLowercase {
		required = append(required, lowercaseAlphabet)
	}
	if policy.RequireUppercase {
		required = append(required, uppercaseAlphabet)
	}
	if policy.RequireNumbers {
		required = append(required, digitAlphabet)
	}
	if policy.RequireSymbols {
		required = append(required, symbolAlphabet)
	}
	if len(required) == 0 {
		required = append(required, lowercaseAlphabet)
	}

	if length < len(required) {
		length = len(required)
	}
	if length < policy.MinLength {
		length = policy.MinLength
	}

	combined := lowercaseAlphabet + uppercaseAlphabet + digitAlphabet + symbolAlphabet

	chars := make([]byte, 0, length)
	for _, alphabet := range required {
		c, err := randomChar(alphabet)
		if err != nil {
			return "", fmt.Errorf("failed to generate password: %w", err)
		}
		chars = append(chars, c)
	}
	for len(chars) < length {
		c, err := randomChar(combined)
		if err != nil {
			return "", fmt.Errorf("failed to generate password: %w", err)
		}
		chars = append(chars, c)
	}

	if err := shuffle(chars); err != nil {
		return "", fmt.Errorf("failed to generate password: %w", err)
	}

	return string(chars), nil
}

// randomChar picks one character from an alphabet using crypto/rand.
func randomChar(alphabet string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
	if err != nil {
		return 0, err
	}
	return alphabet[n.Int64()], nil
}

// shuffle performs a Fisher-Yates shuffle driven by crypto/rand.
func shuffle(chars []byte) error {
	for i := len(chars) - 1; i > 0; i-- {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return err
		}
		j := n.Int64()
		chars[i], chars[j] = chars[j], chars[i]
	}
	return nil
}
