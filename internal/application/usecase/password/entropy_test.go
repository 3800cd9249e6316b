// Package password contains password strength evaluation use cases.
package password

import (
	"math"
	"testing"
)

func TestEntropyBits(t *testing.T) {
	tests := []struct {
		name     string
		secret   string
		expected float64
	}{
		{
			name:     "empty string short-circuits to zero",
			secret:   "",
			expected: 0,
		},
		{
			name:     "lowercase only uses 26-character pool",
			secret:   "abcdef",
			expected: 6 * math.Log2(26),
		},
		{
			name:     "lowercase and digits combine pools",
			secret:   "abc123",
			expected: 6 * math.Log2(36),
		},
		{
			name:     "all four classes combine pools",
			secret:   "aA1!",
			expected: 4 * math.Log2(94),
		},
		{
			name:     "digits only",
			secret:   "123456",
			expected: 6 * math.Log2(10),
		},
		{
			name:     "symbols only",
			secret:   "!!!",
			expected: 3 * math.Log2(32),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EntropyBits(tt.secret)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("EntropyBits(%q) = %f, expected %f", tt.secret, got, tt.expected)
			}
		})
	}
}

func TestEntropyBitsGrowsWithLength(t *testing.T) {
	short := EntropyBits("abcd")
	long := EntropyBits("abcdabcd")
	if long <= short {
		t.Errorf("expected longer secret to score higher, got %f <= %f", long, short)
	}
}
