package password

import (
	"testing"

	"github.com/dbooster/trustd/internal/domain/entity"
)

func TestHasWeakStructure(t *testing.T) {
	tests := []struct {
		name     string
		secret   string
		userCtx  *entity.UserContext
		expected bool
	}{
		{
			name:     "all identical characters",
			secret:   "aaaaaaaaaaaa",
			expected: true,
		},
		{
			name:     "ascending digit run",
			secret:   "123456",
			expected: true,
		},
		{
			name:     "descending letter run",
			secret:   "fedcba",
			expected: true,
		},
		{
			name:     "keyboard walk qwerty",
			secret:   "Xqwerty9!",
			expected: true,
		},
		{
			name:     "keyboard walk asdf",
			secret:   "myasdfkey",
			expected: true,
		},
		{
			name:     "role word password",
			secret:   "MyPassword2024",
			expected: true,
		},
		{
			name:     "role word admin",
			secret:   "superADMIN1",
			expected: true,
		},
		{
			name:     "email local-part leaked",
			secret:   "Secret-jane-99",
			userCtx:  &entity.UserContext{Email: "jane@x.com"},
			expected: true,
		},
		{
			name:     "strong random secret",
			secret:   "kT8#mQ2$vL5x",
			expected: false,
		},
		{
			name:     "empty string",
			secret:   "",
			expected: false,
		},
		{
			name:     "mixed non-sequential digits",
			secret:   "x7g2k9w4",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HasWeakStructure(tt.secret, tt.userCtx)
			if got != tt.expected {
				t.Errorf("HasWeakStructure(%q) = %v, expected %v", tt.secret, got, tt.expected)
			}
		})
	}
}

func TestContainsPersonalInfo(t *testing.T) {
	tests := []struct {
		name     string
		secret   string
		userCtx  *entity.UserContext
		expected bool
	}{
		{
			name:     "email local-part match is case-insensitive",
			secret:   "Password-JANE-99",
			userCtx:  &entity.UserContext{Email: "jane@x.com"},
			expected: true,
		},
		{
			name:     "name token of three or more characters matches",
			secret:   "ana2024!",
			userCtx:  &entity.UserContext{Name: "Ana Silva"},
			expected: true,
		},
		{
			name:     "short name tokens are ignored",
			secret:   "bo2024!xyz",
			userCtx:  &entity.UserContext{Name: "Bo Li"},
			expected: false,
		},
		{
			name:     "username match",
			secret:   "xXdbwizardXx",
			userCtx:  &entity.UserContext{Username: "dbwizard"},
			expected: true,
		},
		{
			name:     "nil context never matches",
			secret:   "anything",
			userCtx:  nil,
			expected: false,
		},
		{
			name:     "unrelated context",
			secret:   "kT8#mQ2$vL5x",
			userCtx:  &entity.UserContext{Email: "jane@x.com", Name: "Jane Doe", Username: "jdoe99"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ContainsPersonalInfo(tt.secret, tt.userCtx)
			if got != tt.expected {
				t.Errorf("ContainsPersonalInfo(%q) = %v, expected %v", tt.secret, got, tt.expected)
			}
		})
	}
}

func TestConsecutiveRunLength(t *testing.T) {
	tests := []struct {
		secret   string
		expected int
	}{
		{"", 0},
		{"a", 1},
		{"abc", 1},
		{"aabbb", 3},
		{"aaaa", 4},
		{"xyzzy", 2},
		{"aabbaaa", 3},
	}

	for _, tt := range tests {
		t.Run(tt.secret, func(t *testing.T) {
			got := ConsecutiveRunLength(tt.secret)
			if got != tt.expected {
				t.Errorf("ConsecutiveRunLength(%q) = %d, expected %d", tt.secret, got, tt.expected)
			}
		})
	}
}
