// Package entity defines the core business entities for the domain layer.
package entity

// Strength represents the banded strength of an analyzed password.
type Strength string

const (
	StrengthVeryWeak   Strength = "very-weak"
	StrengthWeak       Strength = "weak"
	StrengthFair       Strength = "fair"
	StrengthGood       Strength = "good"
	StrengthStrong     Strength = "strong"
	StrengthVeryStrong Strength = "very-strong"
)

// StrengthForScore maps a clamped [0,100] score to its strength band.
func StrengthForScore(score int) Strength {
	switch {
	case score < 20:
		return StrengthVeryWeak
	case score < 40:
		return StrengthWeak
	case score < 60:
		return StrengthFair
	case score < 80:
		return StrengthGood
	case score < 90:
		return StrengthStrong
	default:
		return StrengthVeryStrong
	}
}

// BreachStatus is the outcome of a breach corpus lookup. Unavailable means
// the check could not be completed and must never be read as "clean".
type BreachStatus int

const (
	BreachStatusClean BreachStatus = iota
	BreachStatusCompromised
	BreachStatusUnavailable
)

// String returns a human-readable representation of the breach status.
func (s BreachStatus) String() string {
	switch s {
	case BreachStatusClean:
		return "clean"
	case BreachStatusCompromised:
		return "compromised"
	case BreachStatusUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// PasswordAnalysis is the immutable result of a single password evaluation.
// It is created per evaluation call and never persisted.
type PasswordAnalysis struct {
	Score         int
	Strength      Strength
	Feedback      []string
	IsCompromised bool
	EntropyBits   float64
}

// PasswordPolicy is the process-wide password policy. It is read by every
// evaluation and mutated only through an explicit administrative update.
type PasswordPolicy struct {
	MinLength             int
	RequireUppercase      bool
	RequireLowercase      bool
	RequireNumbers        bool
	RequireSymbols        bool
	MaxConsecutiveRepeats int
	PreventCommonPatterns bool
	PreventPersonalInfo   bool
}

// DefaultPasswordPolicy returns the policy applied when none is configured.
func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{
		MinLength:             12,
		RequireUppercase:      true,
		RequireLowercase:      true,
		RequireNumbers:        true,
		RequireSymbols:        true,
		MaxConsecutiveRepeats: 2,
		PreventCommonPatterns: true,
		PreventPersonalInfo:   true,
	}
}

// UserContext carries the caller-supplied personal signals checked for
// personal-info leakage during evaluation. All fields are optional.
type UserContext struct {
	Email    string
	Name     string
	Username string
}
