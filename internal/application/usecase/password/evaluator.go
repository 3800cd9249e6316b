package password

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/dbooster/trustd/internal/application/adapter"
	"github.com/dbooster/trustd/internal/domain/entity"
)

// Scoring weights. Points are additive, penalties subtractive, and the final
// score is clamped to [0,100].
const (
	maxLengthPoints    = 25
	pointsPerCharacter = 2
	lowercasePoints    = 10
	uppercasePoints    = 10
	digitPoints        = 10
	symbolPoints       = 15
	maxEntropyBonus    = 20
	entropyDivisor     = 3

	repeatPenalty       = 10
	structurePenalty    = 15
	personalInfoPenalty = 10
	commonPenalty       = 20
	breachPenalty       = 25

	positiveRemarkThreshold  = 60
	excellentRemarkThreshold = 80
)

// Evaluator composes entropy scoring, structural pattern detection, and the
// breach oracle into a single password analysis.
type Evaluator struct {
	policies *PolicyStore
	oracle   adapter.BreachOracle
}

// NewEvaluator creates a new password strength evaluator.
func NewEvaluator(policies *PolicyStore, oracle adapter.BreachOracle) *Evaluator {
	return &Evaluator{
		policies: policies,
		oracle:   oracle,
	}
}

// Evaluate analyzes a candidate secret against the current policy. It never
// returns an error: the breach oracle degrades internally, and every other
// step is pure local computation.
func (e *Evaluator) Evaluate(ctx context.Context, secret string, userCtx *entity.UserContext) *entity.PasswordAnalysis {
	policy := e.policies.Get()
	lowered := strings.ToLower(secret)
	classes := classifyCharacters(secret)
	entropyBits := EntropyBits(secret)

	score := 0.0
	var violations []string

	// Length.
	score += math.Min(maxLengthPoints, float64(pointsPerCharacter*len(secret)))
	if len(secret) < policy.MinLength {
		violations = append(violations, fmt.Sprintf("Use at least %d characters", policy.MinLength))
	}

	// Character-class presence.
	if classes.hasLower {
		score += lowercasePoints
	} else if policy.RequireLowercase {
		violations = append(violations, "Add lowercase letters")
	}
	if classes.hasUpper {
		score += uppercasePoints
	} else if policy.RequireUppercase {
		violations = append(violations, "Add uppercase letters")
	}
	if classes.hasDigit {
		score += digitPoints
	} else if policy.RequireNumbers {
		violations = append(violations, "Add numbers")
	}
	if classes.hasSymbol {
		score += symbolPoints
	} else if policy.RequireSymbols {
		violations = append(violations, "Add symbols")
	}

	// Entropy bonus.
	score += math.Min(maxEntropyBonus, entropyBits/entropyDivisor)

	// Consecutive-repeat penalty.
	if ConsecutiveRunLength(secret) > policy.MaxConsecutiveRepeats {
		score -= repeatPenalty
		violations = append(violations, fmt.Sprintf("Avoid more than %d repeated characters in a row", policy.MaxConsecutiveRepeats))
	}

	// Structural-pattern penalty.
	if policy.PreventCommonPatterns && HasWeakStructure(secret, nil) {
		score -= structurePenalty
		violations = append(violations, "Avoid predictable patterns like sequences and keyboard walks")
	}

	// Personal-info penalty.
	if policy.PreventPersonalInfo && ContainsPersonalInfo(secret, userCtx) {
		score -= personalInfoPenalty
		violations = append(violations, "Avoid using personal information in your password")
	}

	// Known-common-password penalty, checked offline for responsiveness.
	if IsCommonPassword(lowered) {
		score -= commonPenalty
		violations = append(violations, "This is a commonly used password")
	}

	// Breach penalty.
	compromised := false
	switch e.oracle.Check(ctx, secret) {
	case entity.BreachStatusCompromised:
		compromised = true
		score -= breachPenalty
		violations = append(violations, "This password has appeared in a data breach")
	case entity.BreachStatusUnavailable:
		slog.Warn("breach check unavailable, skipping breach penalty")
		violations = append(violations, "Breach check unavailable; password could not be verified against known breaches")
	}

	final := clampScore(int(math.Round(score)))

	feedback := make([]string, 0, len(violations)+1)
	if final >= positiveRemarkThreshold {
		if final >= excellentRemarkThreshold {
			feedback = append(feedback, "Excellent password!")
		} else {
			feedback = append(feedback, "Good password")
		}
	}
	feedback = append(feedback, violations...)

	return &entity.PasswordAnalysis{
		Score:         final,
		Strength:      entity.StrengthForScore(final),
		Feedback:      feedback,
		IsCompromised: compromised,
		EntropyBits:   entropyBits,
	}
}

// clampScore bounds a score to [0,100] even when constituent penalties would
// drive it out of range.
func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
