package dto

import "github.com/dbooster/trustd/internal/domain/entity"

// UserContextRequest carries optional personal signals the analysis checks
// the password against.
type UserContextRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// AnalyzePasswordRequest represents the request body for password analysis.
type AnalyzePasswordRequest struct {
	Password    string              `json:"password" binding:"required"`
	UserContext *UserContextRequest `json:"user_context"`
}

// PasswordAnalysisResponse represents the outcome of a password analysis.
type PasswordAnalysisResponse struct {
	Score         int      `json:"score"`
	Strength      string   `json:"strength"`
	Feedback      []string `json:"feedback"`
	IsCompromised bool     `json:"is_compromised"`
	EntropyBits   float64  `json:"entropy_bits"`
}

// GeneratePasswordRequest represents the request body for password generation.
type GeneratePasswordRequest struct {
	Length int `json:"length"`
}

// GeneratePasswordResponse carries a freshly generated password and its
// analysis.
type GeneratePasswordResponse struct {
	Password string                   `json:"password"`
	Analysis PasswordAnalysisResponse `json:"analysis"`
}

// PasswordPolicyRequest represents the request body for a policy update.
type PasswordPolicyRequest struct {
	MinLength             int  `json:"min_length" binding:"required,min=1"`
	RequireUppercase      bool `json:"require_uppercase"`
	RequireLowercase      bool `json:"require_lowercase"`
	RequireNumbers        bool `json:"require_numbers"`
	RequireSymbols        bool `json:"require_symbols"`
	MaxConsecutiveRepeats int  `json:"max_consecutive_repeats"`
	PreventCommonPatterns bool `json:"prevent_common_patterns"`
	PreventPersonalInfo   bool `json:"prevent_personal_info"`
}

// PasswordPolicyResponse represents the active password policy.
type PasswordPolicyResponse struct {
	MinLength             int  `json:"min_length"`
	RequireUppercase      bool `json:"require_uppercase"`
	RequireLowercase      bool `json:"require_lowercase"`
	RequireNumbers        bool `json:"require_numbers"`
	RequireSymbols        bool `json:"require_symbols"`
	MaxConsecutiveRepeats int  `json:"max_consecutive_repeats"`
	PreventCommonPatterns bool `json:"prevent_common_patterns"`
	PreventPersonalInfo   bool `json:"prevent_personal_info"`
}

// ToPasswordAnalysisResponse converts a domain analysis to its response DTO.
func ToPasswordAnalysisResponse(analysis *entity.PasswordAnalysis) PasswordAnalysisResponse {
	feedback := analysis.Feedback
	if feedback == nil {
		feedback = []string{}
	}
	return PasswordAnalysisResponse{
		Score:         analysis.Score,
		Strength:      string(analysis.Strength),
		Feedback:      feedback,
		IsCompromised: analysis.IsCompromised,
		EntropyBits:   analysis.EntropyBits,
	}
}

// ToUserContext converts the request DTO to a domain user context. A nil
// request maps to nil so the evaluator skips personal-info checks.
func (r *UserContextRequest) ToUserContext() *entity.UserContext {
	if r == nil {
		return nil
	}
	return &entity.UserContext{
		Email:    r.Email,
		Name:     r.Name,
		Username: r.Username,
	}
}

// ToPasswordPolicy converts the request DTO to a domain policy.
func (r *PasswordPolicyRequest) ToPasswordPolicy() entity.PasswordPolicy {
	return entity.PasswordPolicy{
		MinLength:             r.MinLength,
		RequireUppercase:      r.RequireUppercase,
		RequireLowercase:      r.RequireLowercase,
		RequireNumbers:        r.RequireNumbers,
		RequireSymbols:        r.RequireSymbols,
		MaxConsecutiveRepeats: r.MaxConsecutiveRepeats,
		PreventCommonPatterns: r.PreventCommonPatterns,
		PreventPersonalInfo:   r.PreventPersonalInfo,
	}
}

// ToPasswordPolicyResponse converts a domain policy to its response DTO.
func ToPasswordPolicyResponse(policy entity.PasswordPolicy) PasswordPolicyResponse {
	return PasswordPolicyResponse{
		MinLength:             policy.MinLength,
		RequireUppercase:      policy.RequireUppercase,
		RequireLowercase:      policy.RequireLowercase,
		RequireNumbers:        policy.RequireNumbers,
		RequireSymbols:        policy.RequireSymbols,
		MaxConsecutiveRepeats: policy.MaxConsecutiveRepeats,
		PreventCommonPatterns: policy.PreventCommonPatterns,
		PreventPersonalInfo:   policy.PreventPersonalInfo,
	}
}
