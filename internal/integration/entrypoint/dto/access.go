package dto

// SignupRequest represents the request body for the signup gate.
type SignupRequest struct {
	Email    string               `json:"email" binding:"required,email"`
	Name     string               `json:"name" binding:"required,min=1,max=100"`
	Password string               `json:"password" binding:"required"`
	Signals  DeviceSignalsRequest `json:"signals"`
}

// SignupResponse represents a passed signup gate.
type SignupResponse struct {
	Analysis     PasswordAnalysisResponse `json:"analysis"`
	PasswordHash string                   `json:"password_hash"`
	Session      SessionResponse          `json:"session"`
}

// LoginRequest represents the request body for the login gate.
type LoginRequest struct {
	Email              string               `json:"email" binding:"required,email"`
	Password           string               `json:"password" binding:"required"`
	StoredPasswordHash string               `json:"stored_password_hash" binding:"required"`
	Signals            DeviceSignalsRequest `json:"signals"`
}

// LoginResponse represents a passed login gate.
type LoginResponse struct {
	Session SessionResponse `json:"session"`
}
