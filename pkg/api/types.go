package api

// TokenTypeBearer is the only token type issued by the login endpoint.
const TokenTypeBearer = "bearer"

// Credentials is the body of POST /signup and the JSON form of POST /login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// MessageResponse is a plain confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in,omitempty"` // seconds
}

// AnalyzeRequest is the body of POST /analyze.
type AnalyzeRequest struct {
	Text string `json:"text"`
}

// AnalyzeResponse carries the natural-language analysis of a contract.
type AnalyzeResponse struct {
	Analysis string `json:"analysis"`
	Model    string `json:"model,omitempty"`

	// Degraded is true when the analysis is the fixed fallback message
	// rather than backend output.
	Degraded bool `json:"degraded,omitempty"`
}
