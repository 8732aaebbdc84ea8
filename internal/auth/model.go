package auth

// ===============================
// Requests
// ===============================

type RegisterRequest struct {
	FullName string `json:"fullName" binding:"required" example:"Jamie Rivera"`
	Email    string `json:"email" binding:"required,email" example:"jamie@example.com"`
	Password string `json:"password" binding:"required,min=6" example:"secret123"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// GoogleLoginRequest carries the provider session the OAuth popup flow
// hands back to the frontend.
type GoogleLoginRequest struct {
	AccessToken string `json:"access_token" binding:"required"`
}

// ===============================
// Provider types
// ===============================

// Session is what the hosted auth provider returns on signup/signin.
type Session struct {
	AccessToken  string       `json:"access_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int          `json:"expires_in"`
	RefreshToken string       `json:"refresh_token"`
	User         ProviderUser `json:"user"`
}

// ProviderUser is the provider-side identity record.
type ProviderUser struct {
	ID           string                 `json:"id"`
	Email        string                 `json:"email"`
	UserMetadata map[string]interface{} `json:"user_metadata"`
}

// Identity is the locally verified view of a session token.
type Identity struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}
