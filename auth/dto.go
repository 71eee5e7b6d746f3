package auth

// RegisterRequest represents the registration request payload
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=255" example:"Alice"`
	Email    string `json:"email" validate:"required,email,max=255" example:"a@x.com"`
	Password string `json:"password" validate:"required" example:"pw"`
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required" example:"a@x.com"`
	Password string `json:"password" validate:"required" example:"pw"`
}

// StatusResponse is the bare success envelope.
type StatusResponse struct {
	Status string `json:"Status" example:"Success"`
}

// LoginResponse carries the signed access token.
type LoginResponse struct {
	Status string `json:"Status" example:"Success"`
	Token  string `json:"Token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// ProtectedResponse echoes the caller's verified claims.
type ProtectedResponse struct {
	Status string  `json:"Status" example:"Success"`
	User   *Claims `json:"user"`
}
