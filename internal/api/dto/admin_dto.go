package dto

// LoginRequest payload for POST /api/admin/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest payload for POST /api/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AdminInfo is the credential record as exposed to clients. Password material
// never appears here.
type AdminInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role,omitempty"`
}

// LoginResponse for a successful login.
type LoginResponse struct {
	Success bool      `json:"success"`
	Token   string    `json:"token"`
	Admin   AdminInfo `json:"admin"`
}

// VerifyResponse for a successful token verification.
type VerifyResponse struct {
	Success bool      `json:"success"`
	Admin   AdminInfo `json:"admin"`
}

// RegisterResponse for a successful registration.
type RegisterResponse struct {
	Success bool      `json:"success"`
	Admin   AdminInfo `json:"admin"`
}

// ErrorResponse is the uniform failure body.
type ErrorResponse struct {
	Message string `json:"message"`
}
