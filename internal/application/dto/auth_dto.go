package dto

// LoginRequest contraseña del dueño.
type LoginRequest struct {
	Password string `json:"password"`
}

// LoginResponse token JWT.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"` // segundos
}
