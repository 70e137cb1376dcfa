package auth

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"github.com/jhoicas/Costbook-api/internal/application/dto"
	"github.com/jhoicas/Costbook-api/internal/domain"
	"github.com/jhoicas/Costbook-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login del dueño: contraseña única (hash bcrypt) y token JWT.
// Los intentos se limitan con un token bucket para frenar fuerza bruta.
type AuthUseCase struct {
	passwordHash string
	jwtCfg       JWTConfig
	limiter      *rate.Limiter
}

// NewAuthUseCase construye el caso de uso. perMinute <= 0 desactiva el límite.
func NewAuthUseCase(passwordHash string, jwtCfg JWTConfig, perMinute int) *AuthUseCase {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if perMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)
	}
	return &AuthUseCase{passwordHash: passwordHash, jwtCfg: jwtCfg, limiter: limiter}
}

// Enabled indica si hay contraseña y secreto configurados.
func (uc *AuthUseCase) Enabled() bool {
	return uc.passwordHash != "" && uc.jwtCfg.Secret != ""
}

// Login verifica la contraseña y emite un token.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if !uc.Enabled() {
		return nil, domain.ErrAuthNotConfigured
	}
	if !uc.limiter.Allow() {
		return nil, domain.ErrTooManyRequests
	}
	if err := bcrypt.CompareHashAndPassword([]byte(uc.passwordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.RoleOwner, jwt.RoleOwner, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, ExpiresIn: uc.jwtCfg.ExpMinutes * 60}, nil
}

// HashPassword genera el hash bcrypt para OWNER_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
