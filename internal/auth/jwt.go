package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/yasinhessnawi1/OldNotice_Backend/internal/config"
	"github.com/yasinhessnawi1/OldNotice_Backend/internal/constants"
	"github.com/yasinhessnawi1/OldNotice_Backend/internal/utils"
)

// JWT errors
var (
	ErrInvalidSigningMethod = errors.New("invalid signing method")
	ErrMissingSubject       = errors.New("token subject is required")
)

// AdminClaims represents the claims in an admin token
type AdminClaims struct {
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// JWTService provides admin token generation and validation
type JWTService struct {
	Config *config.JWTSettings
}

// NewJWTService creates a new JWTService instance
func NewJWTService(config *config.JWTSettings) *JWTService {
	return &JWTService{
		Config: config,
	}
}

// GetConfig returns the JWT settings, or the defaults when none were given.
func (s *JWTService) GetConfig() *config.JWTSettings {
	if s.Config == nil {
		return &config.JWTSettings{
			Expiry: constants.DefaultJWTExpiry,
			Issuer: constants.DefaultJWTIssuer,
		}
	}
	return s.Config
}

// GenerateAdminToken signs a new admin token for subject.
// It returns the token string and its unique token ID.
func (s *JWTService) GenerateAdminToken(subject string) (string, string, error) {
	if subject == "" {
		return "", "", ErrMissingSubject
	}

	cfg := s.GetConfig()
	jwtID := uuid.New().String()

	now := time.Now()
	claims := AdminClaims{
		TokenType: constants.TokenTypeAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.Expiry)),
			NotBefore: jwt.NewNumericDate(now),
			ID:        jwtID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, jwtID, nil
}

// ValidateToken validates a token and returns its claims if valid.
// The signature, expiry, issuer and token type are all checked.
func (s *JWTService) ValidateToken(tokenString string, expectedType string) (*AdminClaims, error) {
	cfg := s.GetConfig()

	token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSigningMethod
		}
		return []byte(cfg.Secret), nil
	})

	if err != nil {
		var validationErr *jwt.ValidationError
		if errors.As(err, &validationErr) && validationErr.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, utils.NewExpiredTokenError()
		}
		return nil, utils.NewInvalidTokenError()
	}

	if !token.Valid {
		return nil, utils.NewInvalidTokenError()
	}

	claims, ok := token.Claims.(*AdminClaims)
	if !ok {
		return nil, utils.NewInvalidTokenError()
	}

	if !claims.VerifyIssuer(cfg.Issuer, true) {
		return nil, utils.NewInvalidTokenError()
	}

	if claims.TokenType != expectedType || claims.Subject == "" {
		return nil, utils.NewInvalidTokenError()
	}

	return claims, nil
}
