package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"gstkit/internal/domain"
)

const accessAudience = "access"

// Claims represents the JWT claims of an API caller.
type Claims struct {
	jwt.RegisteredClaims
	Company string `json:"company,omitempty"`
}

// AuthConfig holds JWT settings.
type AuthConfig struct {
	Secret      string
	Issuer      string
	TokenExpiry time.Duration
}

// AuthService issues and verifies bearer tokens for the API.
type AuthService interface {
	IssueToken(subject, company string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	cfg AuthConfig
}

// NewAuthService creates a new AuthService implementation.
func NewAuthService(cfg AuthConfig) AuthService {
	return &authService{cfg: cfg}
}

func (s *authService) IssueToken(subject, company string) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenExpiry)),
			ID:        uuid.New().String(),
			Audience:  jwt.ClaimStrings{accessAudience},
		},
		Company: company,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("signing access token: %w", err)
	}
	return signed, nil
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithAudience(accessAudience)}
	if s.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.cfg.Issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}
	if !token.Valid {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}
