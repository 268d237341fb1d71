package auth

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
	"github.com/straye-as/sales-target-api/internal/config"
	"github.com/straye-as/sales-target-api/internal/domain"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrExpiredToken   = errors.New("token has expired")
	ErrJWTNotEnabled  = errors.New("bearer token auth is not configured")
	ErrUnknownRole    = errors.New("token carries an unknown role")
	hmacSigningMethod = []string{
		jwt.SigningMethodHS256.Alg(),
		jwt.SigningMethodHS384.Alg(),
		jwt.SigningMethodHS512.Alg(),
	}
)

// Claims is the payload of a bearer token. The subject holds the numeric user id.
type Claims struct {
	Name   string          `json:"name,omitempty"`
	Email  string          `json:"email,omitempty"`
	Role   domain.UserRole `json:"role"`
	ZoneID *uint           `json:"zone_id,omitempty"`
	jwt.RegisteredClaims
}

// JWTValidator validates HMAC-signed bearer tokens
type JWTValidator struct {
	secret []byte
	issuer string
}

// NewJWTValidator creates a new JWT validator
func NewJWTValidator(cfg *config.AuthConfig) *JWTValidator {
	return &JWTValidator{
		secret: []byte(cfg.JWTSecret),
		issuer: cfg.JWTIssuer,
	}
}

// Enabled reports whether a signing secret is configured
func (v *JWTValidator) Enabled() bool {
	return len(v.secret) > 0
}

// ValidateToken validates a JWT token and returns user context
func (v *JWTValidator) ValidateToken(tokenString string) (*UserContext, error) {
	if !v.Enabled() {
		return nil, ErrJWTNotEnabled
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods(hmacSigningMethod)}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: subject must be a user id", ErrInvalidToken)
	}
	if !claims.Role.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRole, claims.Role)
	}

	return &UserContext{
		UserID:      uint(userID),
		DisplayName: claims.Name,
		Email:       claims.Email,
		Role:        claims.Role,
		ZoneID:      claims.ZoneID,
	}, nil
}

// SignToken issues a token for the given claims with the configured secret
func (v *JWTValidator) SignToken(claims *Claims) (string, error) {
	if !v.Enabled() {
		return "", ErrJWTNotEnabled
	}
	if v.issuer != "" && claims.Issuer == "" {
		claims.Issuer = v.issuer
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}
