// Package auth issues and validates the application's JWT tokens.
//
// Two token flavors exist: short-lived access tokens whose subject is the
// user id, and long-lived email-verification tokens whose subject is the
// email address. A verification token must never authenticate an API call,
// so the two flavors are distinguished by a "scope" claim and parsed by
// separate functions.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	issuer   = "rolodex-api"
	audience = "rolodex-client"

	// ScopeEmailVerification marks tokens minted for confirmation links.
	ScopeEmailVerification = "email_verification"

	// emailTokenTTL is deliberately long: confirmation links arrive by
	// email and may sit unread for days.
	emailTokenTTL = 7 * 24 * time.Hour
)

// ErrInvalidToken is returned for malformed, expired, or mis-scoped tokens.
var ErrInvalidToken = errors.New("invalid token")

// TokenService issues and parses JWTs signed with a shared HMAC secret.
type TokenService struct {
	secret    []byte
	accessTTL time.Duration
}

// NewTokenService returns a TokenService for the given secret and access-token TTL.
func NewTokenService(secret string, accessTTL time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), accessTTL: accessTTL}
}

// GenerateAccessToken creates a signed access token carrying the user id as subject.
func (ts *TokenService) GenerateAccessToken(userID uint) (string, error) {
	if len(ts.secret) == 0 {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iss": issuer,
		"aud": audience,
		"exp": now.Add(ts.accessTTL).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"jti": generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(ts.secret)
}

// GenerateEmailToken creates a signed email-verification token carrying the
// email address as subject.
func (ts *TokenService) GenerateEmailToken(email string) (string, error) {
	if len(ts.secret) == 0 {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   email,
		"scope": ScopeEmailVerification,
		"iss":   issuer,
		"aud":   audience,
		"exp":   now.Add(emailTokenTTL).Unix(),
		"iat":   now.Unix(),
		"nbf":   now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(ts.secret)
}

// ParseAccessToken validates an access token and returns the user id it
// carries. Tokens with the email-verification scope are rejected: a
// confirmation link must never double as an API credential.
func (ts *TokenService) ParseAccessToken(tokenString string) (uint, error) {
	claims, err := ts.parse(tokenString)
	if err != nil {
		return 0, err
	}

	if scope, _ := claims["scope"].(string); scope == ScopeEmailVerification {
		return 0, ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, ErrInvalidToken
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return uint(userID), nil
}

// ParseEmailToken validates an email-verification token and returns the
// email address it carries.
func (ts *TokenService) ParseEmailToken(tokenString string) (string, error) {
	claims, err := ts.parse(tokenString)
	if err != nil {
		return "", err
	}

	if scope, _ := claims["scope"].(string); scope != ScopeEmailVerification {
		return "", ErrInvalidToken
	}

	email, ok := claims["sub"].(string)
	if !ok || email == "" {
		return "", ErrInvalidToken
	}
	return email, nil
}

func (ts *TokenService) parse(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return ts.secret, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// generateJTI creates a unique JWT ID to prevent replay attacks
func generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
