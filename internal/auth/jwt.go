package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"talento_backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Claims carried in the access token. Onboarded is mirrored from user
// metadata so the session gateway can route without a DB hit.
type Claims struct {
	UserID    string          `json:"uid"`
	Email     string          `json:"email"`
	Role      models.UserRole `json:"role"`
	Onboarded bool            `json:"onboarded"`
	jwt.RegisteredClaims
}

// TokenIssuer creates and parses access tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// Generate issues a signed access token for the user.
func (i *TokenIssuer) Generate(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		Onboarded: user.Onboarded(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Parse validates the token signature and expiry and returns the claims.
func (i *TokenIssuer) Parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return i.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// GenerateRefreshToken returns an opaque random token for the refresh
// cookie. The value is persisted server-side; nothing is encoded in it.
func GenerateRefreshToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
