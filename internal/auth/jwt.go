package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/reseau-alumni/alumni-be/internal/models"
)

// Codec errors. ErrExpiredCredential is returned for tokens past their
// expiry; every other verification failure maps to ErrMalformedCredential.
var (
	ErrExpiredCredential   = errors.New("credential expired")
	ErrMalformedCredential = errors.New("credential malformed")
)

// Claims defines the JWT claims structure.
type Claims struct {
	UserID    string  `json:"userId"`
	IsAdmin   bool    `json:"isAdmin"`
	ProfileID *string `json:"profileId,omitempty"`
	jwt.RegisteredClaims
}

// TokenCodec signs and verifies session credentials with a symmetric secret.
type TokenCodec struct {
	secret   []byte
	validity time.Duration
}

// NewTokenCodec creates a codec. Tokens issued by it are valid for the given
// duration; there is no refresh mechanism, expired sessions re-login.
func NewTokenCodec(secret string, validity time.Duration) *TokenCodec {
	return &TokenCodec{secret: []byte(secret), validity: validity}
}

// Issue creates a signed credential for the user.
func (c *TokenCodec) Issue(user models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:    user.ID,
		IsAdmin:   user.IsAdmin,
		ProfileID: user.ProfileID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.validity)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Verify parses and validates a credential string.
func (c *TokenCodec) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrMalformedCredential
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredCredential
		}
		return nil, ErrMalformedCredential
	}
	if !token.Valid || claims.UserID == "" {
		return nil, ErrMalformedCredential
	}
	return claims, nil
}
