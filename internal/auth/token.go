package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is the single failure returned by Verify. Malformed
// structure, signature mismatch, wrong signing method and expiry all
// collapse into it so that callers leak nothing about why a token was
// rejected.
var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HMAC-signed access tokens. The
// secret, signing method and TTL are fixed at construction and never
// change for the life of the process.
type TokenService struct {
	secret []byte
	method *jwt.SigningMethodHMAC
	ttl    time.Duration
}

func NewTokenService(secret []byte, algorithm string, ttl time.Duration) (*TokenService, error) {
	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok || method == nil {
		return nil, errors.New("token service requires an HMAC signing method")
	}
	return &TokenService{secret: secret, method: method, ttl: ttl}, nil
}

// Issue signs a token for the given user. The subject claim carries
// the user's primary key and is the sole identity consumed downstream;
// email rides along for display only.
func (s *TokenService) Issue(userID, email string) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
}

// Verify checks the signature and expiry in one step and returns the
// claims, or ErrInvalidToken. The signing method is pinned to the one
// configured at startup; a token signed with any other method is
// rejected even if the signature would check out.
func (s *TokenService) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != s.method.Alg() {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
