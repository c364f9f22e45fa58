package utils

import (
	"errors" // Error matching
	"time"   // Time for token expiration

	"wanderlist/internal/domain" // Identity and error kinds

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// TokenTTL is how long a session token stays valid
const TokenTTL = time.Hour

// JWT Claims
type Claims struct {
	ID                   uint   `json:"id"`       // Custom claim for user ID
	Username             string `json:"username"` // Custom claim for username
	jwt.RegisteredClaims        // Standard JWT claims
}

// GenerateJWT creates a JWT token for the given identity, valid for TokenTTL
func GenerateJWT(identity domain.Identity, secret string) (string, error) {
	return generateJWT(identity, secret, time.Now())
}

func generateJWT(identity domain.Identity, secret string, now time.Time) (string, error) {
	claims := Claims{
		ID:       identity.ID,
		Username: identity.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)), // Token expires in one hour
			IssuedAt:  jwt.NewNumericDate(now),               // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString([]byte(secret))                  // Sign the token with the secret
}

// ParseJWT verifies a token string and returns the identity it carries.
// Errors wrap domain.ErrMissingToken or domain.ErrInvalidToken.
func ParseJWT(tokenStr, secret string) (domain.Identity, error) {
	if tokenStr == "" {
		return domain.Identity{}, &domain.Error{Kind: domain.ErrMissingToken, Message: "Missing token"}
	}
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid // Reject alg swapping
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		msg := "Invalid token"
		if errors.Is(err, jwt.ErrTokenExpired) {
			msg = "Token expired"
		}
		return domain.Identity{}, &domain.Error{Kind: domain.ErrInvalidToken, Message: msg}
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.ID == 0 {
		return domain.Identity{}, &domain.Error{Kind: domain.ErrInvalidToken, Message: "Invalid token"}
	}
	return domain.Identity{ID: claims.ID, Username: claims.Username}, nil
}
