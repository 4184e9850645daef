package util

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the caller identity embedded in a session token.
type Identity struct {
	UserID   int
	Username string
}

// GenerateJWT creates a signed session token for the given identity.
func GenerateJWT(id Identity, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  id.UserID,
		"username": id.Username,
		"exp":      time.Now().Add(ttl).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseJWT validates a token and extracts the caller identity. Bad
// signatures and expired tokens both fail here.
func ParseJWT(tokenStr, secret string) (Identity, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return Identity{}, err
	}

	if !token.Valid {
		return Identity{}, jwt.ErrTokenInvalidClaims
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, jwt.ErrTokenMalformed
	}

	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return Identity{}, jwt.ErrTokenMalformed
	}

	username, ok := claims["username"].(string)
	if !ok {
		return Identity{}, jwt.ErrTokenMalformed
	}

	return Identity{UserID: int(userIDFloat), Username: username}, nil
}

// ExtractToken pulls the bearer token from the Authorization header,
// returning "" when no bearer token is present.
func ExtractToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}

	parts := strings.Split(auth, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}

	return parts[1]
}
