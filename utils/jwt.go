package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"time"

	"fleetrent/config"

	"github.com/golang-jwt/jwt"
)

// secretKey resolves the signing secret at call time: the loaded config wins,
// then the raw environment variable, then a development fallback (not
// recommended in production).
func secretKey() []byte {
	if s := config.AppConfig.JWTSecret; s != "" {
		return []byte(s)
	}
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("FLEETRENT_DEV")
}

// GenerateToken creates a signed JWT token for the given user. The admin claim
// controls access to fleet-management and reporting endpoints.
// The token expires after the specified duration.
func GenerateToken(userID string, admin bool, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   userID,
		"admin": admin,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// HashToken computes a SHA-256 hash of the token string.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// ExtractClaimsFromToken extracts the user ID (subject) and admin flag from a
// valid JWT token string.
func ExtractClaimsFromToken(tokenString string) (string, bool, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return "", false, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", false, errors.New("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", false, errors.New("token does not contain a valid 'sub' claim")
	}

	admin, _ := claims["admin"].(bool)
	return sub, admin, nil
}
