package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Tokens are Supabase-style HS256 access tokens signed with the project JWT secret.
// The admin role lives in app_metadata.role; the top-level role is the Postgres role.

var secretKey []byte

func SetSecret(key string) {
	secretKey = []byte(key)
}

var ErrNoToken = errors.New("no token found")

// GenerateJWT mints an access token. Used by the CLI and tests; the dashboard
// itself receives tokens from the auth provider.
func GenerateJWT(userID, email, role string, expiry time.Duration) (string, error) {
	if len(secretKey) == 0 {
		return "", fmt.Errorf("jwt secret not set")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":          userID,
		"email":        email,
		"role":         "authenticated",
		"aud":          "authenticated",
		"app_metadata": map[string]any{"role": role},
		"iat":          now.Unix(),
		"exp":          now.Add(expiry).Unix(),
	})

	return token.SignedString(secretKey)
}

func ValidateJWT(tokenString string) (jwt.MapClaims, error) {
	if len(secretKey) == 0 {
		return nil, fmt.Errorf("jwt secret not set")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secretKey, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

type Claims struct {
	UserID string
	Email  string
	Role   string
}

// ExtractClaims reads the bearer token from the Authorization header, falling
// back to the sb-access-token cookie set by the dashboard.
func ExtractClaims(r *http.Request) (*Claims, error) {
	tokenString := ""
	if authHeader := r.Header.Get("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		tokenString = strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	} else if cookie, err := r.Cookie("sb-access-token"); err == nil {
		tokenString = cookie.Value
	}

	if tokenString == "" {
		return nil, ErrNoToken
	}

	mapClaims, err := ValidateJWT(tokenString)
	if err != nil {
		return nil, err
	}

	userID, _ := mapClaims["sub"].(string)
	email, _ := mapClaims["email"].(string)

	return &Claims{
		UserID: userID,
		Email:  email,
		Role:   roleFromClaims(mapClaims),
	}, nil
}

func roleFromClaims(c jwt.MapClaims) string {
	if meta, ok := c["app_metadata"].(map[string]any); ok {
		if role, ok := meta["role"].(string); ok && role != "" {
			return role
		}
	}
	role, _ := c["role"].(string)
	return role
}
