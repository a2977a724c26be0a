package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const tokenCookieName = "mt-admin"

type ContextValue string

var ContextRole = ContextValue("role")

var ErrUnauthorized = errors.New("unauthorized")

// Auth guards the admin api with either the static api key or a signed
// token carrying the admin role.
type Auth struct {
	serverKey    []byte
	serverApiKey string
}

func NewAuth(tokenHash, apiKey string) (*Auth, error) {
	if tokenHash == "" && apiKey == "" {
		return nil, fmt.Errorf("CATALOG_TOKEN_HASH or CATALOG_API_KEY environment variable not set")
	}
	return &Auth{serverKey: []byte(tokenHash), serverApiKey: apiKey}, nil
}

func (a *Auth) CreateToken(username, role string, ttl time.Duration) (string, error) {
	if len(a.serverKey) == 0 {
		return "", fmt.Errorf("no token key configured")
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256,
		jwt.MapClaims{
			"username": username,
			"role":     role,
			"exp":      time.Now().Add(ttl).Unix(),
		})
	return token.SignedString(a.serverKey)
}

func (a *Auth) ParseJwt(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return a.serverKey, nil
	})
}

func bearerToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	if cookie, err := r.Cookie(tokenCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// Role resolves the caller of an admin request.
func (a *Auth) Role(r *http.Request) (string, error) {
	if a.serverApiKey != "" && r.Header.Get("Authorization") == a.serverApiKey {
		return "api", nil
	}
	tokenString := bearerToken(r)
	if tokenString == "" || len(a.serverKey) == 0 {
		return "", ErrUnauthorized
	}
	token, err := a.ParseJwt(tokenString)
	if err != nil || !token.Valid {
		return "", ErrUnauthorized
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrUnauthorized
	}
	role, _ := claims["role"].(string)
	if role != "admin" {
		return "", ErrUnauthorized
	}
	return role, nil
}

func (a *Auth) Middleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role, err := a.Role(r)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), ContextRole, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}
