// internal/httpserver/auth.go
//
// Token and password helpers for the solver API.
//   - Session tokens: HS256 JWTs carrying the server-side session id,
//     so clients hold no solver state beyond the token.
//   - Admin password: mutating dictionary endpoints compare the
//     X-Admin-Password header against a bcrypt hash from the
//     environment (ADMIN_PASSWORD_HASH).

package httpserver

import (
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// signSessionToken issues a JWT for a stored session id.
func signSessionToken(sessionID string) (string, time.Time, error) {
	hours := envInt("JWT_EXPIRES_HOURS", 24)
	secret := []byte(os.Getenv("JWT_SECRET"))
	exp := time.Now().Add(time.Duration(hours) * time.Hour)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": sessionID,
		"exp": exp.Unix(),
		"iat": time.Now().Unix(),
	})
	ss, err := token.SignedString(secret)
	return ss, exp, err
}

// parseSessionToken verifies a token and extracts the session id.
func parseSessionToken(tokenStr string) (string, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", errors.New("invalid token")
	}
	return sid, nil
}

// bearerToken extracts "Authorization: Bearer <token>".
func bearerToken(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}

// checkAdminPassword compares pw against ADMIN_PASSWORD_HASH (bcrypt).
// An empty hash disables the admin endpoints entirely.
func checkAdminPassword(pw string) bool {
	hash := os.Getenv("ADMIN_PASSWORD_HASH")
	if hash == "" || pw == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}
