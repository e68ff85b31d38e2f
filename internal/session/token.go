package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenExpired reports whether a stored bearer token is a JWT whose expiry
// is already past. The signature is not verified; the server does that on
// every request. This only avoids rehydrating a session the server is
// guaranteed to reject. Opaque tokens and JWTs without an exp claim are
// treated as live.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
