package session

import (
	"time"

	jwt "github.com/dgrijalva/jwt-go"
)

// tokenExpiry reads the exp claim of a JWT without verifying its signature.
// The backend stays the only judge of validity; this is for display.
func tokenExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	switch exp := claims["exp"].(type) {
	case float64:
		return time.Unix(int64(exp), 0), true
	case int64:
		return time.Unix(exp, 0), true
	}
	return time.Time{}, false
}
