package session

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the fields the client reads from a bearer token. The signature
// is not checked here: the backend remains the authority and every token is
// still validated against /api/profile.
type Claims struct {
	UserID    int
	IsAdmin   bool
	ExpiresAt time.Time
}

// ParseClaims decodes the payload of a JWT without verifying it. Opaque
// tokens return an error and must be validated server-side only.
func ParseClaims(token string) (*Claims, error) {
	mc := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, mc); err != nil {
		return nil, fmt.Errorf("token is not a JWT: %w", err)
	}

	claims := &Claims{}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	claims.UserID = intClaim(mc["user_id"])
	if admin, ok := mc["is_admin"].(bool); ok {
		claims.IsAdmin = admin
	}
	return claims, nil
}

// Expired reports whether the token had expired at now. Tokens without an
// exp claim never expire client-side.
func (c *Claims) Expired(now time.Time) bool {
	return c != nil && !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

func intClaim(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case json.Number:
		i, _ := n.Int64()
		return int(i)
	case int:
		return n
	}
	return 0
}
