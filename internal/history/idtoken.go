package history

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
)

// ErrInvalidToken is returned for identity tokens that cannot be decoded.
var ErrInvalidToken = errors.New("invalid identity token")

// ParseIDTokenClaims decodes the payload segment of a JWT identity token
// without verifying the signature. The history path only needs the uid claim
// for a consistency check, not a trust decision.
func ParseIDTokenClaims(token string) (map[string]any, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, ErrInvalidToken
	}
	payload := parts[1]
	if m := len(payload) % 4; m != 0 {
		payload += strings.Repeat("=", 4-m)
	}
	data, err := base64.URLEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrInvalidToken
	}
	var claims map[string]any
	if err := json.Unmarshal(data, &claims); err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// TokenUID extracts the subject identifier from parsed claims. Firebase puts
// it in user_id, standard JWTs in sub.
func TokenUID(claims map[string]any) string {
	for _, key := range []string{"user_id", "sub", "uid"} {
		if v, ok := claims[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
