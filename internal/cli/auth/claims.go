package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the access token payload decoded locally. The signature is
// never checked on the client: the decoded identity is advisory, used
// for display and for hiding controls the server would reject anyway.
type Claims struct {
	UserID int64
	Email  string
	Role   string
}

// DecodeClaims parses the token payload without verification.
func DecodeClaims(token string) (*Claims, error) {
	if token == "" {
		return nil, errors.New("empty token")
	}
	mc := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, mc); err != nil {
		return nil, err
	}
	c := &Claims{}
	if v, ok := mc["id"].(float64); ok {
		c.UserID = int64(v)
	}
	if c.UserID == 0 {
		// some token variants carry the id under "sub"
		if v, ok := mc["sub"].(float64); ok {
			c.UserID = int64(v)
		}
	}
	if c.UserID == 0 {
		return nil, errors.New("token payload has no numeric user id")
	}
	if v, ok := mc["email"].(string); ok {
		c.Email = v
	}
	if v, ok := mc["role"].(string); ok {
		c.Role = v
	}
	return c, nil
}
