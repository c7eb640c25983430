package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Claims is the authenticated identity carried in an access token.
type Claims struct {
	UserID string
	Email  string
	Role   string
}

// Generator signs and validates HS256 access tokens.
type Generator struct {
	secret []byte
	ttl    time.Duration
}

// NewGenerator creates a token generator with the given signing secret
// and token lifetime.
func NewGenerator(secret string, ttl time.Duration) *Generator {
	return &Generator{secret: []byte(secret), ttl: ttl}
}

// Generate signs a token for the given identity.
func (g *Generator) Generate(claims Claims) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   claims.UserID,
		"email": claims.Email,
		"role":  claims.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(g.ttl).Unix(),
	})
	return token.SignedString(g.secret)
}

// Validate parses and verifies a token, returning the identity it
// carries.
func (g *Generator) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return g.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	if sub == "" {
		return nil, errors.New("invalid token subject")
	}

	return &Claims{UserID: sub, Email: email, Role: role}, nil
}
