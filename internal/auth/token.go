package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMissingToken is returned when no bearer token is present
	ErrMissingToken = errors.New("auth: missing bearer token")
	// ErrInvalidToken is returned when a token fails verification
	ErrInvalidToken = errors.New("auth: invalid token")
)

// Claims are the token claims the service relies on
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Verifier checks HS256 bearer tokens issued by the credential collaborator
type Verifier struct {
	secret []byte
	issuer string
}

// NewVerifier creates a verifier; an empty issuer accepts any issuer
func NewVerifier(secret, issuer string) *Verifier {
	return &Verifier{secret: []byte(secret), issuer: issuer}
}

// FromHeader extracts the identity from an Authorization header value
func (v *Verifier) FromHeader(header string) (Identity, error) {
	const prefix = "Bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return Identity{}, ErrMissingToken
	}
	return v.Verify(strings.TrimSpace(header[len(prefix):]))
}

// Verify parses and validates a signed token
func (v *Verifier) Verify(tokenString string) (Identity, error) {
	if tokenString == "" {
		return Identity{}, ErrMissingToken
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return Identity{}, ErrInvalidToken
	}

	return Identity{UserID: claims.Subject, Email: claims.Email}, nil
}

// Issue signs a token for the identity. The service never issues credentials
// itself; this exists for local tooling and tests.
func (v *Verifier) Issue(id Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: id.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID,
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}
