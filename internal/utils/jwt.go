package utils // package utils provides helpers for session tokens and password hashing

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and verifying signed tokens
	"github.com/google/uuid"
)

// ErrInvalidToken is returned for any token that fails signature, algorithm
// or expiry checks.
var ErrInvalidToken = errors.New("invalid token")

// SessionClaims are the claims carried by an admin session token. The
// registered ID (jti) is what sign-out revokes.
type SessionClaims struct {
	Role  string `json:"role"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// SessionToken is a signed JWT together with the values a caller needs to
// track or revoke it without re-parsing.
type SessionToken struct {
	Token string    // the serialized JWT string
	ID    string    // jti
	Exp   time.Time // UTC expiration time
}

// NewSessionToken signs an HS256 JWT for subject. The expiry is issuedAt
// plus ttl exactly; sessions are never extended, so there is no refresh
// counterpart.
func NewSessionToken(secret, subject, email, role string, issuedAt time.Time, ttl time.Duration) (SessionToken, error) {
	issuedAt = issuedAt.UTC().Truncate(time.Second)
	exp := issuedAt.Add(ttl)
	claims := SessionClaims{
		Role:  role,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{Token: signed, ID: claims.ID, Exp: exp}, nil
}

// ParseSessionToken verifies raw against secret using now as the clock and
// returns its claims. Only HS256 is accepted.
func ParseSessionToken(secret, raw string, now time.Time) (*SessionClaims, error) {
	claims := &SessionClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	if claims.ID == "" || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
