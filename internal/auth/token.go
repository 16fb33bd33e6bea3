package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"motortrade/internal/domain"
)

var ErrNoSecret = errors.New("auth: signing secret not configured")

// Claims carries the account identity inside the bearer token. The
// token is stateless; expiry is the only invalidation mechanism.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) AccountID() string { return c.Subject }

func (c *Claims) AccountRole() domain.Role { return domain.ParseRole(c.Role) }

type Issuer struct {
	Secret string
	TTL    time.Duration
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Issuer{Secret: secret, TTL: ttl}
}

// Issue signs an HS256 token for the account. Fails when the secret is
// unconfigured rather than minting an unverifiable token.
func (i *Issuer) Issue(accountID, email string, role domain.Role) (string, int64, error) {
	if i.Secret == "" {
		return "", 0, ErrNoSecret
	}

	now := time.Now()
	exp := now.Add(i.TTL)

	claims := Claims{
		Email: email,
		Role:  string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(i.Secret))
	if err != nil {
		return "", 0, err
	}
	return signed, exp.Unix(), nil
}

// Verify parses and validates a bearer token. Only HS256 is accepted;
// a missing or past expiry rejects the token.
func (i *Issuer) Verify(tokenStr string) (*Claims, error) {
	if i.Secret == "" {
		return nil, ErrNoSecret
	}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))

	var claims Claims
	_, err := parser.ParseWithClaims(tokenStr, &claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(i.Secret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims.ExpiresAt == nil || time.Until(claims.ExpiresAt.Time) <= 0 {
		return nil, errors.New("token expired")
	}

	return &claims, nil
}
