package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tunebox/tunebox/internal/apperr"
)

// TokenHeader carries the raw signed token on protected requests.
const TokenHeader = "x-auth-token"

var errEmptySecret = errors.New("auth: signing secret is empty")

// Claims is the decoded token payload. UserID is optional: a structurally
// valid token without it decodes to an empty subject.
type Claims struct {
	UserID string `json:"id,omitempty"`
	jwt.RegisteredClaims
}

// Codec issues and verifies HS256-signed tokens with a process-wide secret.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCodec builds a Codec. A zero ttl issues tokens without an expiry claim.
func NewCodec(secret []byte, ttl time.Duration) (*Codec, error) {
	if len(secret) == 0 {
		return nil, errEmptySecret
	}
	key := make([]byte, len(secret))
	copy(key, secret)
	return &Codec{secret: key, ttl: ttl, now: time.Now}, nil
}

// Issue signs a token whose subject is userID.
func (c *Codec) Issue(userID string) (string, error) {
	claims := Claims{UserID: userID}
	if c.ttl > 0 {
		now := c.now()
		claims.IssuedAt = jwt.NewNumericDate(now)
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(c.ttl))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify decodes token and checks its signature, algorithm and expiry. Every
// failure is reported as apperr.ErrInvalidCredential; the cause is kept in the
// chain for logging only.
func (c *Codec) Verify(token string) (Claims, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, c.key,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", apperr.ErrInvalidCredential, err)
	}
	if !parsed.Valid {
		return Claims{}, apperr.ErrInvalidCredential
	}
	return claims, nil
}

func (c *Codec) key(t *jwt.Token) (any, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
	}
	return c.secret, nil
}
