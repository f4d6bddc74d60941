package services

import (
	"crypto/ed25519"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// IssuanceClaims record what a serial was issued for. The serial itself is
// referenced only by its lookup digest.
type IssuanceClaims struct {
	Product string `json:"product"`
	Version int    `json:"version"`
	Count   int    `json:"count"`
	Addons  []bool `json:"addons,omitempty"`
	Digest  string `json:"digest"`

	jwt.RegisteredClaims
}

// TokenSigner signs issuance tokens with an ed25519 key.
type TokenSigner struct {
	key      ed25519.PrivateKey
	audience string
	ttl      time.Duration
	now      func() time.Time
}

func NewTokenSigner(key ed25519.PrivateKey, audience string, ttl time.Duration) (*TokenSigner, error) {
	if len(key) != ed25519.PrivateKeySize {
		return nil, errors.New("invalid ed25519 private key size")
	}
	if ttl <= 0 {
		return nil, errors.New("tokenTTL must be > 0")
	}
	return &TokenSigner{key: key, audience: audience, ttl: ttl, now: time.Now}, nil
}

func (s *TokenSigner) Sign(product string, version, count int, addons []bool, digest string) (string, *IssuanceClaims, error) {
	now := s.now().UTC()
	claims := &IssuanceClaims{
		Product: product,
		Version: version,
		Count:   count,
		Addons:  addons,
		Digest:  digest,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   "serial_" + digest,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now.Add(-30 * time.Second)),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	if s.audience != "" {
		claims.Audience = jwt.ClaimStrings{s.audience}
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	signed, err := tok.SignedString(s.key)
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}
