package auth

import (
	"crypto/subtle"
	"errors"
)

// ErrInvalidSecret is returned when the presented secret does not match the
// configured one. The HTTP layer maps it to 400 to keep parity with the
// existing API contract.
var ErrInvalidSecret = errors.New("invalid secret key")

// DeletePolicy authorizes book deletion requests.
type DeletePolicy interface {
	Authorize(secret string) error
}

// SecretKeyPolicy authorizes deletion against a single configured shared
// secret, compared in constant time.
type SecretKeyPolicy struct {
	secret string
}

func NewSecretKeyPolicy(secret string) *SecretKeyPolicy {
	return &SecretKeyPolicy{secret: secret}
}

func (p *SecretKeyPolicy) Authorize(secret string) error {
	if subtle.ConstantTimeCompare([]byte(secret), []byte(p.secret)) != 1 {
		return ErrInvalidSecret
	}
	return nil
}
