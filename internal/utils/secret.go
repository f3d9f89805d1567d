package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
)

// ErrUnseal is returned when a sealed value cannot be opened with the key.
var ErrUnseal = errors.New("sealed value could not be opened")

const nonceSize = 24

// Sealer encrypts stored integration credentials.  The key is derived from
// the application secret so rotating SECRET_KEY makes old values unreadable.
type Sealer struct {
	key [32]byte
}

// NewSealer derives a secretbox key from secret.
func NewSealer(secret string) *Sealer {
	return &Sealer{key: sha256.Sum256([]byte(secret))}
}

// Seal returns nonce||box for plain.
func (s *Sealer) Seal(plain string) ([]byte, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, err
	}
	return secretbox.Seal(nonce[:], []byte(plain), &nonce, &s.key), nil
}

// Open reverses Seal.
func (s *Sealer) Open(sealed []byte) (string, error) {
	if len(sealed) < nonceSize+secretbox.Overhead {
		return "", ErrUnseal
	}
	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])
	out, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &s.key)
	if !ok {
		return "", ErrUnseal
	}
	return string(out), nil
}

// MaskSecret keeps the first and last four characters of a credential.
// Short values are fully masked.
func MaskSecret(v string) string {
	if len(v) <= 8 {
		return "****"
	}
	return v[:4] + "..." + v[len(v)-4:]
}
