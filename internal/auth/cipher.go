package auth

import (
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/harmony-ledger/harmony/internal/config"
)

// ErrIntegrity is returned for every decryption failure: bad tag, wrong key or truncated input.
var ErrIntegrity = errors.New("ciphertext failed authentication")

// Sealer encrypts and authenticates claim payloads.
type Sealer interface {
	Seal(plaintext []byte) ([]byte, error)
	Open(ciphertext []byte) ([]byte, error)
}

// ChaCha20Poly1305 seals payloads with an empty associated data block.
// It holds no mutable state and is safe for concurrent use.
type ChaCha20Poly1305 struct {
	aead  cipher.AEAD
	nonce []byte
	rand  io.Reader
}

// NewFixedNonceCipher seals every message under the same nonce. Identical
// plaintexts produce identical ciphertexts of length len(plaintext)+Overhead.
func NewFixedNonceCipher(key, nonce []byte) (*ChaCha20Poly1305, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("init chacha20-poly1305: %w", err)
	}
	if len(nonce) != aead.NonceSize() {
		return nil, fmt.Errorf("nonce must be %d bytes, got %d", aead.NonceSize(), len(nonce))
	}
	fixed := make([]byte, len(nonce))
	copy(fixed, nonce)
	return &ChaCha20Poly1305{aead: aead, nonce: fixed}, nil
}

// NewRandomNonceCipher draws a fresh nonce from entropy for every message and
// prepends it to the ciphertext.
func NewRandomNonceCipher(key []byte, entropy io.Reader) (*ChaCha20Poly1305, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("init chacha20-poly1305: %w", err)
	}
	if entropy == nil {
		entropy = rand.Reader
	}
	return &ChaCha20Poly1305{aead: aead, rand: entropy}, nil
}

// NewCipher builds the sealer selected by the claim configuration.
func NewCipher(cfg config.ClaimConfig) (*ChaCha20Poly1305, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.NonceMode == config.NonceModeFixed {
		return NewFixedNonceCipher(cfg.Key, cfg.Nonce)
	}
	return NewRandomNonceCipher(cfg.Key, nil)
}

// Overhead is the number of bytes Seal adds to a plaintext.
func (c *ChaCha20Poly1305) Overhead() int {
	if c.nonce != nil {
		return c.aead.Overhead()
	}
	return c.aead.NonceSize() + c.aead.Overhead()
}

// Seal encrypts plaintext and appends the authentication tag.
func (c *ChaCha20Poly1305) Seal(plaintext []byte) ([]byte, error) {
	if c.nonce != nil {
		return c.aead.Seal(nil, c.nonce, plaintext, nil), nil
	}

	nonce := make([]byte, c.aead.NonceSize(), c.aead.NonceSize()+len(plaintext)+c.aead.Overhead())
	if _, err := io.ReadFull(c.rand, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}
	return c.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open verifies and decrypts ciphertext. Every failure is reported as ErrIntegrity.
func (c *ChaCha20Poly1305) Open(ciphertext []byte) ([]byte, error) {
	nonce := c.nonce
	if nonce == nil {
		if len(ciphertext) < c.aead.NonceSize() {
			return nil, ErrIntegrity
		}
		nonce, ciphertext = ciphertext[:c.aead.NonceSize()], ciphertext[c.aead.NonceSize():]
	}
	if len(ciphertext) < c.aead.Overhead() {
		return nil, ErrIntegrity
	}

	plaintext, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrIntegrity
	}
	return plaintext, nil
}
