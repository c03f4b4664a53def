// Package credstore persists the bearer credential between runs.
package credstore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"io"
	"runtime"

	"golang.org/x/crypto/chacha20poly1305"
)

// KeySize is the sealing key size in bytes.
const KeySize = 32

// aeadCipher seals and opens credential bytes with authenticated
// encryption. The nonce is generated per call and prepended to the
// ciphertext.
type aeadCipher struct {
	aead cipher.AEAD
}

// newCipher selects the AEAD for this machine: AES-GCM where the
// architecture has hardware AES, ChaCha20-Poly1305 otherwise.
func newCipher(key []byte) (*aeadCipher, error) {
	if len(key) != KeySize {
		return nil, errors.New("credstore: sealing key must be 32 bytes")
	}

	var (
		aead cipher.AEAD
		err  error
	)
	switch runtime.GOARCH {
	case "amd64", "arm64":
		var block cipher.Block
		block, err = aes.NewCipher(key)
		if err == nil {
			aead, err = cipher.NewGCM(block)
		}
	default:
		aead, err = chacha20poly1305.New(key)
	}
	if err != nil {
		return nil, err
	}

	return &aeadCipher{aead: aead}, nil
}

// Seal encrypts plaintext, binding it to additionalData.
func (c *aeadCipher) Seal(plaintext, additionalData []byte) ([]byte, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return c.aead.Seal(nonce, nonce, plaintext, additionalData), nil
}

// Open decrypts ciphertext produced by Seal.
func (c *aeadCipher) Open(ciphertext, additionalData []byte) ([]byte, error) {
	if len(ciphertext) < c.aead.NonceSize() {
		return nil, errors.New("credstore: ciphertext too short")
	}
	nonce := ciphertext[:c.aead.NonceSize()]
	return c.aead.Open(nil, nonce, ciphertext[c.aead.NonceSize():], additionalData)
}

// generateKey returns a fresh random sealing key.
func generateKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, err
	}
	return key, nil
}
