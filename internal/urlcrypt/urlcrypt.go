// Package urlcrypt turns identifiers into opaque tokens safe for bot
// commands and deep links, and back.
package urlcrypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
)

// Codec encrypts values with AES-256-GCM and encodes them as unpadded base64url
type Codec struct {
	aead cipher.AEAD
}

// New derives a 256-bit key from secret
func New(secret string) (*Codec, error) {
	if secret == "" {
		return nil, fmt.Errorf("url secret cannot be empty")
	}
	key := sha256.Sum256([]byte(secret))

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher block: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return &Codec{aead: aead}, nil
}

// EncryptForURL returns an opaque token for value
func (c *Codec) EncryptForURL(value string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	sealed := c.aead.Seal(nonce, nonce, []byte(value), nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// DecryptFromURL reverses EncryptForURL
func (c *Codec) DecryptFromURL(token string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return "", fmt.Errorf("failed to decode token: %w", err)
	}
	nonceSize := c.aead.NonceSize()
	if len(raw) < nonceSize {
		return "", fmt.Errorf("token too short")
	}
	nonce, sealed := raw[:nonceSize], raw[nonceSize:]
	plain, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt: %w", err)
	}
	return string(plain), nil
}

// SafeDecryptFromURL never fails loudly: any problem yields ok=false.
// An empty plaintext is treated as a failure too.
func (c *Codec) SafeDecryptFromURL(token string) (string, bool) {
	value, err := c.DecryptFromURL(token)
	if err != nil || value == "" {
		return "", false
	}
	return value, true
}
