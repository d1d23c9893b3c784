package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	keyLength       = 32
	keyDerivationIt = 4096
)

var (
	ErrMissingKey        = errors.New("encryption key is required")
	ErrInvalidSalt       = errors.New("encryption salt must be non-empty hex")
	ErrInvalidCiphertext = errors.New("invalid ciphertext")
)

// CardEncryptor is a reversible, non-deterministic text transform. The
// AES-256 key is derived once from the configured password and salt; every
// Encrypt call uses a fresh random nonce.
type CardEncryptor struct {
	aead cipher.AEAD
}

func NewCardEncryptor(password, saltHex string) (*CardEncryptor, error) {
	if strings.TrimSpace(password) == "" {
		return nil, ErrMissingKey
	}
	salt, err := hex.DecodeString(strings.TrimSpace(saltHex))
	if err != nil || len(salt) == 0 {
		return nil, ErrInvalidSalt
	}

	key := pbkdf2.Key([]byte(password), salt, keyDerivationIt, keyLength, sha256.New)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &CardEncryptor{aead: aead}, nil
}

func (e *CardEncryptor) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, e.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	sealed := e.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return hex.EncodeToString(sealed), nil
}

func (e *CardEncryptor) Decrypt(ciphertext string) (string, error) {
	raw, err := hex.DecodeString(ciphertext)
	if err != nil {
		return "", ErrInvalidCiphertext
	}
	nonceSize := e.aead.NonceSize()
	if len(raw) <= nonceSize {
		return "", ErrInvalidCiphertext
	}

	plaintext, err := e.aead.Open(nil, raw[:nonceSize], raw[nonceSize:], nil)
	if err != nil {
		return "", ErrInvalidCiphertext
	}
	return string(plaintext), nil
}
