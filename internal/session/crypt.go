// Package session owns the persisted authentication session.
package session

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/crypto/pbkdf2"
)

// Token-at-rest encryption: AES-256-GCM under a key derived with
// PBKDF2-SHA-256 from a per-install random secret. The secret lives in a
// 0600 key file next to the session file; losing it just logs the user out.

const (
	keyFileSize     = 64 // 32-byte secret + 32-byte salt
	derivedKeySize  = 32
	kdfIterations   = 10000
	encryptedPrefix = "enc:"
)

var errBadCiphertext = errors.New("invalid encrypted token")

// encryptToken seals the token and encodes it for JSON storage.
func (s *Store) encryptToken(token string) (string, error) {
	aead, err := s.loadCipher(true)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	sealed := aead.Seal(nonce, nonce, []byte(token), nil)
	return encryptedPrefix + base64.StdEncoding.EncodeToString(sealed), nil
}

// decryptToken reverses encryptToken.
func (s *Store) decryptToken(encoded string) (string, error) {
	if len(encoded) <= len(encryptedPrefix) || encoded[:len(encryptedPrefix)] != encryptedPrefix {
		return "", errBadCiphertext
	}

	sealed, err := base64.StdEncoding.DecodeString(encoded[len(encryptedPrefix):])
	if err != nil {
		return "", errBadCiphertext
	}

	aead, err := s.loadCipher(false)
	if err != nil {
		return "", err
	}
	if len(sealed) < aead.NonceSize() {
		return "", errBadCiphertext
	}

	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", errBadCiphertext
	}
	return string(plain), nil
}

// loadCipher builds the AEAD from the key file, creating the key material
// on first use when create is set.
func (s *Store) loadCipher(create bool) (cipher.AEAD, error) {
	material, err := os.ReadFile(s.keyPath)
	if err != nil {
		if !create {
			return nil, fmt.Errorf("read key file: %w", err)
		}
		material, err = s.createKeyFile()
		if err != nil {
			return nil, err
		}
	}
	if len(material) != keyFileSize {
		return nil, errors.New("malformed key file")
	}

	secret, salt := material[:32], material[32:]
	key := pbkdf2.Key(secret, salt, kdfIterations, derivedKeySize, sha256.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// createKeyFile generates and persists fresh key material with restrictive
// permissions.
func (s *Store) createKeyFile() ([]byte, error) {
	material := make([]byte, keyFileSize)
	if _, err := io.ReadFull(rand.Reader, material); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(s.keyPath), 0o700); err != nil {
		return nil, fmt.Errorf("create key directory: %w", err)
	}
	if err := os.WriteFile(s.keyPath, material, 0o600); err != nil {
		return nil, fmt.Errorf("write key file: %w", err)
	}
	return material, nil
}
