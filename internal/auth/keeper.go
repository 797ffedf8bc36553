// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth holds the client-side session state and the role gate in
// front of the protected views.
package auth

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// encryptedPrefix marks a persisted session as encrypted
	// (format: ENC:base64(salt|nonce|ciphertext)).
	encryptedPrefix = "ENC:"

	// keySize is the AES-256 key size.
	keySize = 32

	// nonceSize is the AES-GCM nonce size.
	nonceSize = 12

	// saltSize is the PBKDF2 salt size.
	saltSize = 32

	// kdfIterations is the PBKDF2-SHA-256 iteration count. The key file
	// secret is already high entropy, so this guards against little more
	// than a copied session file being opened without the key file.
	kdfIterations = 4096

	sessionFileName = "session.json"
	keyFileName     = "session.key"
)

// =============================================================================
// FILE KEEPER
// =============================================================================

// FileKeeper persists a remembered session under the application home
// directory, encrypted at rest with AES-256-GCM. The encryption key is
// derived from a random per-machine secret stored beside the session file
// with owner-only permissions.
type FileKeeper struct {
	dir string
}

// NewFileKeeper creates a keeper rooted at dir (usually ~/.helpdesk).
// The directory is created on first save, not here.
func NewFileKeeper(dir string) *FileKeeper {
	return &FileKeeper{dir: dir}
}

// Save encrypts and writes the session.
func (k *FileKeeper) Save(sess Session) error {
	if err := os.MkdirAll(k.dir, 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	secret, err := k.loadOrCreateSecret()
	if err != nil {
		return err
	}

	plaintext, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	sealed, err := seal(plaintext, secret)
	if err != nil {
		return fmt.Errorf("encrypt session: %w", err)
	}

	path := filepath.Join(k.dir, sessionFileName)
	if err := os.WriteFile(path, []byte(sealed), 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Load reads and decrypts the persisted session. Any failure, missing
// file, missing key, tampered ciphertext, unparsable JSON, reports ok=false
// so startup treats it as logged-out rather than erroring.
func (k *FileKeeper) Load() (Session, bool) {
	raw, err := os.ReadFile(filepath.Join(k.dir, sessionFileName))
	if err != nil {
		return Session{}, false
	}

	secret, err := os.ReadFile(filepath.Join(k.dir, keyFileName))
	if err != nil {
		return Session{}, false
	}

	plaintext, err := open(strings.TrimSpace(string(raw)), secret)
	if err != nil {
		return Session{}, false
	}

	var sess Session
	if err := json.Unmarshal(plaintext, &sess); err != nil {
		return Session{}, false
	}
	if sess.Token == "" {
		return Session{}, false
	}
	sess.Remember = true
	return sess, true
}

// Clear removes the persisted session. The key file stays so later saves
// reuse it. Missing files are not an error.
func (k *FileKeeper) Clear() error {
	err := os.Remove(filepath.Join(k.dir, sessionFileName))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// loadOrCreateSecret returns the per-machine key file secret, creating it
// with owner-only permissions on first use.
func (k *FileKeeper) loadOrCreateSecret() ([]byte, error) {
	path := filepath.Join(k.dir, keyFileName)
	if secret, err := os.ReadFile(path); err == nil && len(secret) > 0 {
		return secret, nil
	}

	secret := make([]byte, keySize)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("generate key file secret: %w", err)
	}
	encoded := []byte(base64.StdEncoding.EncodeToString(secret))
	if err := os.WriteFile(path, encoded, 0o600); err != nil {
		return nil, fmt.Errorf("write key file: %w", err)
	}
	return encoded, nil
}

// =============================================================================
// AES-256-GCM SEALING
// =============================================================================

// deriveKey stretches the key file secret into an AES-256 key.
func deriveKey(secret, salt []byte) []byte {
	return pbkdf2.Key(secret, salt, kdfIterations, keySize, sha256.New)
}

// seal encrypts plaintext and encodes it as ENC:base64(salt|nonce|ciphertext).
func seal(plaintext, secret []byte) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", err
	}
	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	block, err := aes.NewCipher(deriveKey(secret, salt))
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)

	buf := make([]byte, 0, saltSize+nonceSize+len(ciphertext))
	buf = append(buf, salt...)
	buf = append(buf, nonce...)
	buf = append(buf, ciphertext...)
	return encryptedPrefix + base64.StdEncoding.EncodeToString(buf), nil
}

// open decrypts a sealed value produced by seal.
func open(sealed string, secret []byte) ([]byte, error) {
	if !strings.HasPrefix(sealed, encryptedPrefix) {
		return nil, errors.New("not an encrypted session")
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(sealed, encryptedPrefix))
	if err != nil {
		return nil, err
	}
	if len(raw) < saltSize+nonceSize+1 {
		return nil, errors.New("sealed value too short")
	}

	salt := raw[:saltSize]
	nonce := raw[saltSize : saltSize+nonceSize]
	ciphertext := raw[saltSize+nonceSize:]

	block, err := aes.NewCipher(deriveKey(secret, salt))
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return gcm.Open(nil, nonce, ciphertext, nil)
}
