package encryption

import (
	"encoding/base64"
	"fmt"
)

// Manager handles encryption and decryption operations.
type Manager struct {
	cipher *Cipher
}

// NewManager creates a new encryption manager with the specified cipher.
func NewManager(cipher *Cipher) *Manager {
	return &Manager{
		cipher: cipher,
	}
}

// NewManagerWithChaCha20Poly1305 creates a manager using ChaCha20-Poly1305 (recommended default).
func NewManagerWithChaCha20Poly1305(key []byte) (*Manager, error) {
	cipher, err := NewChaCha20Poly1305Cipher(key)
	if err != nil {
		return nil, err
	}
	return NewManager(cipher), nil
}

// NewManagerWithXChaCha20Poly1305 creates a manager using XChaCha20-Poly1305.
func NewManagerWithXChaCha20Poly1305(key []byte) (*Manager, error) {
	cipher, err := NewXChaCha20Poly1305Cipher(key)
	if err != nil {
		return nil, err
	}
	return NewManager(cipher), nil
}

// CipherType returns the cipher type used by this manager.
func (m *Manager) CipherType() CipherType {
	return m.cipher.Type()
}

// Encrypt encrypts raw bytes.
func (m *Manager) Encrypt(plaintext []byte) ([]byte, error) {
	return m.cipher.Encrypt(plaintext)
}

// Decrypt decrypts raw bytes.
func (m *Manager) Decrypt(ciphertext []byte) ([]byte, error) {
	return m.cipher.Decrypt(ciphertext)
}

// EncryptString encrypts a string and returns the result base64-encoded,
// suitable for a TEXT settings column.
func (m *Manager) EncryptString(plaintext string) (string, error) {
	ciphertext, err := m.cipher.Encrypt([]byte(plaintext))
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// DecryptString reverses EncryptString.
func (m *Manager) DecryptString(encoded string) (string, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("decode ciphertext: %w", err)
	}
	plaintext, err := m.cipher.Decrypt(ciphertext)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}
