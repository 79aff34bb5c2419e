// Package application wires configuration into the service's long-lived
// dependencies: the encryption manager, the sqlite catalog, and the export
// storage backend.
package application

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"thirdcoast.systems/clipstudio/internal/config"
	"thirdcoast.systems/clipstudio/pkg/encryption"
)

// InitEncryptionManager builds the encryption manager used to protect the
// extension pairing token at rest. The key is a 64-character hex string
// (32 bytes). When no key is configured, an ephemeral random key is
// generated: tokens then survive only until the next restart, which is an
// acceptable default for a localhost tool.
func InitEncryptionManager(conf *config.Config) (*encryption.Manager, error) {
	var key []byte
	if conf.EncryptionKey == "" {
		key = make([]byte, encryption.KeySize)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("generate ephemeral key: %w", err)
		}
	} else {
		decoded, err := hex.DecodeString(conf.EncryptionKey)
		if err != nil {
			return nil, fmt.Errorf("invalid ENCRYPTION_KEY format (must be 64-char hex string): %w", err)
		}
		if len(decoded) != encryption.KeySize {
			return nil, fmt.Errorf("ENCRYPTION_KEY must be exactly %d bytes (%d hex chars), got %d bytes",
				encryption.KeySize, encryption.KeySize*2, len(decoded))
		}
		key = decoded
	}

	cipherType := conf.EncryptionCipher
	if cipherType == "" {
		cipherType = string(encryption.CipherChaCha20Poly1305)
	}

	var (
		manager *encryption.Manager
		err     error
	)
	switch strings.ToLower(cipherType) {
	case string(encryption.CipherChaCha20Poly1305):
		manager, err = encryption.NewManagerWithChaCha20Poly1305(key)
	case string(encryption.CipherXChaCha20Poly1305):
		manager, err = encryption.NewManagerWithXChaCha20Poly1305(key)
	default:
		return nil, fmt.Errorf("unsupported ENCRYPTION_CIPHER: %s (must be chacha20-poly1305 or xchacha20-poly1305)", cipherType)
	}
	if err != nil {
		return nil, fmt.Errorf("create encryption manager: %w", err)
	}

	return manager, nil
}
