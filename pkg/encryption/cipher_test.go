package encryption

import (
	"bytes"
	"crypto/rand"
	"testing"
)

func testKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	return key
}

func TestCipherRoundTrip(t *testing.T) {
	for _, newCipher := range []func([]byte) (*Cipher, error){
		NewChaCha20Poly1305Cipher,
		NewXChaCha20Poly1305Cipher,
	} {
		c, err := newCipher(testKey(t))
		if err != nil {
			t.Fatalf("create cipher: %v", err)
		}

		plaintext := []byte("pairing-token-value")
		ciphertext, err := c.Encrypt(plaintext)
		if err != nil {
			t.Fatalf("Encrypt() error = %v", err)
		}
		if bytes.Contains(ciphertext, plaintext) {
			t.Error("ciphertext contains plaintext")
		}

		got, err := c.Decrypt(ciphertext)
		if err != nil {
			t.Fatalf("Decrypt() error = %v", err)
		}
		if !bytes.Equal(got, plaintext) {
			t.Errorf("Decrypt() = %q, want %q", got, plaintext)
		}
	}
}

func TestCipherInvalidKeySize(t *testing.T) {
	if _, err := NewChaCha20Poly1305Cipher(make([]byte, 16)); err == nil {
		t.Error("expected error for short key")
	}
	if _, err := NewXChaCha20Poly1305Cipher(nil); err == nil {
		t.Error("expected error for nil key")
	}
}

func TestDecryptRejectsTamperedCiphertext(t *testing.T) {
	c, err := NewChaCha20Poly1305Cipher(testKey(t))
	if err != nil {
		t.Fatalf("create cipher: %v", err)
	}

	ciphertext, err := c.Encrypt([]byte("secret"))
	if err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}

	ciphertext[len(ciphertext)-1] ^= 0xff
	if _, err := c.Decrypt(ciphertext); err == nil {
		t.Error("expected error for tampered ciphertext")
	}
}

func TestDecryptTooShort(t *testing.T) {
	c, err := NewChaCha20Poly1305Cipher(testKey(t))
	if err != nil {
		t.Fatalf("create cipher: %v", err)
	}

	if _, err := c.Decrypt([]byte{1, 2, 3}); err == nil {
		t.Error("expected error for truncated ciphertext")
	}
}

func TestNonceUniqueness(t *testing.T) {
	c, err := NewXChaCha20Poly1305Cipher(testKey(t))
	if err != nil {
		t.Fatalf("create cipher: %v", err)
	}

	a, _ := c.Encrypt([]byte("same input"))
	b, _ := c.Encrypt([]byte("same input"))
	if bytes.Equal(a, b) {
		t.Error("two encryptions of the same plaintext produced identical output")
	}
}
