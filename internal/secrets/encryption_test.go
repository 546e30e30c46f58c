package secrets

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewEncryptorRejectsShortSecret(t *testing.T) {
	if _, err := NewEncryptor("too-short"); err == nil {
		t.Error("expected error for short secret, got nil")
	}
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	enc, err := NewEncryptor(strings.Repeat("s", 32))
	if err != nil {
		t.Fatalf("NewEncryptor() error = %v", err)
	}

	sealed, err := enc.Encrypt("AIza-test-key")
	if err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}
	if bytes.Contains(sealed, []byte("AIza-test-key")) {
		t.Error("ciphertext contains plaintext")
	}

	got, err := enc.Decrypt(sealed)
	if err != nil {
		t.Fatalf("Decrypt() error = %v", err)
	}
	if got != "AIza-test-key" {
		t.Errorf("Decrypt() = %q, want %q", got, "AIza-test-key")
	}
}

func TestDecryptWithWrongKeyFails(t *testing.T) {
	enc1, _ := NewEncryptor(strings.Repeat("a", 32))
	enc2, _ := NewEncryptor(strings.Repeat("b", 32))

	sealed, err := enc1.Encrypt("secret value")
	if err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}

	if _, err := enc2.Decrypt(sealed); err == nil {
		t.Error("expected decryption with wrong key to fail")
	}
}

func TestDecryptTruncatedBlob(t *testing.T) {
	enc, _ := NewEncryptor(strings.Repeat("x", 32))
	if _, err := enc.Decrypt([]byte{1, 2, 3}); err == nil {
		t.Error("expected error for truncated blob")
	}
}
