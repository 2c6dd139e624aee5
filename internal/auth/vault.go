package auth

import (
	"context"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"techsklep/mobile/internal/storage"
)

const saltSize = 32

// ErrSealedDataCorrupt marks a vault payload that cannot be decrypted,
// either because it was tampered with or the passphrase changed.
var ErrSealedDataCorrupt = errors.New("sealed data corrupt")

// Vault seals small payloads at rest in device storage. The key is derived
// from a passphrase with scrypt using a per-write random salt; the payload
// layout is salt || nonce || ciphertext.
type Vault struct {
	kv         storage.KV
	passphrase []byte
}

func NewVault(kv storage.KV, passphrase string) *Vault {
	return &Vault{kv: kv, passphrase: []byte(passphrase)}
}

// Seal encrypts plaintext and stores it under key.
func (v *Vault) Seal(ctx context.Context, key string, plaintext []byte) error {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return fmt.Errorf("generating salt: %w", err)
	}
	aead, err := v.aead(salt)
	if err != nil {
		return err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return fmt.Errorf("generating nonce: %w", err)
	}

	payload := make([]byte, 0, saltSize+len(nonce)+len(plaintext)+aead.Overhead())
	payload = append(payload, salt...)
	payload = append(payload, nonce...)
	payload = aead.Seal(payload, nonce, plaintext, nil)
	return v.kv.Set(ctx, key, payload)
}

// Open loads and decrypts the payload under key. Missing keys return
// storage.ErrNotFound; undecryptable payloads return ErrSealedDataCorrupt.
func (v *Vault) Open(ctx context.Context, key string) ([]byte, error) {
	payload, err := v.kv.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if len(payload) < saltSize {
		return nil, ErrSealedDataCorrupt
	}
	salt := payload[:saltSize]
	aead, err := v.aead(salt)
	if err != nil {
		return nil, err
	}
	rest := payload[saltSize:]
	if len(rest) < aead.NonceSize() {
		return nil, ErrSealedDataCorrupt
	}
	nonce, ciphertext := rest[:aead.NonceSize()], rest[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrSealedDataCorrupt
	}
	return plaintext, nil
}

// Delete removes the sealed payload.
func (v *Vault) Delete(ctx context.Context, key string) error {
	return v.kv.Delete(ctx, key)
}

func (v *Vault) aead(salt []byte) (cipher.AEAD, error) {
	derived, err := scrypt.Key(v.passphrase, salt, 1<<15, 8, 1, chacha20poly1305.KeySize)
	if err != nil {
		return nil, fmt.Errorf("deriving key: %w", err)
	}
	return chacha20poly1305.NewX(derived)
}
