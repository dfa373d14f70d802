package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"

	"github.com/ivolkov/go-vault-sync/models"
)

// blobCodec is the private implementation of [BlobCodec]. Encryption and
// decryption are synchronous and bounded; no I/O happens here so the codec
// is safe to call while holding the replica lock.
type blobCodec struct{}

// NewBlobCodec constructs a [BlobCodec]. The codec is stateless; a single
// instance can be shared by all services.
func NewBlobCodec() BlobCodec {
	return &blobCodec{}
}

// EncryptSnapshot implements [BlobCodec]. It marshals snap to JSON and
// encrypts it with key using AES-256-GCM. A random 12-byte nonce is
// prepended to the ciphertext so the decryption side can locate it:
// blob = nonce ‖ ciphertext.
func (c *blobCodec) EncryptSnapshot(snap *models.VaultSnapshot, key []byte) ([]byte, error) {
	plaintext, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal snapshot: %v", ErrEncodeFailed, err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: create cipher: %v", ErrEncodeFailed, err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: create gcm: %v", ErrEncodeFailed, err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("%w: generate nonce: %v", ErrEncodeFailed, err)
	}

	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)
	return append(nonce, ciphertext...), nil
}

// DecryptSnapshot implements [BlobCodec]. It splits the nonce off blob,
// decrypts the ciphertext with key via AES-256-GCM, and unmarshals the
// plaintext JSON into a fresh snapshot. The blob must be at least as long
// as the GCM nonce (12 bytes).
func (c *blobCodec) DecryptSnapshot(blob, key []byte) (*models.VaultSnapshot, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: create cipher: %v", ErrDecryptFailed, err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: create gcm: %v", ErrDecryptFailed, err)
	}

	nonceSize := gcm.NonceSize()
	if len(blob) < nonceSize {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrDecryptFailed)
	}
	nonce, ciphertext := blob[:nonceSize], blob[nonceSize:]

	// An auth-tag mismatch here almost always means the user entered the
	// wrong master password, producing a wrong key.
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryptFailed, err)
	}

	snap := models.NewVaultSnapshot()
	if err := json.Unmarshal(plaintext, snap); err != nil {
		return nil, fmt.Errorf("%w: unmarshal snapshot: %v", ErrDecryptFailed, err)
	}

	return snap, nil
}
