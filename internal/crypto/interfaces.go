// Package crypto implements the encrypted blob codec and the key-derivation
// helpers at the boundary of the sync engine. The engine treats vault
// ciphertext as opaque bytes; everything key-related lives here and the key
// itself is supplied per operation, never persisted.
package crypto

import "github.com/ivolkov/go-vault-sync/models"

// KeyChain derives and prepares the symmetric key material used to protect
// the vault blob.
type KeyChain interface {
	// GenerateEncryptionSalt returns a fresh random salt for key
	// derivation, created once at registration.
	GenerateEncryptionSalt() ([]byte, error)

	// DeriveKey derives the 256-bit vault key from the master password and
	// the account's encryption salt. The result exists only in client
	// memory and is never transmitted.
	DeriveKey(masterPassword string, salt []byte) []byte

	// AuthHash computes the authentication proof sent to the server in
	// place of the password. authSalt domain-separates the proof from the
	// vault key so the two values cannot substitute for each other.
	AuthHash(key []byte, authSalt string) []byte
}

// BlobCodec converts between the decrypted vault snapshot and the opaque
// ciphertext blob stored locally and uploaded to the server.
type BlobCodec interface {
	// EncryptSnapshot serializes snap and encrypts it with key. The
	// resulting blob is nonce-prefixed AES-256-GCM ciphertext.
	EncryptSnapshot(snap *models.VaultSnapshot, key []byte) ([]byte, error)

	// DecryptSnapshot reverses EncryptSnapshot. A wrong key or corrupted
	// blob yields an error wrapping [ErrDecryptFailed].
	DecryptSnapshot(blob, key []byte) (*models.VaultSnapshot, error)
}
