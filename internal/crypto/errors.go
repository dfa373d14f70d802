package crypto

import "errors"

var (
	// ErrEncodeFailed is returned when the vault snapshot cannot be
	// serialized or encrypted. Fatal for the current operation; never
	// swallowed.
	ErrEncodeFailed = errors.New("vault snapshot encoding failed")

	// ErrDecryptFailed is returned when a blob cannot be decrypted or the
	// plaintext cannot be decoded. Almost always means a wrong key
	// (wrong master password) or a corrupted blob.
	ErrDecryptFailed = errors.New("vault blob decryption failed")
)
