// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ivan Volkov

package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/argon2"
)

// keyChain is the private implementation of [KeyChain].
type keyChain struct {
	// Argon2id tuning parameters. Stored in the struct so they can be
	// adjusted per deployment target (e.g. mobile vs. desktop).
	argonTime    uint32
	argonMemory  uint32
	argonThreads uint8
	argonKeyLen  uint32
}

// NewKeyChain constructs a [KeyChain] with the Argon2id parameters
// recommended by OWASP (2024):
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
//   - key length:  32 bytes (256 bits)
func NewKeyChain() KeyChain {
	return &keyChain{
		argonTime:    1,
		argonMemory:  64 * 1024, // 64 MiB
		argonThreads: 4,
		argonKeyLen:  32, // 256 bits
	}
}

// GenerateEncryptionSalt implements [KeyChain]. It reads 16 random bytes
// from the OS CSPRNG.
func (k *keyChain) GenerateEncryptionSalt() ([]byte, error) {
	salt := make([]byte, 16)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// DeriveKey implements [KeyChain]. It derives a 256-bit vault key from
// masterPassword and salt using Argon2id with the parameters stored in the
// receiver.
func (k *keyChain) DeriveKey(masterPassword string, salt []byte) []byte {
	return argon2.IDKey(
		[]byte(masterPassword),
		salt,
		k.argonTime,
		k.argonMemory,
		k.argonThreads,
		k.argonKeyLen,
	)
}

// AuthHash implements [KeyChain]. It computes SHA-256(key ‖ authSalt). The
// fixed authSalt domain-separates the proof from the vault key itself.
func (k *keyChain) AuthHash(key []byte, authSalt string) []byte {
	h := sha256.New()
	h.Write(key)
	h.Write([]byte(authSalt))
	return h.Sum(nil)
}
