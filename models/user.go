package models

import "time"

// User is an account entity used at the authentication boundary. The sync
// engine itself never persists any of these fields; they exist only to
// obtain a bearer token and the key-derivation salt.
type User struct {
	// UserID is the internal identifier assigned by the server. Not
	// exposed via JSON; used only at the persistence layer.
	UserID int64 `json:"-"`

	// Login is the unique account login.
	Login string `json:"login"`

	// AuthHash is the authentication proof derived from the master
	// password on the client. It MUST be a KDF output, never plaintext;
	// the server stores only a further hash of it.
	AuthHash string `json:"auth_hash"`

	// EncryptionSalt is the per-account salt for client-side key
	// derivation, generated at registration and returned on login so any
	// device can re-derive the same key.
	EncryptionSalt string `json:"encryption_salt"`

	// CreatedAt is when the account was registered.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table associated with the User model.
func (u User) TableName() string {
	return "users"
}
