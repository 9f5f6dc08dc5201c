package models

// StaticCredential is a plaintext credential record used by the static
// verifier variant. The whole table is fixed at construction time and
// lives only in process memory.
type StaticCredential struct {
	// Secret is the plaintext password compared byte-for-byte, with no
	// normalization, against the submitted secret.
	Secret string

	// Role is the stored role returned on a successful verification.
	Role Role
}

// HashedCredential is a salted PBKDF2-HMAC-SHA256 credential record as it
// is persisted in the credential file, keyed there by identity.
type HashedCredential struct {
	// Salt is the per-credential random salt, hex-encoded.
	Salt string `json:"salt"`

	// Iterations is the PBKDF2 iteration count the hash was derived with.
	Iterations int `json:"iterations"`

	// Hash is the hex-encoded PBKDF2-HMAC-SHA256 derived key.
	Hash string `json:"hash"`
}

// AuthResult is the outcome of a verification call.
//
// Authentication failures never distinguish between an unknown identity and
// a wrong secret; the caller always sees the same not-authenticated result.
type AuthResult struct {
	// Authenticated reports whether the identity/secret pair matched a
	// stored credential.
	Authenticated bool `json:"authenticated"`

	// Role is the role granted to the identity. Only meaningful when
	// Authenticated is true.
	Role Role `json:"role,omitempty"`
}
