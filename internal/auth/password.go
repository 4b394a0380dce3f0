// Package auth provides credential primitives: password digests and
// session token generation.
package auth

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// PasswordService produces one-way password digests.
//
// The digest must be deterministic: login verifies credentials by
// comparing the stored digest with the digest of the presented password,
// so salted schemes do not fit here. SHA3-256 keeps the function one-way
// and non-reversible while staying reproducible.
//
// It's a struct (not free functions) so services take it as an injected
// dependency like every other collaborator.
type PasswordService struct{}

// NewPasswordService creates a PasswordService.
func NewPasswordService() *PasswordService {
	return &PasswordService{}
}

// Hash returns the lowercase hex SHA3-256 digest of plaintext. The digest
// is stored in place of the password and never echoed to clients.
func (p *PasswordService) Hash(plaintext string) string {
	sum := sha3.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

// Verify reports whether plaintext digests to hash.
func (p *PasswordService) Verify(hash, plaintext string) bool {
	return p.Hash(plaintext) == hash
}
