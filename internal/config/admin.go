// Package config provides admin credential verification.
package config

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// AdminCredential verifies the shared secret presented on /admin routes
// against a stored bcrypt hash. Only the hash is ever configured; the
// plaintext secret lives with the operator.
type AdminCredential struct {
	hash string
}

// NewAdminCredential creates a credential from a bcrypt hash string.
// An empty hash yields a disabled credential that rejects everything.
func NewAdminCredential(hash string) (*AdminCredential, error) {
	if hash != "" {
		// Reject obviously malformed hashes up front rather than on first request.
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return nil, fmt.Errorf("invalid admin token hash: %w", err)
		}
	}
	return &AdminCredential{hash: hash}, nil
}

// Enabled reports whether an admin secret has been configured.
func (c *AdminCredential) Enabled() bool {
	return c.hash != ""
}

// Verify checks a presented secret against the stored hash.
func (c *AdminCredential) Verify(secret string) bool {
	if c.hash == "" || secret == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(c.hash), []byte(secret)) == nil
}

// HashSecret hashes a plaintext admin secret for storage in configuration.
// Exposed for the gen-admin-hash CLI helper.
func HashSecret(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash secret: %w", err)
	}
	return string(hash), nil
}
