// Package service provides technical services for bootstrap key operations.
//
// This package implements reusable services for secret generation, hashing, and
// validation using industry-standard cryptographic practices.
package service

// SecretService defines operations for bootstrap secret generation and validation.
// Implementations must use cryptographically secure random generation and
// industry-standard hashing algorithms (e.g., bcrypt, argon2).
type SecretService interface {
	// GenerateSecret creates a new cryptographically secure random secret.
	// Returns both the plain text secret (to be shared with the operator) and
	// the hashed version (to be stored in the database).
	//
	// The plain secret should be treated as sensitive data and only displayed
	// once during key creation.
	GenerateSecret() (plainSecret string, hashedSecret string, err error)

	// HashSecret hashes a plain text secret using a secure hashing algorithm.
	HashSecret(plainSecret string) (hashedSecret string, err error)

	// CompareSecret compares a plain text secret against a hashed secret.
	// Returns true if the plain secret matches the hash, false otherwise.
	// This is constant-time to prevent timing attacks.
	CompareSecret(plainSecret string, hashedSecret string) bool

	// Hint derives the short stored hint from a plain secret.
	Hint(plainSecret string) string
}
