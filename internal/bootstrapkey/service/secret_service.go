// Package service provides secret generation and verification for bootstrap keys.
// Implements secure random secret generation and Argon2id hashing so that only
// a hash and a short hint ever reach the database.
package service

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/allisson/go-pwdhash"

	apperrors "github.com/allisson/iot-onboarding/internal/errors"
)

// hintLength is the number of trailing characters of the plaintext secret
// stored as a lookup hint.
const hintLength = 4

// secretService implements SecretService using Argon2id for secret hashing.
type secretService struct {
	hasher *pwdhash.PasswordHasher
}

// GenerateSecret creates a new cryptographically secure 32-byte random secret.
// The secret is base64-encoded for easy transmission and storage.
func (s *secretService) GenerateSecret() (plainSecret string, hashedSecret string, err error) {
	// Generate 32 random bytes (256 bits)
	randomBytes := make([]byte, 32)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", "", apperrors.Wrap(err, "failed to generate random secret")
	}

	// Encode to unpadded base64 so the token stays URL-safe and the trailing
	// hint characters remain uniformly random
	plainSecret = base64.RawURLEncoding.EncodeToString(randomBytes)

	// Hash the secret
	hashedSecret, err = s.HashSecret(plainSecret)
	if err != nil {
		return "", "", err
	}

	return plainSecret, hashedSecret, nil
}

// HashSecret hashes a plain text secret using Argon2id.
func (s *secretService) HashSecret(plainSecret string) (hashedSecret string, err error) {
	hashedSecret, err = s.hasher.Hash([]byte(plainSecret))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash secret")
	}
	return hashedSecret, nil
}

// CompareSecret performs a constant-time comparison between a plain secret and its hash.
func (s *secretService) CompareSecret(plainSecret string, hashedSecret string) bool {
	ok, err := s.hasher.Verify([]byte(plainSecret), hashedSecret)
	if err != nil {
		return false
	}
	return ok
}

// Hint returns the trailing characters of a plain secret used for operator
// correlation and candidate lookup. Secrets shorter than the hint length are
// returned unchanged.
func (s *secretService) Hint(plainSecret string) string {
	if len(plainSecret) <= hintLength {
		return plainSecret
	}
	return plainSecret[len(plainSecret)-hintLength:]
}

// NewSecretService creates a new SecretService instance using Argon2id hashing.
// Uses the Moderate policy for a balance between security and performance.
func NewSecretService() SecretService {
	hasher, err := pwdhash.New(
		pwdhash.WithPolicy(pwdhash.PolicyModerate),
	)
	if err != nil {
		// This should never happen with valid policy
		panic(err)
	}

	return &secretService{
		hasher: hasher,
	}
}
