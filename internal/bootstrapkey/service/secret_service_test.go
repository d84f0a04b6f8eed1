package service

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSecretService(t *testing.T) {
	service := NewSecretService()
	assert.NotNil(t, service)
	assert.IsType(t, &secretService{}, service)
}

func TestSecretService_GenerateSecret(t *testing.T) {
	service := NewSecretService()

	t.Run("Success_GeneratesValidSecret", func(t *testing.T) {
		plainSecret, hashedSecret, err := service.GenerateSecret()
		require.NoError(t, err)

		// Verify plain secret is valid unpadded base64 for 32 bytes
		assert.NotEmpty(t, plainSecret)
		decoded, err := base64.RawURLEncoding.DecodeString(plainSecret)
		require.NoError(t, err)
		assert.Len(t, decoded, 32)

		// Verify hash is stored in PHC format, distinct from plaintext
		assert.NotEmpty(t, hashedSecret)
		assert.NotEqual(t, plainSecret, hashedSecret)
		assert.Contains(t, hashedSecret, "$argon2id$")
	})

	t.Run("Success_SecretIsUnpaddedAndHintSuffixVaries", func(t *testing.T) {
		lastChars := make(map[byte]bool)
		for i := 0; i < 20; i++ {
			plainSecret, _, err := service.GenerateSecret()
			require.NoError(t, err)

			assert.NotContains(t, plainSecret, "=")
			hint := service.Hint(plainSecret)
			lastChars[hint[len(hint)-1]] = true
		}

		// A fixed trailing character would collapse the hint keyspace
		assert.Greater(t, len(lastChars), 1)
	})

	t.Run("Success_GeneratesUniqueSecrets", func(t *testing.T) {
		plainSecret1, hashedSecret1, err := service.GenerateSecret()
		require.NoError(t, err)

		plainSecret2, hashedSecret2, err := service.GenerateSecret()
		require.NoError(t, err)

		assert.NotEqual(t, plainSecret1, plainSecret2)
		assert.NotEqual(t, hashedSecret1, hashedSecret2)
	})

	t.Run("Success_GeneratedSecretCanBeVerified", func(t *testing.T) {
		plainSecret, hashedSecret, err := service.GenerateSecret()
		require.NoError(t, err)

		assert.True(t, service.CompareSecret(plainSecret, hashedSecret))
	})
}

func TestSecretService_HashSecret(t *testing.T) {
	service := NewSecretService()

	t.Run("Success_SameSecretProducesDifferentHashes", func(t *testing.T) {
		plainSecret := "test-secret-123"

		hashedSecret1, err := service.HashSecret(plainSecret)
		require.NoError(t, err)

		hashedSecret2, err := service.HashSecret(plainSecret)
		require.NoError(t, err)

		// Different hashes due to different salts
		assert.NotEqual(t, hashedSecret1, hashedSecret2)

		// But both verify against the same plain secret
		assert.True(t, service.CompareSecret(plainSecret, hashedSecret1))
		assert.True(t, service.CompareSecret(plainSecret, hashedSecret2))
	})
}

func TestSecretService_CompareSecret(t *testing.T) {
	service := NewSecretService()

	t.Run("Success_CorrectSecretMatches", func(t *testing.T) {
		plainSecret := "correct-secret"
		hashedSecret, err := service.HashSecret(plainSecret)
		require.NoError(t, err)

		assert.True(t, service.CompareSecret(plainSecret, hashedSecret))
	})

	t.Run("Failure_IncorrectSecretDoesNotMatch", func(t *testing.T) {
		plainSecret := "correct-secret"
		hashedSecret, err := service.HashSecret(plainSecret)
		require.NoError(t, err)

		assert.False(t, service.CompareSecret("wrong-secret", hashedSecret))
	})

	t.Run("Failure_InvalidHashFormat", func(t *testing.T) {
		assert.False(t, service.CompareSecret("correct-secret", "invalid-hash-format"))
	})

	t.Run("Failure_EmptyHashString", func(t *testing.T) {
		assert.False(t, service.CompareSecret("correct-secret", ""))
	})
}

func TestSecretService_Hint(t *testing.T) {
	service := NewSecretService()

	t.Run("Success_ReturnsLastFourCharacters", func(t *testing.T) {
		assert.Equal(t, "wxyz", service.Hint("abcdefghijklmnopqrstuvwxyz"))
	})

	t.Run("Success_ShortSecretReturnedUnchanged", func(t *testing.T) {
		assert.Equal(t, "abc", service.Hint("abc"))
		assert.Equal(t, "abcd", service.Hint("abcd"))
	})

	t.Run("Success_GeneratedSecretHintMatchesSuffix", func(t *testing.T) {
		plainSecret, _, err := service.GenerateSecret()
		require.NoError(t, err)

		hint := service.Hint(plainSecret)
		assert.Len(t, hint, 4)
		assert.True(t, len(plainSecret) > 4)
		assert.Equal(t, plainSecret[len(plainSecret)-4:], hint)
	})
}
