package kms

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// generateLocalSecretsURI generates a base64key:// URI for testing.
func generateLocalSecretsURI(t *testing.T) string {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return "base64key://" + base64.URLEncoding.EncodeToString(key)
}

func TestKMSService_OpenKeeper(t *testing.T) {
	ctx := context.Background()
	kmsService := NewKMSService()

	t.Run("Success_LocalSecrets", func(t *testing.T) {
		keeper, err := kmsService.OpenKeeper(ctx, generateLocalSecretsURI(t))
		require.NoError(t, err)
		require.NotNil(t, keeper)

		defer func() {
			assert.NoError(t, keeper.Close())
		}()
	})

	t.Run("Error_InvalidURI", func(t *testing.T) {
		keeper, err := kmsService.OpenKeeper(ctx, "invalid://uri")
		assert.Error(t, err)
		assert.Nil(t, keeper)
		assert.Contains(t, err.Error(), "failed to open KMS keeper")
	})

	t.Run("Error_EmptyURI", func(t *testing.T) {
		keeper, err := kmsService.OpenKeeper(ctx, "")
		assert.Error(t, err)
		assert.Nil(t, keeper)
	})
}

func TestDecryptString(t *testing.T) {
	ctx := context.Background()
	kmsService := NewKMSService()

	keeper, err := kmsService.OpenKeeper(ctx, generateLocalSecretsURI(t))
	require.NoError(t, err)
	defer func() {
		require.NoError(t, keeper.Close())
	}()

	t.Run("Success_RoundTrip", func(t *testing.T) {
		ciphertext, err := keeper.Encrypt(ctx, []byte("admin-api-key-value"))
		require.NoError(t, err)

		plaintext, err := DecryptString(ctx, keeper, base64.StdEncoding.EncodeToString(ciphertext))
		require.NoError(t, err)
		assert.Equal(t, "admin-api-key-value", plaintext)
	})

	t.Run("Error_InvalidBase64", func(t *testing.T) {
		plaintext, err := DecryptString(ctx, keeper, "not-base64!!!")
		assert.Error(t, err)
		assert.Empty(t, plaintext)
		assert.Contains(t, err.Error(), "failed to decode ciphertext")
	})

	t.Run("Error_InvalidCiphertext", func(t *testing.T) {
		plaintext, err := DecryptString(ctx, keeper, base64.StdEncoding.EncodeToString([]byte("garbage")))
		assert.Error(t, err)
		assert.Empty(t, plaintext)
		assert.Contains(t, err.Error(), "failed to decrypt ciphertext")
	})
}
