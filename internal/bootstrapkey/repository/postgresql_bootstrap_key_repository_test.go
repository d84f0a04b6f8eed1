package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/iot-onboarding/internal/bootstrapkey/domain"
	apperrors "github.com/allisson/iot-onboarding/internal/errors"
	"github.com/allisson/iot-onboarding/internal/testutil"
)

func TestNewPostgreSQLBootstrapKeyRepository(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)

	repo := NewPostgreSQLBootstrapKeyRepository(db)
	assert.NotNil(t, repo)
	assert.IsType(t, &PostgreSQLBootstrapKeyRepository{}, repo)
}

func TestPostgreSQLBootstrapKeyRepository_Create(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLBootstrapKeyRepository(db)
	ctx := context.Background()

	group := "factory-line-1"
	expiresAt := time.Now().UTC().Add(30 * 24 * time.Hour)
	key := &domain.BootstrapKey{
		SecretHash: "$argon2id$test-hash",
		SecretHint: "wxyz",
		Group:      &group,
		CreatedAt:  time.Now().UTC(),
		ExpiresAt:  &expiresAt,
		IsActive:   true,
	}

	err := repo.Create(ctx, key)
	require.NoError(t, err)
	assert.Positive(t, key.ID)

	// Verify the key was created by reading it back
	readKey, err := repo.Get(ctx, key.ID)
	require.NoError(t, err)

	assert.Equal(t, key.ID, readKey.ID)
	assert.Equal(t, key.SecretHash, readKey.SecretHash)
	assert.Equal(t, key.SecretHint, readKey.SecretHint)
	require.NotNil(t, readKey.Group)
	assert.Equal(t, group, *readKey.Group)
	assert.WithinDuration(t, key.CreatedAt, readKey.CreatedAt, time.Second)
	require.NotNil(t, readKey.ExpiresAt)
	assert.WithinDuration(t, expiresAt, *readKey.ExpiresAt, time.Second)
	assert.True(t, readKey.IsActive)
}

func TestPostgreSQLBootstrapKeyRepository_Create_AssignsIncreasingIDs(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLBootstrapKeyRepository(db)
	ctx := context.Background()

	var lastID int64
	for i := range 3 {
		key := &domain.BootstrapKey{
			SecretHash: fmt.Sprintf("$argon2id$hash-%d", i),
			SecretHint: "hint",
			CreatedAt:  time.Now().UTC(),
			IsActive:   true,
		}
		require.NoError(t, repo.Create(ctx, key))
		assert.Greater(t, key.ID, lastID)
		lastID = key.ID
	}
}

func TestPostgreSQLBootstrapKeyRepository_Create_NoExpiry(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLBootstrapKeyRepository(db)
	ctx := context.Background()

	key := &domain.BootstrapKey{
		SecretHash: "$argon2id$no-expiry-hash",
		SecretHint: "abcd",
		CreatedAt:  time.Now().UTC(),
		ExpiresAt:  nil,
		IsActive:   true,
	}

	require.NoError(t, repo.Create(ctx, key))

	readKey, err := repo.Get(ctx, key.ID)
	require.NoError(t, err)
	assert.Nil(t, readKey.ExpiresAt)
	assert.Nil(t, readKey.Group)
}

func TestPostgreSQLBootstrapKeyRepository_Get_NotFound(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLBootstrapKeyRepository(db)

	_, err := repo.Get(context.Background(), 999999)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestPostgreSQLBootstrapKeyRepository_List(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLBootstrapKeyRepository(db)
	ctx := context.Background()

	// Create 5 keys
	ids := make([]int64, 0, 5)
	for i := range 5 {
		key := &domain.BootstrapKey{
			SecretHash: fmt.Sprintf("$argon2id$list-hash-%d", i),
			SecretHint: "hint",
			CreatedAt:  time.Now().UTC(),
			IsActive:   true,
		}
		require.NoError(t, repo.Create(ctx, key))
		ids = append(ids, key.ID)
	}

	// Newest first
	keys, err := repo.List(ctx, 3, 0)
	require.NoError(t, err)
	require.Len(t, keys, 3)
	assert.Equal(t, ids[4], keys[0].ID)
	assert.Equal(t, ids[3], keys[1].ID)
	assert.Equal(t, ids[2], keys[2].ID)

	// Offset skips the newest
	keys, err = repo.List(ctx, 3, 3)
	require.NoError(t, err)
	require.Len(t, keys, 2)
	assert.Equal(t, ids[1], keys[0].ID)
	assert.Equal(t, ids[0], keys[1].ID)

	// Offset beyond the data returns an empty slice
	keys, err = repo.List(ctx, 10, 100)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestPostgreSQLBootstrapKeyRepository_ListActiveByHint(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLBootstrapKeyRepository(db)
	ctx := context.Background()

	// Two active keys sharing a hint, one with a different hint, one inactive
	matching1 := &domain.BootstrapKey{
		SecretHash: "$argon2id$hint-hash-1",
		SecretHint: "aaaa",
		CreatedAt:  time.Now().UTC(),
		IsActive:   true,
	}
	matching2 := &domain.BootstrapKey{
		SecretHash: "$argon2id$hint-hash-2",
		SecretHint: "aaaa",
		CreatedAt:  time.Now().UTC(),
		IsActive:   true,
	}
	otherHint := &domain.BootstrapKey{
		SecretHash: "$argon2id$hint-hash-3",
		SecretHint: "bbbb",
		CreatedAt:  time.Now().UTC(),
		IsActive:   true,
	}
	inactive := &domain.BootstrapKey{
		SecretHash: "$argon2id$hint-hash-4",
		SecretHint: "aaaa",
		CreatedAt:  time.Now().UTC(),
		IsActive:   false,
	}
	for _, key := range []*domain.BootstrapKey{matching1, matching2, otherHint, inactive} {
		require.NoError(t, repo.Create(ctx, key))
	}

	keys, err := repo.ListActiveByHint(ctx, "aaaa")
	require.NoError(t, err)
	require.Len(t, keys, 2)
	assert.Equal(t, matching2.ID, keys[0].ID)
	assert.Equal(t, matching1.ID, keys[1].ID)

	// No match returns an empty slice, not an error
	keys, err = repo.ListActiveByHint(ctx, "zzzz")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestPostgreSQLBootstrapKeyRepository_SetActive(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLBootstrapKeyRepository(db)
	ctx := context.Background()

	id := testutil.CreateTestBootstrapKey(t, db, "postgres", "$argon2id$set-active-hash", "hint")

	require.NoError(t, repo.SetActive(ctx, id, false))

	key, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.False(t, key.IsActive)

	require.NoError(t, repo.SetActive(ctx, id, true))

	key, err = repo.Get(ctx, id)
	require.NoError(t, err)
	assert.True(t, key.IsActive)
}

func TestPostgreSQLBootstrapKeyRepository_SetActive_NotFound(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLBootstrapKeyRepository(db)

	err := repo.SetActive(context.Background(), 999999, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestPostgreSQLBootstrapKeyRepository_Delete(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLBootstrapKeyRepository(db)
	ctx := context.Background()

	id := testutil.CreateTestBootstrapKey(t, db, "postgres", "$argon2id$delete-hash", "hint")

	require.NoError(t, repo.Delete(ctx, id))

	_, err := repo.Get(ctx, id)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// Deleting again reports not found
	err = repo.Delete(ctx, id)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
