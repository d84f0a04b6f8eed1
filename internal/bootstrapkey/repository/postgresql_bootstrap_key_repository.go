// Package repository implements data persistence for bootstrap keys.
// Repositories support both PostgreSQL and MySQL with store-assigned identifiers
// that preserve creation order.
package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/iot-onboarding/internal/bootstrapkey/domain"
	"github.com/allisson/iot-onboarding/internal/database"
	apperrors "github.com/allisson/iot-onboarding/internal/errors"
)

// PostgreSQLBootstrapKeyRepository implements BootstrapKey persistence for PostgreSQL databases.
type PostgreSQLBootstrapKeyRepository struct {
	db *sql.DB
}

// Create inserts a new bootstrap key and assigns its store-generated identifier.
func (p *PostgreSQLBootstrapKeyRepository) Create(ctx context.Context, key *domain.BootstrapKey) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO bootstrap_keys (secret_hash, secret_hint, key_group, created_at, expires_at, is_active)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`

	err := querier.QueryRowContext(
		ctx,
		query,
		key.SecretHash,
		key.SecretHint,
		key.Group,
		key.CreatedAt,
		key.ExpiresAt,
		key.IsActive,
	).Scan(&key.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to create bootstrap key")
	}

	return nil
}

// Get retrieves a bootstrap key by its identifier.
func (p *PostgreSQLBootstrapKeyRepository) Get(
	ctx context.Context,
	id int64,
) (*domain.BootstrapKey, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, secret_hash, secret_hint, key_group, created_at, expires_at, is_active
			  FROM bootstrap_keys
			  WHERE id = $1`

	var key domain.BootstrapKey
	err := querier.QueryRowContext(ctx, query, id).Scan(
		&key.ID,
		&key.SecretHash,
		&key.SecretHint,
		&key.Group,
		&key.CreatedAt,
		&key.ExpiresAt,
		&key.IsActive,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrBootstrapKeyNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get bootstrap key")
	}

	return &key, nil
}

// List retrieves bootstrap keys ordered from newest to oldest.
func (p *PostgreSQLBootstrapKeyRepository) List(
	ctx context.Context,
	limit int,
	offset int,
) ([]*domain.BootstrapKey, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, secret_hash, secret_hint, key_group, created_at, expires_at, is_active
			  FROM bootstrap_keys
			  ORDER BY id DESC
			  LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list bootstrap keys")
	}
	defer func() {
		_ = rows.Close()
	}()

	keys := []*domain.BootstrapKey{}
	for rows.Next() {
		var key domain.BootstrapKey
		err := rows.Scan(
			&key.ID,
			&key.SecretHash,
			&key.SecretHint,
			&key.Group,
			&key.CreatedAt,
			&key.ExpiresAt,
			&key.IsActive,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan bootstrap key")
		}
		keys = append(keys, &key)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate bootstrap keys")
	}

	return keys, nil
}

// ListActiveByHint retrieves all active bootstrap keys whose stored hint matches.
// Used to narrow the candidate set before slow hash verification.
func (p *PostgreSQLBootstrapKeyRepository) ListActiveByHint(
	ctx context.Context,
	hint string,
) ([]*domain.BootstrapKey, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, secret_hash, secret_hint, key_group, created_at, expires_at, is_active
			  FROM bootstrap_keys
			  WHERE secret_hint = $1 AND is_active = TRUE
			  ORDER BY id DESC`

	rows, err := querier.QueryContext(ctx, query, hint)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list bootstrap keys by hint")
	}
	defer func() {
		_ = rows.Close()
	}()

	keys := []*domain.BootstrapKey{}
	for rows.Next() {
		var key domain.BootstrapKey
		err := rows.Scan(
			&key.ID,
			&key.SecretHash,
			&key.SecretHint,
			&key.Group,
			&key.CreatedAt,
			&key.ExpiresAt,
			&key.IsActive,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan bootstrap key")
		}
		keys = append(keys, &key)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate bootstrap keys")
	}

	return keys, nil
}

// SetActive updates the activation flag of a bootstrap key.
func (p *PostgreSQLBootstrapKeyRepository) SetActive(
	ctx context.Context,
	id int64,
	isActive bool,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE bootstrap_keys
			  SET is_active = $1
			  WHERE id = $2`

	result, err := querier.ExecContext(ctx, query, isActive, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to update bootstrap key activation")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return domain.ErrBootstrapKeyNotFound
	}

	return nil
}

// Delete permanently removes a bootstrap key.
func (p *PostgreSQLBootstrapKeyRepository) Delete(ctx context.Context, id int64) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM bootstrap_keys
			  WHERE id = $1`

	result, err := querier.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete bootstrap key")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return domain.ErrBootstrapKeyNotFound
	}

	return nil
}

// NewPostgreSQLBootstrapKeyRepository creates a new PostgreSQL BootstrapKey repository instance.
func NewPostgreSQLBootstrapKeyRepository(db *sql.DB) *PostgreSQLBootstrapKeyRepository {
	return &PostgreSQLBootstrapKeyRepository{db: db}
}
