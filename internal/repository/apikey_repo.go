package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"forgeboard/internal/model"
)

type APIKeyRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewAPIKeyRepository(db *pgxpool.Pool, logger *zap.Logger) *APIKeyRepository {
	return &APIKeyRepository{db: db, logger: logger}
}

func (r *APIKeyRepository) Insert(ctx context.Context, k *model.APIKey) (int64, error) {
	perms, err := json.Marshal(k.Permissions)
	if err != nil {
		return 0, err
	}
	query := `
        INSERT INTO api_keys (name, prefix, secret_hash, permissions, revoked)
        VALUES ($1, $2, $3, $4, false)
        RETURNING id
    `
	var id int64
	err = r.db.QueryRow(ctx, query, k.Name, k.Prefix, k.SecretHash, perms).Scan(&id)
	if err != nil {
		r.logger.Error("Failed to insert api key", zap.String("prefix", k.Prefix), zap.Error(err))
		return 0, err
	}
	return id, nil
}

// FindByPrefix looks up the single live key for a token prefix. Revoked keys
// are excluded so auth fails closed after revocation.
func (r *APIKeyRepository) FindByPrefix(ctx context.Context, prefix string) (*model.APIKey, error) {
	query := `
        SELECT id, name, prefix, secret_hash, permissions, revoked, last_used_at, created_at
        FROM api_keys
        WHERE prefix = $1 AND revoked = false
    `
	return scanAPIKey(r.db.QueryRow(ctx, query, prefix))
}

func (r *APIKeyRepository) List(ctx context.Context) ([]model.APIKey, error) {
	query := `
        SELECT id, name, prefix, secret_hash, permissions, revoked, last_used_at, created_at
        FROM api_keys
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := []model.APIKey{}
	for rows.Next() {
		k, err := scanAPIKey(rows)
		if err != nil {
			return nil, err
		}
		keys = append(keys, *k)
	}
	return keys, rows.Err()
}

func (r *APIKeyRepository) TouchLastUsed(ctx context.Context, id int64, at time.Time) error {
	_, err := r.db.Exec(ctx, `UPDATE api_keys SET last_used_at = $1 WHERE id = $2`, at, id)
	if err != nil {
		r.logger.Warn("Failed to touch api key last_used_at", zap.Int64("id", id), zap.Error(err))
	}
	return err
}

func (r *APIKeyRepository) Revoke(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE api_keys SET revoked = true WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to revoke api key", zap.Int64("id", id), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanAPIKey(row rowScanner) (*model.APIKey, error) {
	var k model.APIKey
	var perms []byte
	err := row.Scan(
		&k.ID,
		&k.Name,
		&k.Prefix,
		&k.SecretHash,
		&perms,
		&k.Revoked,
		&k.LastUsedAt,
		&k.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(perms) > 0 {
		if err := json.Unmarshal(perms, &k.Permissions); err != nil {
			return nil, err
		}
	}
	return &k, nil
}
