package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"forgeboard/internal/model"
	"forgeboard/internal/repository"
	"forgeboard/pkg/apikey"
	"forgeboard/pkg/metrics"
)

var ErrInvalidAPIKey = errors.New("invalid api key")

// APIKeyService issues and authenticates integration API keys. The full
// token is returned exactly once at creation; afterwards only the prefix and
// the secret's bcrypt hash exist.
type APIKeyService struct {
	keys   *repository.APIKeyRepository
	logger *zap.Logger
}

func NewAPIKeyService(keys *repository.APIKeyRepository, logger *zap.Logger) *APIKeyService {
	return &APIKeyService{keys: keys, logger: logger}
}

// Create generates a key with the given permission grants and returns the
// one-time token alongside the stored record.
func (s *APIKeyService) Create(ctx context.Context, name string, permissions []string) (string, *model.APIKey, error) {
	token, prefix, secretHash, err := apikey.Generate()
	if err != nil {
		return "", nil, err
	}

	key := &model.APIKey{
		Name:        name,
		Prefix:      prefix,
		SecretHash:  secretHash,
		Permissions: permissions,
	}
	id, err := s.keys.Insert(ctx, key)
	if err != nil {
		return "", nil, err
	}
	key.ID = id

	s.logger.Info("API key created", zap.Int64("id", id), zap.String("prefix", prefix))
	return token, key, nil
}

func (s *APIKeyService) List(ctx context.Context) ([]model.APIKey, error) {
	return s.keys.List(ctx)
}

func (s *APIKeyService) Revoke(ctx context.Context, id int64) error {
	return s.keys.Revoke(ctx, id)
}

// Authenticate resolves a presented token to its key record. Revoked or
// unknown keys and bad secrets all collapse to ErrInvalidAPIKey so the
// response does not leak which part failed.
func (s *APIKeyService) Authenticate(ctx context.Context, token string) (*model.APIKey, error) {
	prefix, secret, err := apikey.Parse(token)
	if err != nil {
		metrics.IncrementAPIKeyAuth("invalid")
		return nil, ErrInvalidAPIKey
	}

	key, err := s.keys.FindByPrefix(ctx, prefix)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			metrics.IncrementAPIKeyAuth("invalid")
			return nil, ErrInvalidAPIKey
		}
		return nil, err
	}

	if !apikey.Verify(secret, key.SecretHash) {
		metrics.IncrementAPIKeyAuth("invalid")
		return nil, ErrInvalidAPIKey
	}

	if err := s.keys.TouchLastUsed(ctx, key.ID, time.Now()); err != nil {
		// Auth already succeeded; losing a last_used_at update is tolerable.
		s.logger.Warn("Failed to record api key use", zap.Int64("id", key.ID), zap.Error(err))
	}

	metrics.IncrementAPIKeyAuth("ok")
	return key, nil
}

// Authorize checks a permission against the key's grants.
func (s *APIKeyService) Authorize(key *model.APIKey, permission string) error {
	if !apikey.HasPermission(key.Permissions, permission) {
		metrics.IncrementAPIKeyAuth("forbidden")
		return &apikey.PermissionDeniedError{Prefix: key.Prefix, Permission: permission}
	}
	return nil
}
