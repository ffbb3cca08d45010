package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"forgeboard/internal/model"
)

const entitlementTTL = 5 * time.Minute

// ModuleInstallStore is the slice of the install repository the service needs.
type ModuleInstallStore interface {
	Get(ctx context.Context, moduleID string) (*model.ModuleInstall, error)
	Upsert(ctx context.Context, moduleID string, installed bool, installedBy string) error
	List(ctx context.Context) ([]model.ModuleInstall, error)
}

// MarketplaceService tracks which optional dashboard modules are installed.
// Entitlement checks read through a redis cache with a short TTL; install and
// uninstall write the row and delete the cache entry so the next check hits
// the database.
type MarketplaceService struct {
	installs ModuleInstallStore
	cache    *redis.Client
	logger   *zap.Logger
}

func NewMarketplaceService(
	installs ModuleInstallStore,
	cache *redis.Client,
	logger *zap.Logger,
) *MarketplaceService {
	return &MarketplaceService{installs: installs, cache: cache, logger: logger}
}

func entitlementKey(moduleID string) string {
	return fmt.Sprintf("entitlement:%s", moduleID)
}

// IsInstalled answers from cache when possible. Redis failures fall through
// to the database; the cache is an optimization, never the source of truth.
func (s *MarketplaceService) IsInstalled(ctx context.Context, moduleID string) (bool, error) {
	key := entitlementKey(moduleID)
	if cached, err := s.cache.Get(ctx, key).Result(); err == nil {
		return cached == "1", nil
	} else if err != redis.Nil {
		s.logger.Warn("Entitlement cache read failed", zap.String("module_id", moduleID), zap.Error(err))
	}

	install, err := s.installs.Get(ctx, moduleID)
	installed := false
	switch {
	case err == nil:
		installed = install.Installed
	case errors.Is(err, pgx.ErrNoRows):
		// Never installed; a cacheable negative.
	default:
		// A transient store failure must not be cached as "not installed".
		return false, err
	}

	value := "0"
	if installed {
		value = "1"
	}
	if err := s.cache.Set(ctx, key, value, entitlementTTL).Err(); err != nil {
		s.logger.Warn("Entitlement cache write failed", zap.String("module_id", moduleID), zap.Error(err))
	}
	return installed, nil
}

func (s *MarketplaceService) Install(ctx context.Context, moduleID, installedBy string) error {
	if err := s.installs.Upsert(ctx, moduleID, true, installedBy); err != nil {
		return err
	}
	s.invalidate(ctx, moduleID)
	s.logger.Info("Module installed", zap.String("module_id", moduleID), zap.String("by", installedBy))
	return nil
}

func (s *MarketplaceService) Uninstall(ctx context.Context, moduleID, by string) error {
	if err := s.installs.Upsert(ctx, moduleID, false, by); err != nil {
		return err
	}
	s.invalidate(ctx, moduleID)
	s.logger.Info("Module uninstalled", zap.String("module_id", moduleID), zap.String("by", by))
	return nil
}

func (s *MarketplaceService) List(ctx context.Context) ([]model.ModuleInstall, error) {
	return s.installs.List(ctx)
}

func (s *MarketplaceService) invalidate(ctx context.Context, moduleID string) {
	if err := s.cache.Del(ctx, entitlementKey(moduleID)).Err(); err != nil {
		s.logger.Warn("Entitlement cache invalidation failed", zap.String("module_id", moduleID), zap.Error(err))
	}
}
