package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"forgeboard/internal/model"
)

type fakeInstallStore struct {
	rows map[string]*model.ModuleInstall
	err  error
}

func (f *fakeInstallStore) Get(ctx context.Context, moduleID string) (*model.ModuleInstall, error) {
	if f.err != nil {
		return nil, f.err
	}
	row, ok := f.rows[moduleID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return row, nil
}

func (f *fakeInstallStore) Upsert(ctx context.Context, moduleID string, installed bool, installedBy string) error {
	return f.err
}

func (f *fakeInstallStore) List(ctx context.Context) ([]model.ModuleInstall, error) {
	return nil, f.err
}

// deadCache returns a client whose every command fails, so the service must
// fall through to the store.
func deadCache() *redis.Client {
	return redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
}

func TestIsInstalledReadsStore(t *testing.T) {
	store := &fakeInstallStore{rows: map[string]*model.ModuleInstall{
		"billing": {ModuleID: "billing", Installed: true},
	}}
	svc := NewMarketplaceService(store, deadCache(), zap.NewNop())

	installed, err := svc.IsInstalled(context.Background(), "billing")
	if err != nil {
		t.Fatalf("IsInstalled: %v", err)
	}
	if !installed {
		t.Error("installed = false, want true")
	}
}

func TestIsInstalledMissingRowIsUninstalled(t *testing.T) {
	store := &fakeInstallStore{rows: map[string]*model.ModuleInstall{}}
	svc := NewMarketplaceService(store, deadCache(), zap.NewNop())

	installed, err := svc.IsInstalled(context.Background(), "never-installed")
	if err != nil {
		t.Fatalf("IsInstalled: %v", err)
	}
	if installed {
		t.Error("installed = true, want false")
	}
}

func TestIsInstalledPropagatesStoreFailure(t *testing.T) {
	storeErr := errors.New("connection refused")
	store := &fakeInstallStore{err: storeErr}
	svc := NewMarketplaceService(store, deadCache(), zap.NewNop())

	// A transient store failure must surface as an error, never be answered
	// (or cached) as "not installed".
	if _, err := svc.IsInstalled(context.Background(), "billing"); !errors.Is(err, storeErr) {
		t.Fatalf("err = %v, want the store failure", err)
	}
}
