package settings

import "context"

// RepositoryInterface defines the contract for configuration persistence
type RepositoryInterface interface {
	Get(ctx context.Context, key string) (*ConfigEntry, error)
	GetMany(ctx context.Context, keys []string) (map[string]string, error)
	Upsert(ctx context.Context, entry *ConfigEntry) error
	List(ctx context.Context) ([]*ConfigEntry, error)
}

// Store is what pricing and billing need from the configuration service
type Store interface {
	Snapshot(ctx context.Context, keys ...string) Snapshot
	Set(ctx context.Context, key, value, description, updatedBy string) (*ConfigEntry, error)
}

// ServiceInterface is the surface the HTTP handler uses
type ServiceInterface interface {
	Get(ctx context.Context, key string) (*ConfigEntry, error)
	List(ctx context.Context) ([]*ConfigEntry, error)
	Set(ctx context.Context, key, value, description, updatedBy string) (*ConfigEntry, error)
}

var (
	_ RepositoryInterface = (*Repository)(nil)
	_ Store               = (*Service)(nil)
	_ ServiceInterface    = (*Service)(nil)
)
