// Package snapshot persists each building collection as one serialized
// value under a fixed key.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/MrJamesThe3rd/homa/internal/building"
)

const (
	KeyUnits       = "homa_units"
	KeyTenants     = "homa_tenants"
	KeyInvoices    = "homa_invoices"
	KeyMaintenance = "homa_maintenance"
)

// Keys lists every slot in load order.
var Keys = []string{KeyUnits, KeyTenants, KeyInvoices, KeyMaintenance}

// ErrNotFound is returned by a Store when a key has never been written.
var ErrNotFound = errors.New("snapshot not found")

// Store is a byte-level key-value substrate.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, payload []byte) error
}

// Repository implements building.Repository on top of a Store.
type Repository struct {
	store Store
}

func NewRepository(store Store) *Repository {
	return &Repository{store: store}
}

var _ building.Repository = (*Repository)(nil)

// load reads key into a slice. A missing or unreadable value yields the seed;
// only substrate failures are returned.
func load[T any](ctx context.Context, s Store, key string, seed func() []T) ([]T, error) {
	payload, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return seed(), nil
	}

	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}

	var items []T
	if err := json.Unmarshal(payload, &items); err != nil {
		slog.Warn("discarding unreadable snapshot", "key", key, "error", err)
		return seed(), nil
	}

	if items == nil {
		slog.Warn("discarding null snapshot", "key", key)
		return seed(), nil
	}

	return items, nil
}

func save[T any](ctx context.Context, s Store, key string, items []T) error {
	if items == nil {
		items = []T{}
	}

	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}

	if err := s.Put(ctx, key, payload); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}

	return nil
}

func (r *Repository) LoadUnits(ctx context.Context) ([]building.Unit, error) {
	return load(ctx, r.store, KeyUnits, building.SeedUnits)
}

func (r *Repository) SaveUnits(ctx context.Context, units []building.Unit) error {
	return save(ctx, r.store, KeyUnits, units)
}

func (r *Repository) LoadTenants(ctx context.Context) ([]building.Tenant, error) {
	return load(ctx, r.store, KeyTenants, building.SeedTenants)
}

func (r *Repository) SaveTenants(ctx context.Context, tenants []building.Tenant) error {
	return save(ctx, r.store, KeyTenants, tenants)
}

func (r *Repository) LoadInvoices(ctx context.Context) ([]building.Invoice, error) {
	return load(ctx, r.store, KeyInvoices, building.SeedInvoices)
}

func (r *Repository) SaveInvoices(ctx context.Context, invoices []building.Invoice) error {
	return save(ctx, r.store, KeyInvoices, invoices)
}

func (r *Repository) LoadMaintenance(ctx context.Context) ([]building.MaintenanceRecord, error) {
	return load(ctx, r.store, KeyMaintenance, building.SeedMaintenance)
}

func (r *Repository) SaveMaintenance(ctx context.Context, records []building.MaintenanceRecord) error {
	return save(ctx, r.store, KeyMaintenance, records)
}
