// Package store is the prospect persistence gateway. The backing store is a
// plain string-keyed value holding the whole CRM list as one JSON array;
// every write is a read-modify-write of the full collection. Two drivers
// exist: a SQLite kv table and a plain JSON file. Concurrent writers are not
// coordinated; the last write wins.
package store

import (
	"context"
	"encoding/json"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/leadforge/prospector-cli/internal/model"
)

// StorageKey is the fixed key the prospect collection lives under.
const StorageKey = "prospects"

// Store defines the persistence interface for the prospect CRM.
type Store interface {
	// List returns every saved prospect. A corrupted or absent collection
	// lists as empty rather than failing.
	List(ctx context.Context) ([]model.Prospect, error)
	// Upsert replaces the prospect with a matching id, else appends.
	Upsert(ctx context.Context, p model.Prospect) error
	// UpdateStatus sets the status of the prospect with the given id.
	// No-op when the id is absent.
	UpdateStatus(ctx context.Context, id string, status model.Status) error
	// Remove deletes the prospect with the given id. No-op when absent.
	Remove(ctx context.Context, id string) error

	Migrate(ctx context.Context) error
	Close() error
}

// kv is the raw get/put surface each driver provides. get returns nil bytes
// when the key is absent.
type kv interface {
	get(ctx context.Context, key string) ([]byte, error)
	put(ctx context.Context, key string, value []byte) error
}

// gateway implements the collection semantics on top of a kv driver.
type gateway struct {
	kv kv
}

func (g *gateway) List(ctx context.Context) ([]model.Prospect, error) {
	raw, err := g.kv.get(ctx, StorageKey)
	if err != nil {
		return nil, eris.Wrap(err, "store: read collection")
	}
	if len(raw) == 0 {
		return []model.Prospect{}, nil
	}

	var prospects []model.Prospect
	if err := json.Unmarshal(raw, &prospects); err != nil {
		// Corruption degrades to an empty CRM, never an error.
		zap.L().Warn("store: corrupted prospect collection, listing empty",
			zap.Int("bytes", len(raw)),
			zap.Error(err),
		)
		return []model.Prospect{}, nil
	}
	return prospects, nil
}

func (g *gateway) Upsert(ctx context.Context, p model.Prospect) error {
	prospects, err := g.List(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i := range prospects {
		if prospects[i].ID == p.ID {
			prospects[i] = p
			replaced = true
			break
		}
	}
	if !replaced {
		prospects = append(prospects, p)
	}
	return g.write(ctx, prospects)
}

func (g *gateway) UpdateStatus(ctx context.Context, id string, status model.Status) error {
	prospects, err := g.List(ctx)
	if err != nil {
		return err
	}
	for i := range prospects {
		if prospects[i].ID == id {
			prospects[i].Status = status
			return g.write(ctx, prospects)
		}
	}
	return nil
}

func (g *gateway) Remove(ctx context.Context, id string) error {
	prospects, err := g.List(ctx)
	if err != nil {
		return err
	}
	kept := make([]model.Prospect, 0, len(prospects))
	for _, p := range prospects {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(prospects) {
		return nil
	}
	return g.write(ctx, kept)
}

func (g *gateway) write(ctx context.Context, prospects []model.Prospect) error {
	raw, err := json.Marshal(prospects)
	if err != nil {
		return eris.Wrap(err, "store: marshal collection")
	}
	if err := g.kv.put(ctx, StorageKey, raw); err != nil {
		return eris.Wrap(err, "store: write collection")
	}
	return nil
}
