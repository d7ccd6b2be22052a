// Package catalog maintains the in-memory registry of model IDs the
// mock server advertises, backing the /v1/models listing.
package catalog

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/davidbz/mirage/internal/domain"
	"github.com/davidbz/mirage/internal/engine"
)

// Fixed creation timestamp advertised for the built-in models, so the
// listing is stable across restarts.
const builtinModelCreated int64 = 1687882411

// Entry describes one advertised model.
type Entry struct {
	ID            string
	OwnedBy       string
	Created       int64
	EmbeddingDims int // 0 for non-embedding models
}

// Catalog is an in-memory model registry.
type Catalog struct {
	mu     sync.RWMutex
	models map[string]Entry
}

// NewCatalog creates a catalog seeded with the built-in model set.
func NewCatalog() *Catalog {
	c := &Catalog{
		mu:     sync.RWMutex{},
		models: make(map[string]Entry),
	}

	for _, id := range []string{
		"gpt-4",
		"gpt-4o",
		"gpt-3.5-turbo",
		"text-davinci-003",
	} {
		c.models[id] = Entry{ID: id, OwnedBy: "openai", Created: builtinModelCreated}
	}

	for _, id := range []string{
		"text-embedding-ada-002",
		"text-embedding-3-small",
		"text-embedding-3-large",
	} {
		c.models[id] = Entry{
			ID:            id,
			OwnedBy:       "openai",
			Created:       builtinModelCreated,
			EmbeddingDims: engine.EmbeddingDimensions(id, nil),
		}
	}

	return c
}

// Register adds or replaces a model entry.
func (c *Catalog) Register(_ context.Context, entry Entry) error {
	if entry.ID == "" {
		return errors.New("model id cannot be empty")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.models[entry.ID] = entry
	return nil
}

// Get retrieves a model entry by ID.
func (c *Catalog) Get(_ context.Context, id string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.models[id]
	return entry, ok
}

// List returns the advertised models as a wire-ready listing, sorted
// by ID for stable output.
func (c *Catalog) List(_ context.Context) domain.ModelList {
	c.mu.RLock()
	defer c.mu.RUnlock()

	models := make([]domain.Model, 0, len(c.models))
	for _, entry := range c.models {
		models = append(models, domain.Model{
			ID:      entry.ID,
			Object:  domain.ObjectModel,
			Created: entry.Created,
			OwnedBy: entry.OwnedBy,
		})
	}

	sort.Slice(models, func(i, j int) bool {
		return models[i].ID < models[j].ID
	})

	return domain.ModelList{
		Object: domain.ObjectList,
		Data:   models,
	}
}
