package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/dukatech/netstore-backend/internal/app/model"
	"github.com/dukatech/netstore-backend/pkg/logger"
)

// CatalogRepository serves the static product listings. All reads return
// copies so callers can sort or slice without touching the shared backing
// slice.
type CatalogRepository interface {
	All() []model.Product
	FindByID(id string) (*model.Product, error)
	Brands() []string
	Reload() error
}

type fileCatalogRepository struct {
	path string

	mu       sync.RWMutex
	products []model.Product
}

// NewFileCatalogRepository loads the catalog file once; Reload re-reads it
// (invoked by the scheduler).
func NewFileCatalogRepository(path string) (CatalogRepository, error) {
	r := &fileCatalogRepository{path: path}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *fileCatalogRepository) Reload() error {
	logger.Debug("Loading catalog file", map[string]interface{}{
		"path": r.path,
	})

	data, err := os.ReadFile(r.path)
	if err != nil {
		logger.Error("Failed to read catalog file", err, map[string]interface{}{
			"path": r.path,
		})
		return fmt.Errorf("failed to read catalog file: %w", err)
	}

	var products []model.Product
	if err := json.Unmarshal(data, &products); err != nil {
		logger.Error("Failed to parse catalog file", err, map[string]interface{}{
			"path": r.path,
		})
		return fmt.Errorf("%w: %v", ErrCorruptPayload, err)
	}

	for _, p := range products {
		if !model.ValidStockStatus(p.Status) {
			logger.Warn("Listing has unknown stock status", map[string]interface{}{
				"product_id": p.ID,
				"status":     p.Status,
			})
		}
	}

	r.mu.Lock()
	r.products = products
	r.mu.Unlock()

	logger.Info("Catalog loaded", map[string]interface{}{
		"path":  r.path,
		"count": len(products),
	})
	return nil
}

func (r *fileCatalogRepository) All() []model.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Product, len(r.products))
	copy(out, r.products)
	return out
}

func (r *fileCatalogRepository) FindByID(id string) (*model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.ID == id {
			product := p
			return &product, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fileCatalogRepository) Brands() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	var brands []string
	for _, p := range r.products {
		if p.Brand != "" && !seen[p.Brand] {
			seen[p.Brand] = true
			brands = append(brands, p.Brand)
		}
	}
	sort.Strings(brands)
	return brands
}

// StaticCatalogRepository wraps a fixed product slice. Used by tests and by
// deployments that embed the catalog.
type StaticCatalogRepository struct {
	mu       sync.RWMutex
	products []model.Product
}

func NewStaticCatalogRepository(products []model.Product) *StaticCatalogRepository {
	out := make([]model.Product, len(products))
	copy(out, products)
	return &StaticCatalogRepository{products: out}
}

func (r *StaticCatalogRepository) All() []model.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Product, len(r.products))
	copy(out, r.products)
	return out
}

func (r *StaticCatalogRepository) FindByID(id string) (*model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.ID == id {
			product := p
			return &product, nil
		}
	}
	return nil, ErrNotFound
}

func (r *StaticCatalogRepository) Brands() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	var brands []string
	for _, p := range r.products {
		if p.Brand != "" && !seen[p.Brand] {
			seen[p.Brand] = true
			brands = append(brands, p.Brand)
		}
	}
	sort.Strings(brands)
	return brands
}

func (r *StaticCatalogRepository) Reload() error {
	return nil
}
