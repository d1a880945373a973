package service

import (
	"context"
	"errors"
	"sync"

	"github.com/dukatech/netstore-backend/internal/app/model"
	"github.com/dukatech/netstore-backend/internal/app/repository"
	"github.com/dukatech/netstore-backend/pkg/logger"
)

// WishlistService mirrors the cart store shape with toggle/lookup only.
// Same hydration and fold-to-empty rules as the cart.
type WishlistService interface {
	GetWishlist(ctx context.Context, sessionID string) []model.WishlistItem
	Toggle(ctx context.Context, sessionID, productID string) (bool, error)
	Contains(ctx context.Context, sessionID, productID string) bool
}

type sessionWishlist struct {
	items    []model.WishlistItem
	hydrated bool
}

type wishlistService struct {
	wishlistRepo repository.WishlistRepository
	catalogRepo  repository.CatalogRepository

	mu       sync.Mutex
	sessions map[string]*sessionWishlist
}

func NewWishlistService(
	wishlistRepo repository.WishlistRepository,
	catalogRepo repository.CatalogRepository,
) WishlistService {
	return &wishlistService{
		wishlistRepo: wishlistRepo,
		catalogRepo:  catalogRepo,
		sessions:     make(map[string]*sessionWishlist),
	}
}

// Callers must hold s.mu.
func (s *wishlistService) session(ctx context.Context, sessionID string) *sessionWishlist {
	sw, ok := s.sessions[sessionID]
	if !ok {
		sw = &sessionWishlist{}
		s.sessions[sessionID] = sw
	}
	if sw.hydrated {
		return sw
	}
	sw.hydrated = true

	items, err := s.wishlistRepo.Load(ctx, sessionID)
	switch {
	case err == nil:
		sw.items = items
	case errors.Is(err, repository.ErrNotFound):
	case errors.Is(err, repository.ErrCorruptPayload):
		logger.Warn("Discarding malformed persisted wishlist", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	default:
		logger.Error("Failed to hydrate wishlist from storage, starting empty", err, map[string]interface{}{
			"session_id": sessionID,
		})
	}
	return sw
}

func (s *wishlistService) persist(ctx context.Context, sessionID string, sw *sessionWishlist) {
	if err := s.wishlistRepo.Save(ctx, sessionID, sw.items); err != nil {
		logger.Error("Failed to persist wishlist, in-memory state remains authoritative", err, map[string]interface{}{
			"session_id": sessionID,
		})
	}
}

// GetWishlist returns a detached copy of the items. Toggle shifts the live
// slice in place, so the internal backing array never escapes the lock.
func (s *wishlistService) GetWishlist(ctx context.Context, sessionID string) []model.WishlistItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	sw := s.session(ctx, sessionID)
	items := make([]model.WishlistItem, len(sw.items))
	copy(items, sw.items)
	return items
}

// Toggle flips membership of the product and returns the new state: true when
// the product is now wished.
func (s *wishlistService) Toggle(ctx context.Context, sessionID, productID string) (bool, error) {
	product, err := s.catalogRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.Warn("Cannot toggle wishlist: product not found", map[string]interface{}{
				"session_id": sessionID,
				"product_id": productID,
			})
			return false, ErrProductNotFound
		}
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sw := s.session(ctx, sessionID)
	for i, item := range sw.items {
		if item.ProductID == productID {
			sw.items = append(sw.items[:i], sw.items[i+1:]...)
			s.persist(ctx, sessionID, sw)
			logger.Info("Item removed from wishlist", map[string]interface{}{
				"session_id": sessionID,
				"product_id": productID,
			})
			return false, nil
		}
	}

	sw.items = append(sw.items, model.WishlistItem{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Image:     product.Image,
	})
	s.persist(ctx, sessionID, sw)
	logger.Info("Item added to wishlist", map[string]interface{}{
		"session_id": sessionID,
		"product_id": productID,
	})
	return true, nil
}

func (s *wishlistService) Contains(ctx context.Context, sessionID, productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.session(ctx, sessionID).items {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}
