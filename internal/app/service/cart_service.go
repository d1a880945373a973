package service

import (
	"context"
	"errors"
	"sync"

	"github.com/dukatech/netstore-backend/internal/app/model"
	"github.com/dukatech/netstore-backend/internal/app/repository"
	"github.com/dukatech/netstore-backend/pkg/logger"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrInvalidQuantity  = errors.New("quantity must be a positive integer")
	ErrInvalidUnitPrice = errors.New("unit price must be non-negative")
	ErrEmptyCart        = errors.New("cart is empty")
)

// CartEventPublisher pushes cart state changes to connected presentation
// clients. A nil publisher disables pushing.
type CartEventPublisher interface {
	PublishCartEvent(sessionID string, event string, state model.CartState)
}

// Cart event names sent to the presentation layer.
const (
	EventCartUpdated  = "cart.updated"
	EventDrawerOpened = "drawer.opened"
	EventDrawerClosed = "drawer.closed"
)

// CartService owns the per-session cart state: at most one line per product,
// quantities always >= 1, total always derived. In-memory state is
// authoritative for the session; every mutation re-persists the full line
// collection, and persistence failures are logged and folded, never raised.
type CartService interface {
	GetCart(ctx context.Context, sessionID string) model.CartState
	AddItem(ctx context.Context, sessionID, productID string, quantity int) error
	RemoveItem(ctx context.Context, sessionID, productID string) error
	IncreaseQuantity(ctx context.Context, sessionID, productID string) error
	DecreaseQuantity(ctx context.Context, sessionID, productID string) error
	Clear(ctx context.Context, sessionID string) error
	OpenDrawer(ctx context.Context, sessionID string) error
	CloseDrawer(ctx context.Context, sessionID string) error
	Total(ctx context.Context, sessionID string) float64
	Checkout(ctx context.Context, sessionID string) (string, error)
}

type sessionCart struct {
	state    model.CartState
	hydrated bool
}

type cartService struct {
	cartRepo    repository.CartRepository
	catalogRepo repository.CatalogRepository
	publisher   CartEventPublisher
	checkoutURL string

	mu       sync.Mutex
	sessions map[string]*sessionCart
}

func NewCartService(
	cartRepo repository.CartRepository,
	catalogRepo repository.CatalogRepository,
	publisher CartEventPublisher,
	checkoutURL string,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		catalogRepo: catalogRepo,
		publisher:   publisher,
		checkoutURL: checkoutURL,
		sessions:    make(map[string]*sessionCart),
	}
}

// session returns the in-memory cart for sessionID, hydrating it from durable
// storage exactly once. Absent, malformed or unreadable persisted data all
// fold to an empty cart; only the logged failure kind differs. Callers must
// hold s.mu.
func (s *cartService) session(ctx context.Context, sessionID string) *sessionCart {
	sc, ok := s.sessions[sessionID]
	if !ok {
		sc = &sessionCart{}
		s.sessions[sessionID] = sc
	}
	if sc.hydrated {
		return sc
	}
	sc.hydrated = true

	lines, err := s.cartRepo.Load(ctx, sessionID)
	switch {
	case err == nil:
		sc.state.Lines = lines
	case errors.Is(err, repository.ErrNotFound):
		logger.Debug("No persisted cart for session, starting empty", map[string]interface{}{
			"session_id": sessionID,
		})
	case errors.Is(err, repository.ErrCorruptPayload):
		logger.Warn("Discarding malformed persisted cart", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	default:
		logger.Error("Failed to hydrate cart from storage, starting empty", err, map[string]interface{}{
			"session_id": sessionID,
		})
	}
	return sc
}

// persist writes the full line collection. Failures never propagate: the
// in-memory state stays authoritative for the session.
func (s *cartService) persist(ctx context.Context, sessionID string, sc *sessionCart) {
	if err := s.cartRepo.Save(ctx, sessionID, sc.state.Lines); err != nil {
		logger.Error("Failed to persist cart, in-memory state remains authoritative", err, map[string]interface{}{
			"session_id": sessionID,
			"line_count": len(sc.state.Lines),
		})
	}
}

func (s *cartService) publish(sessionID, event string, state model.CartState) {
	if s.publisher != nil {
		s.publisher.PublishCartEvent(sessionID, event, state.Clone())
	}
}

// GetCart returns a detached snapshot. The live line slice never leaves the
// lock; mutations edit lines in place and never reach a returned state.
func (s *cartService) GetCart(ctx context.Context, sessionID string) model.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.session(ctx, sessionID).state.Clone()
}

func (s *cartService) AddItem(ctx context.Context, sessionID, productID string, quantity int) error {
	logger.Info("Adding item to cart", map[string]interface{}{
		"session_id": sessionID,
		"product_id": productID,
		"quantity":   quantity,
	})

	if quantity < 1 {
		logger.Warn("Rejected add to cart: invalid quantity", map[string]interface{}{
			"session_id": sessionID,
			"product_id": productID,
			"quantity":   quantity,
		})
		return ErrInvalidQuantity
	}

	product, err := s.catalogRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.Warn("Cannot add to cart: product not found", map[string]interface{}{
				"session_id": sessionID,
				"product_id": productID,
			})
			return ErrProductNotFound
		}
		return err
	}
	if product.Price < 0 {
		logger.Warn("Rejected add to cart: negative unit price", map[string]interface{}{
			"product_id": productID,
			"price":      product.Price,
		})
		return ErrInvalidUnitPrice
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sc := s.session(ctx, sessionID)
	if i := sc.state.FindLine(productID); i >= 0 {
		sc.state.Lines[i].Quantity += quantity
	} else {
		sc.state.Lines = append(sc.state.Lines, model.CartLine{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Image:     product.Image,
			Quantity:  quantity,
		})
	}
	sc.state.IsDrawerOpen = true

	s.persist(ctx, sessionID, sc)
	s.publish(sessionID, EventCartUpdated, sc.state)

	logger.Info("Item added to cart", map[string]interface{}{
		"session_id": sessionID,
		"product_id": productID,
		"line_count": len(sc.state.Lines),
		"total":      sc.state.Total(),
	})
	return nil
}

func (s *cartService) RemoveItem(ctx context.Context, sessionID, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc := s.session(ctx, sessionID)
	i := sc.state.FindLine(productID)
	if i < 0 {
		logger.Debug("Remove from cart is a no-op: line absent", map[string]interface{}{
			"session_id": sessionID,
			"product_id": productID,
		})
		return nil
	}

	sc.state.Lines = append(sc.state.Lines[:i], sc.state.Lines[i+1:]...)
	s.persist(ctx, sessionID, sc)
	s.publish(sessionID, EventCartUpdated, sc.state)

	logger.Info("Cart line removed", map[string]interface{}{
		"session_id": sessionID,
		"product_id": productID,
	})
	return nil
}

func (s *cartService) IncreaseQuantity(ctx context.Context, sessionID, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc := s.session(ctx, sessionID)
	i := sc.state.FindLine(productID)
	if i < 0 {
		return nil
	}

	sc.state.Lines[i].Quantity++
	s.persist(ctx, sessionID, sc)
	s.publish(sessionID, EventCartUpdated, sc.state)
	return nil
}

func (s *cartService) DecreaseQuantity(ctx context.Context, sessionID, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc := s.session(ctx, sessionID)
	i := sc.state.FindLine(productID)
	if i < 0 {
		return nil
	}

	sc.state.Lines[i].Quantity--
	if sc.state.Lines[i].Quantity <= 0 {
		// a line never holds quantity <= 0
		sc.state.Lines = append(sc.state.Lines[:i], sc.state.Lines[i+1:]...)
	}
	s.persist(ctx, sessionID, sc)
	s.publish(sessionID, EventCartUpdated, sc.state)
	return nil
}

func (s *cartService) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc := s.session(ctx, sessionID)
	sc.state.Lines = nil
	s.persist(ctx, sessionID, sc)
	s.publish(sessionID, EventCartUpdated, sc.state)

	logger.Info("Cart cleared", map[string]interface{}{
		"session_id": sessionID,
	})
	return nil
}

func (s *cartService) OpenDrawer(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc := s.session(ctx, sessionID)
	sc.state.IsDrawerOpen = true
	s.publish(sessionID, EventDrawerOpened, sc.state)
	return nil
}

func (s *cartService) CloseDrawer(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc := s.session(ctx, sessionID)
	sc.state.IsDrawerOpen = false
	s.publish(sessionID, EventDrawerClosed, sc.state)
	return nil
}

func (s *cartService) Total(ctx context.Context, sessionID string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.session(ctx, sessionID).state.Total()
}

// Checkout hands the session off to the external checkout collaborator: the
// drawer closes and the caller receives the configured checkout URL.
func (s *cartService) Checkout(ctx context.Context, sessionID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc := s.session(ctx, sessionID)
	if len(sc.state.Lines) == 0 {
		logger.Warn("Checkout rejected: cart is empty", map[string]interface{}{
			"session_id": sessionID,
		})
		return "", ErrEmptyCart
	}

	sc.state.IsDrawerOpen = false
	s.publish(sessionID, EventDrawerClosed, sc.state)

	logger.Info("Checkout handoff", map[string]interface{}{
		"session_id": sessionID,
		"line_count": len(sc.state.Lines),
		"total":      sc.state.Total(),
	})
	return s.checkoutURL, nil
}
