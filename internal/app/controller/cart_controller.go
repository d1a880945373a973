package controller

import (
	"context"
	goerrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dukatech/netstore-backend/internal/app/service"
	"github.com/dukatech/netstore-backend/internal/errors"
	"github.com/dukatech/netstore-backend/internal/middleware"
)

type CartController struct {
	cartService    service.CartService
	catalogService service.CatalogService
}

func NewCartController(cartService service.CartService, catalogService service.CatalogService) *CartController {
	return &CartController{
		cartService:    cartService,
		catalogService: catalogService,
	}
}

type AddToCartRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	// Quantity omitted or zero falls back to the catalog quantity selector
	Quantity int `json:"quantity"`
}

// GetCart returns the session's cart with its derived total
// GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	sessionID, exists := middleware.GetSessionID(c)
	if !exists {
		log.Warn("Cart request without session", nil)
		errors.RespondWithError(c, http.StatusBadRequest, errors.SessionMissing, "No session")
		return
	}

	state := ctrl.cartService.GetCart(c.Request.Context(), sessionID)

	log.Info("Cart fetched successfully", map[string]interface{}{
		"session_id": sessionID,
		"count":      len(state.Lines),
		"total":      state.Total(),
	})

	c.JSON(http.StatusOK, gin.H{
		"lines":          state.Lines,
		"count":          len(state.Lines),
		"total":          state.Total(),
		"is_drawer_open": state.IsDrawerOpen,
	})
}

// AddToCart adds a product to the session's cart
// POST /api/v1/cart
func (ctrl *CartController) AddToCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	sessionID, exists := middleware.GetSessionID(c)
	if !exists {
		errors.RespondWithError(c, http.StatusBadRequest, errors.SessionMissing, "No session")
		return
	}

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add to cart request", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		errors.RespondWithError(c, http.StatusBadRequest, errors.ValidationInvalidInput, "Invalid request data")
		return
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = ctrl.catalogService.QuantityFor(sessionID, req.ProductID)
	}

	log.Debug("Adding item to cart", map[string]interface{}{
		"session_id": sessionID,
		"product_id": req.ProductID,
		"quantity":   quantity,
	})

	if err := ctrl.cartService.AddItem(c.Request.Context(), sessionID, req.ProductID, quantity); err != nil {
		switch {
		case goerrors.Is(err, service.ErrProductNotFound):
			errors.NotFound(c, errors.CatalogProductNotFound, "Product not found")
		case goerrors.Is(err, service.ErrInvalidQuantity):
			errors.BadRequest(c, errors.CartInvalidQuantity, "Quantity must be at least 1")
		case goerrors.Is(err, service.ErrInvalidUnitPrice):
			errors.BadRequest(c, errors.CartInvalidPrice, "This product cannot be added right now")
		default:
			log.Error("Failed to add item to cart", err, map[string]interface{}{
				"session_id": sessionID,
				"product_id": req.ProductID,
			})
			info := errors.ParseError(err, "cart")
			errors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		}
		return
	}

	state := ctrl.cartService.GetCart(c.Request.Context(), sessionID)
	c.JSON(http.StatusOK, gin.H{
		"message":        "Item added to cart",
		"lines":          state.Lines,
		"total":          state.Total(),
		"is_drawer_open": state.IsDrawerOpen,
	})
}

// RemoveFromCart removes one line regardless of its quantity
// DELETE /api/v1/cart/:id
func (ctrl *CartController) RemoveFromCart(c *gin.Context) {
	ctrl.mutateLine(c, "Item removed from cart", ctrl.cartService.RemoveItem)
}

// IncreaseQuantity raises a line's quantity by one
// POST /api/v1/cart/:id/increase
func (ctrl *CartController) IncreaseQuantity(c *gin.Context) {
	ctrl.mutateLine(c, "Quantity increased", ctrl.cartService.IncreaseQuantity)
}

// DecreaseQuantity lowers a line's quantity by one, removing the line at zero
// POST /api/v1/cart/:id/decrease
func (ctrl *CartController) DecreaseQuantity(c *gin.Context) {
	ctrl.mutateLine(c, "Quantity decreased", ctrl.cartService.DecreaseQuantity)
}

func (ctrl *CartController) mutateLine(
	c *gin.Context,
	message string,
	op func(ctx context.Context, sessionID, productID string) error,
) {
	log := middleware.GetLoggerFromContext(c)

	sessionID, exists := middleware.GetSessionID(c)
	if !exists {
		errors.RespondWithError(c, http.StatusBadRequest, errors.SessionMissing, "No session")
		return
	}

	productID := c.Param("id")
	if productID == "" {
		errors.BadRequest(c, errors.ValidationInvalidID, "Product ID is required")
		return
	}

	if err := op(c.Request.Context(), sessionID, productID); err != nil {
		log.Error("Cart mutation failed", err, map[string]interface{}{
			"session_id": sessionID,
			"product_id": productID,
		})
		info := errors.ParseError(err, "cart")
		errors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		return
	}

	state := ctrl.cartService.GetCart(c.Request.Context(), sessionID)
	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"lines":   state.Lines,
		"total":   state.Total(),
	})
}

// ClearCart empties the session's cart
// DELETE /api/v1/cart
func (ctrl *CartController) ClearCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	sessionID, exists := middleware.GetSessionID(c)
	if !exists {
		errors.RespondWithError(c, http.StatusBadRequest, errors.SessionMissing, "No session")
		return
	}

	if err := ctrl.cartService.Clear(c.Request.Context(), sessionID); err != nil {
		log.Error("Failed to clear cart", err, map[string]interface{}{
			"session_id": sessionID,
		})
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared",
		"lines":   []struct{}{},
		"total":   0,
	})
}

// OpenDrawer marks the cart drawer visible
// POST /api/v1/cart/drawer/open
func (ctrl *CartController) OpenDrawer(c *gin.Context) {
	ctrl.setDrawer(c, true)
}

// CloseDrawer marks the cart drawer hidden
// POST /api/v1/cart/drawer/close
func (ctrl *CartController) CloseDrawer(c *gin.Context) {
	ctrl.setDrawer(c, false)
}

func (ctrl *CartController) setDrawer(c *gin.Context, open bool) {
	log := middleware.GetLoggerFromContext(c)

	sessionID, exists := middleware.GetSessionID(c)
	if !exists {
		errors.RespondWithError(c, http.StatusBadRequest, errors.SessionMissing, "No session")
		return
	}

	var err error
	if open {
		err = ctrl.cartService.OpenDrawer(c.Request.Context(), sessionID)
	} else {
		err = ctrl.cartService.CloseDrawer(c.Request.Context(), sessionID)
	}
	if err != nil {
		log.Error("Failed to toggle cart drawer", err, map[string]interface{}{
			"session_id": sessionID,
			"open":       open,
		})
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"is_drawer_open": open,
	})
}

// Checkout hands the cart off to the external checkout flow
// POST /api/v1/cart/checkout
func (ctrl *CartController) Checkout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	sessionID, exists := middleware.GetSessionID(c)
	if !exists {
		errors.RespondWithError(c, http.StatusBadRequest, errors.SessionMissing, "No session")
		return
	}

	checkoutURL, err := ctrl.cartService.Checkout(c.Request.Context(), sessionID)
	if err != nil {
		if goerrors.Is(err, service.ErrEmptyCart) {
			errors.BadRequest(c, errors.CartEmptyCheckout, "Your cart is empty")
			return
		}
		log.Error("Checkout failed", err, map[string]interface{}{
			"session_id": sessionID,
		})
		errors.InternalError(c, "")
		return
	}

	log.Info("Checkout handoff", map[string]interface{}{
		"session_id": sessionID,
	})

	c.JSON(http.StatusOK, gin.H{
		"checkout_url": checkoutURL,
	})
}
