package controller

import (
	goerrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dukatech/netstore-backend/internal/app/service"
	"github.com/dukatech/netstore-backend/internal/errors"
	"github.com/dukatech/netstore-backend/internal/middleware"
)

type WishlistController struct {
	wishlistService service.WishlistService
}

func NewWishlistController(wishlistService service.WishlistService) *WishlistController {
	return &WishlistController{
		wishlistService: wishlistService,
	}
}

type ToggleWishlistRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// GetWishlist returns the session's wishlist
// GET /api/v1/wishlist
func (ctrl *WishlistController) GetWishlist(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	sessionID, exists := middleware.GetSessionID(c)
	if !exists {
		errors.RespondWithError(c, http.StatusBadRequest, errors.SessionMissing, "No session")
		return
	}

	items := ctrl.wishlistService.GetWishlist(c.Request.Context(), sessionID)

	log.Info("Wishlist fetched successfully", map[string]interface{}{
		"session_id": sessionID,
		"count":      len(items),
	})

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

// ToggleWishlist adds the product when absent, removes it when present
// POST /api/v1/wishlist/toggle
func (ctrl *WishlistController) ToggleWishlist(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	sessionID, exists := middleware.GetSessionID(c)
	if !exists {
		errors.RespondWithError(c, http.StatusBadRequest, errors.SessionMissing, "No session")
		return
	}

	var req ToggleWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid wishlist toggle request", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		errors.RespondWithError(c, http.StatusBadRequest, errors.ValidationInvalidInput, "Invalid request data")
		return
	}

	wished, err := ctrl.wishlistService.Toggle(c.Request.Context(), sessionID, req.ProductID)
	if err != nil {
		if goerrors.Is(err, service.ErrProductNotFound) {
			errors.NotFound(c, errors.WishlistProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to toggle wishlist", err, map[string]interface{}{
			"session_id": sessionID,
			"product_id": req.ProductID,
		})
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product_id": req.ProductID,
		"wished":     wished,
	})
}
