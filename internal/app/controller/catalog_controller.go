package controller

import (
	goerrors "errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dukatech/netstore-backend/internal/app/model"
	"github.com/dukatech/netstore-backend/internal/app/service"
	"github.com/dukatech/netstore-backend/internal/errors"
	"github.com/dukatech/netstore-backend/internal/middleware"
)

type CatalogController struct {
	catalogService  service.CatalogService
	wishlistService service.WishlistService
}

func NewCatalogController(catalogService service.CatalogService, wishlistService service.WishlistService) *CatalogController {
	return &CatalogController{
		catalogService:  catalogService,
		wishlistService: wishlistService,
	}
}

// parseCSV splits a comma-separated query value, dropping empty segments
func parseCSV(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// ListProducts serves the filtered, sorted, paginated catalog page
// GET /api/v1/products
func (ctrl *CatalogController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	sortKey, err := service.ParseSortKey(c.Query("sort"))
	if err != nil {
		log.Warn("Invalid sort key", map[string]interface{}{
			"sort": c.Query("sort"),
		})
		errors.BadRequest(c, errors.CatalogInvalidSort, "Unknown sort option")
		return
	}

	var statuses []model.StockStatus
	for _, raw := range parseCSV(c.Query("stock")) {
		status := model.StockStatus(raw)
		if !model.ValidStockStatus(status) {
			log.Warn("Invalid stock status filter", map[string]interface{}{
				"status": raw,
			})
			errors.BadRequest(c, errors.CatalogInvalidStatus, "Unknown stock status")
			return
		}
		statuses = append(statuses, status)
	}

	priceMin, _ := strconv.ParseFloat(c.Query("price_min"), 64)
	priceMax, _ := strconv.ParseFloat(c.Query("price_max"), 64)
	perPage, _ := strconv.Atoi(c.Query("per_page"))
	page, _ := strconv.Atoi(c.Query("page"))

	result := ctrl.catalogService.Query(service.CatalogQuery{
		Search:   c.Query("search"),
		Brands:   parseCSV(c.Query("brands")),
		Statuses: statuses,
		PriceMin: priceMin,
		PriceMax: priceMax,
		Sort:     sortKey,
		PerPage:  perPage,
		Page:     page,
	})

	c.JSON(http.StatusOK, result)
}

// GetProduct serves one listing with its presentation fields
// GET /api/v1/products/:id
func (ctrl *CatalogController) GetProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID := c.Param("id")
	product, err := ctrl.catalogService.GetProductByID(productID)
	if err != nil {
		if goerrors.Is(err, service.ErrProductNotFound) {
			errors.NotFound(c, errors.CatalogProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": productID,
		})
		errors.InternalError(c, "")
		return
	}

	wished := false
	if sessionID, ok := middleware.GetSessionID(c); ok {
		wished = ctrl.wishlistService.Contains(c.Request.Context(), sessionID, productID)
	}

	c.JSON(http.StatusOK, gin.H{
		"product":          product,
		"on_sale":          product.OnSale(),
		"discount_percent": product.DiscountPercent(),
		"wished":           wished,
	})
}

// GetFilters serves the values the filter sidebar offers
// GET /api/v1/products/filters
func (ctrl *CatalogController) GetFilters(c *gin.Context) {
	c.JSON(http.StatusOK, ctrl.catalogService.Filters())
}

// GetSelection returns the transient quantity selector for a product
// GET /api/v1/products/:id/selection
func (ctrl *CatalogController) GetSelection(c *gin.Context) {
	sessionID, exists := middleware.GetSessionID(c)
	if !exists {
		errors.RespondWithError(c, http.StatusBadRequest, errors.SessionMissing, "No session")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product_id": c.Param("id"),
		"quantity":   ctrl.catalogService.QuantityFor(sessionID, c.Param("id")),
	})
}

// IncreaseSelection bumps the quantity selector
// POST /api/v1/products/:id/selection/increase
func (ctrl *CatalogController) IncreaseSelection(c *gin.Context) {
	sessionID, exists := middleware.GetSessionID(c)
	if !exists {
		errors.RespondWithError(c, http.StatusBadRequest, errors.SessionMissing, "No session")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product_id": c.Param("id"),
		"quantity":   ctrl.catalogService.IncreaseSelection(sessionID, c.Param("id")),
	})
}

// DecreaseSelection lowers the quantity selector, never below one
// POST /api/v1/products/:id/selection/decrease
func (ctrl *CatalogController) DecreaseSelection(c *gin.Context) {
	sessionID, exists := middleware.GetSessionID(c)
	if !exists {
		errors.RespondWithError(c, http.StatusBadRequest, errors.SessionMissing, "No session")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product_id": c.Param("id"),
		"quantity":   ctrl.catalogService.DecreaseSelection(sessionID, c.Param("id")),
	})
}
