package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukatech/netstore-backend/internal/app/repository"
	"github.com/dukatech/netstore-backend/internal/app/service"
	"github.com/dukatech/netstore-backend/internal/middleware"
)

func setupWishlistControllerTest(t *testing.T) *gin.Engine {
	t.Helper()

	wishlistService := service.NewWishlistService(repository.NewMemoryWishlistRepository(), testControllerCatalog())
	controller := NewWishlistController(wishlistService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.SessionIDKey, "test-session")
		c.Next()
	})

	router.GET("/wishlist", controller.GetWishlist)
	router.POST("/wishlist/toggle", controller.ToggleWishlist)

	return router
}

func toggleWishlist(t *testing.T, router *gin.Engine, productID string) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(ToggleWishlistRequest{ProductID: productID})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/wishlist/toggle", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestWishlistController_GetWishlist_Empty(t *testing.T) {
	router := setupWishlistControllerTest(t)

	req := httptest.NewRequest(http.MethodGet, "/wishlist", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(0), resp["count"])
}

func TestWishlistController_Toggle(t *testing.T) {
	router := setupWishlistControllerTest(t)

	w := toggleWishlist(t, router, "p1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"wished":true`)

	req := httptest.NewRequest(http.MethodGet, "/wishlist", nil)
	getW := httptest.NewRecorder()
	router.ServeHTTP(getW, req)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(getW.Body.Bytes(), &resp))
	assert.Equal(t, float64(1), resp["count"])

	// Second toggle removes it again
	w = toggleWishlist(t, router, "p1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"wished":false`)
}

func TestWishlistController_Toggle_UnknownProduct(t *testing.T) {
	router := setupWishlistControllerTest(t)

	w := toggleWishlist(t, router, "p999")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "WISHLIST_PRODUCT_NOT_FOUND")
}

func TestWishlistController_Toggle_MissingProductID(t *testing.T) {
	router := setupWishlistControllerTest(t)

	req := httptest.NewRequest(http.MethodPost, "/wishlist/toggle", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_INVALID_INPUT")
}
