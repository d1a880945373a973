package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dukatech/netstore-backend/internal/app/service"
	"github.com/dukatech/netstore-backend/internal/errors"
	"github.com/dukatech/netstore-backend/internal/middleware"
)

type AccountController struct {
	accountService service.AccountService
}

func NewAccountController(accountService service.AccountService) *AccountController {
	return &AccountController{
		accountService: accountService,
	}
}

// GetRoute decides where the storefront sends a freshly signed-in user
// GET /api/v1/account/route
func (ctrl *AccountController) GetRoute(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	token, exists := middleware.GetSessionToken(c)
	if !exists {
		log.Warn("Route decision requested without session token", nil)
		errors.Unauthorized(c, "Sign-in required")
		return
	}

	decision := ctrl.accountService.RouteAfterSignIn(c.Request.Context(), token)

	log.Info("Route decision made", map[string]interface{}{
		"route":    decision.Route,
		"is_admin": decision.IsAdmin,
	})

	c.JSON(http.StatusOK, decision)
}

// GetAdminSummary serves the admin landing payload. Reaching it at all means
// the RequireAdmin gate passed.
// GET /api/v1/admin/summary
func (ctrl *AccountController) GetAdminSummary(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	email, _ := middleware.GetUserEmail(c)

	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome, Admin",
		"user_id": userID,
		"email":   email,
	})
}
