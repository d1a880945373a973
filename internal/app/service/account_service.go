package service

import (
	"context"

	"github.com/dukatech/netstore-backend/pkg/identity"
	"github.com/dukatech/netstore-backend/pkg/logger"
)

// RouteDecision tells the storefront where to send a signed-in user and what
// transient status message to show while it navigates.
type RouteDecision struct {
	Route   string `json:"route"`
	IsAdmin bool   `json:"is_admin"`
	Message string `json:"message"`
}

const (
	RouteHome  = "/"
	RouteAdmin = "/admin"
)

// AccountService decides post-sign-in routing by consulting the external
// identity provider's admin-role lookup. Any lookup failure degrades to the
// home route with a status message; the user is never left on a hung screen.
type AccountService interface {
	RouteAfterSignIn(ctx context.Context, sessionToken string) RouteDecision
	IsAdmin(ctx context.Context, sessionToken string) (bool, error)
}

type accountService struct {
	checker identity.Checker
}

func NewAccountService(checker identity.Checker) AccountService {
	return &accountService{checker: checker}
}

func (s *accountService) RouteAfterSignIn(ctx context.Context, sessionToken string) RouteDecision {
	logger.Debug("Checking admin role for post-sign-in routing", nil)

	isAdmin, err := s.checker.CheckAdmin(ctx, sessionToken)
	if err != nil {
		logger.Error("Admin check failed, routing to home", err, nil)
		return RouteDecision{
			Route:   RouteHome,
			IsAdmin: false,
			Message: "Could not verify your account. Redirecting to the homepage",
		}
	}

	if isAdmin {
		logger.Info("Admin verified, routing to admin surface", nil)
		return RouteDecision{
			Route:   RouteAdmin,
			IsAdmin: true,
			Message: "You are an admin. Redirecting",
		}
	}

	return RouteDecision{
		Route:   RouteHome,
		IsAdmin: false,
		Message: "Redirecting to the homepage",
	}
}

func (s *accountService) IsAdmin(ctx context.Context, sessionToken string) (bool, error) {
	return s.checker.CheckAdmin(ctx, sessionToken)
}
