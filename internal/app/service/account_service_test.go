package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeChecker struct {
	isAdmin bool
	err     error
}

func (c *fakeChecker) CheckAdmin(ctx context.Context, sessionToken string) (bool, error) {
	return c.isAdmin, c.err
}

func TestAccountService_RouteAfterSignIn_Admin(t *testing.T) {
	svc := NewAccountService(&fakeChecker{isAdmin: true})

	decision := svc.RouteAfterSignIn(context.Background(), "token")
	assert.Equal(t, RouteAdmin, decision.Route)
	assert.True(t, decision.IsAdmin)
	assert.NotEmpty(t, decision.Message)
}

func TestAccountService_RouteAfterSignIn_NonAdmin(t *testing.T) {
	svc := NewAccountService(&fakeChecker{isAdmin: false})

	decision := svc.RouteAfterSignIn(context.Background(), "token")
	assert.Equal(t, RouteHome, decision.Route)
	assert.False(t, decision.IsAdmin)
}

func TestAccountService_RouteAfterSignIn_CheckFailureFallsBackToHome(t *testing.T) {
	svc := NewAccountService(&fakeChecker{err: errors.New("provider unreachable")})

	decision := svc.RouteAfterSignIn(context.Background(), "token")
	assert.Equal(t, RouteHome, decision.Route)
	assert.False(t, decision.IsAdmin)
	assert.Contains(t, decision.Message, "Could not verify")
}

func TestAccountService_IsAdmin(t *testing.T) {
	admin, err := NewAccountService(&fakeChecker{isAdmin: true}).IsAdmin(context.Background(), "token")
	assert.NoError(t, err)
	assert.True(t, admin)

	wantErr := errors.New("provider unreachable")
	_, err = NewAccountService(&fakeChecker{err: wantErr}).IsAdmin(context.Background(), "token")
	assert.ErrorIs(t, err, wantErr)
}
