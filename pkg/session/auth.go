package session

import (
	"context"
	"fmt"
	"sync"

	"tasktrack/domain/dto"
	"tasktrack/pkg/logger"
)

// AuthEvent transitions of the external auth state
type AuthEvent string

const (
	SignedIn       AuthEvent = "SIGNED_IN"
	SignedOut      AuthEvent = "SIGNED_OUT"
	TokenRefreshed AuthEvent = "TOKEN_REFRESHED"
)

type AuthGateway interface {
	Me(ctx context.Context) (*dto.UserResponse, error)
	SignOut(ctx context.Context) error
	// OnAuthEvent subscribes to the auth event stream, returns the unsubscribe func
	OnAuthEvent(fn func(AuthEvent)) func()
}

// AuthStore current user profile, kept in step with the auth event stream
type AuthStore struct {
	*Store[*dto.UserResponse]

	gw          AuthGateway
	onSignedOut func()

	// events arrive on the provider's goroutine
	mu          sync.Mutex
	ctx         context.Context
	unsubscribe func()
}

// NewAuthStore onSignedOut runs after the profile is cleared, e.g. to show the login view
func NewAuthStore(gw AuthGateway, onSignedOut func()) *AuthStore {
	return &AuthStore{
		Store:       NewStore[*dto.UserResponse](nil),
		gw:          gw,
		onSignedOut: onSignedOut,
	}
}

// Start subscribes to auth events; ctx is used for the profile fetches they trigger
func (a *AuthStore) Start(ctx context.Context) {
	a.mu.Lock()
	a.ctx = ctx
	a.mu.Unlock()

	unsubscribe := a.gw.OnAuthEvent(a.handle)

	a.mu.Lock()
	a.unsubscribe = unsubscribe
	a.mu.Unlock()
}

// Close stops listening to auth events
func (a *AuthStore) Close() {
	a.mu.Lock()
	unsubscribe := a.unsubscribe
	a.unsubscribe = nil
	a.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

func (a *AuthStore) User() *dto.UserResponse {
	return a.Get()
}

func (a *AuthStore) handle(event AuthEvent) {
	a.mu.Lock()
	ctx := a.ctx
	a.mu.Unlock()
	if ctx == nil {
		ctx = context.Background()
	}

	switch event {
	case SignedIn, TokenRefreshed:
		if err := a.RefreshProfile(ctx); err != nil {
			logger.WarnContext(ctx, "Failed to refresh profile", "event", event, "error", err)
		}
	case SignedOut:
		a.clear()
	}
}

// RefreshProfile refetches the profile and publishes it
func (a *AuthStore) RefreshProfile(ctx context.Context) error {
	user, err := a.gw.Me(ctx)
	if err != nil {
		return fmt.Errorf("fetch profile: %w", err)
	}
	a.Set(user)
	return nil
}

// SignOut ends the session; the profile is cleared even when the server call fails
func (a *AuthStore) SignOut(ctx context.Context) error {
	err := a.gw.SignOut(ctx)
	a.clear()
	return err
}

// clear no-op when nobody is signed in, so the sign out hook runs once
func (a *AuthStore) clear() {
	if a.Get() == nil {
		return
	}
	a.Set(nil)
	if a.onSignedOut != nil {
		a.onSignedOut()
	}
}
