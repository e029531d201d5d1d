// Package app composes the session store, the backend services and the read
// cache into the operations the CLI exposes.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/agroaide/agroaide-client/internal/apiclient"
	"github.com/agroaide/agroaide-client/internal/domain"
	"github.com/agroaide/agroaide-client/internal/query"
	"github.com/agroaide/agroaide-client/internal/services"
	"github.com/agroaide/agroaide-client/internal/session"
)

// ErrNotAuthenticated is returned by calls that need a signed-in farmer.
var ErrNotAuthenticated = errors.New("app: not signed in")

// Route is the screen a user should land on.
type Route string

const (
	RouteOnboarding Route = "onboarding"
	RouteLogin      Route = "login"
	RouteDashboard  Route = "dashboard"
)

// App wires the session store to the backend.
type App struct {
	store  *session.Store
	api    *services.Services
	cache  *query.Cache
	logger *slog.Logger
	now    func() time.Time

	syncs        singleflight.Group
	offlineEpoch atomic.Uint64
}

// New creates an App. A nil cache gets the default query settings.
func New(store *session.Store, api *services.Services, cache *query.Cache, logger *slog.Logger) *App {
	if cache == nil {
		cache = query.New(query.Config{Logger: logger})
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &App{
		store:  store,
		api:    api,
		cache:  cache,
		logger: logger,
		now:    time.Now,
	}
}

// Session returns the underlying store for direct preference updates.
func (a *App) Session() *session.Store {
	return a.store
}

// Bootstrap waits for hydration and, for a restored session, refreshes the
// profile. Any refresh failure signs the user out.
func (a *App) Bootstrap(ctx context.Context) error {
	if err := a.store.WaitHydrated(ctx); err != nil {
		return fmt.Errorf("wait for hydration: %w", err)
	}

	token, err := a.token()
	if err != nil {
		return nil
	}

	resp, err := a.api.Auth.Me(ctx, token)
	if err != nil {
		a.logger.Warn("Session refresh failed, signing out",
			"kind", apiclient.KindOf(err),
			"error", err)
		a.signOut()
		return nil
	}
	a.store.SetFarmerProfile(resp.Profile)
	return nil
}

// Route picks the landing screen from the current state.
func (a *App) Route() Route {
	st := a.store.Snapshot()
	switch {
	case !st.OnboardingCompleted:
		return RouteOnboarding
	case st.AuthStatus != session.StatusAuthenticated:
		return RouteLogin
	default:
		return RouteDashboard
	}
}

func (a *App) token() (string, error) {
	if a.store.AuthStatus() != session.StatusAuthenticated {
		return "", ErrNotAuthenticated
	}
	token := a.store.AccessToken()
	if token == "" {
		return "", ErrNotAuthenticated
	}
	return token, nil
}

func (a *App) signOut() {
	a.store.SignOut()
	a.cache.Clear()
}

// Guard signs out when err says the session expired. It returns err.
func (a *App) Guard(err error) error {
	if apiclient.IsAuthExpired(err) {
		a.logger.Info("Session expired, signing out")
		a.signOut()
	}
	return err
}

// Login authenticates with email and password.
func (a *App) Login(ctx context.Context, email, password string) (*domain.FarmerProfile, error) {
	return a.authenticate(func() (*services.AuthResponse, error) {
		return a.api.Auth.Login(ctx, email, password)
	})
}

// Register creates an account and signs it in.
func (a *App) Register(ctx context.Context, payload services.RegisterPayload) (*domain.FarmerProfile, error) {
	return a.authenticate(func() (*services.AuthResponse, error) {
		return a.api.Auth.Register(ctx, payload)
	})
}

func (a *App) authenticate(call func() (*services.AuthResponse, error)) (*domain.FarmerProfile, error) {
	if err := a.store.SetAuthState(session.StatusAuthenticating, ""); err != nil {
		return nil, err
	}

	resp, err := call()
	if err != nil {
		a.store.SignOut()
		return nil, err
	}
	if err := a.store.SetAuthState(session.StatusAuthenticated, resp.Token); err != nil {
		a.store.SignOut()
		return nil, fmt.Errorf("store session: %w", err)
	}

	a.cache.Clear()
	a.store.SetFarmerProfile(resp.Profile)
	return a.store.FarmerProfile(), nil
}

// Logout revokes the token on a best-effort basis and always signs out
// locally.
func (a *App) Logout(ctx context.Context) {
	if token := a.store.AccessToken(); token != "" {
		if _, err := a.api.Auth.Logout(ctx, token); err != nil {
			a.logger.Debug("Remote logout failed", "error", err)
		}
	}
	a.signOut()
}

// RecoverPassword asks the backend to send reset instructions.
func (a *App) RecoverPassword(ctx context.Context, email string) (*services.MessageResponse, error) {
	return a.api.Auth.RequestPasswordReset(ctx, email)
}

// RefreshProfile reloads the profile from the backend.
func (a *App) RefreshProfile(ctx context.Context) (*domain.FarmerProfile, error) {
	token, err := a.token()
	if err != nil {
		return nil, err
	}
	resp, err := a.api.Auth.Me(ctx, token)
	if err != nil {
		return nil, a.Guard(err)
	}
	a.store.SetFarmerProfile(resp.Profile)
	return a.store.FarmerProfile(), nil
}

// UpdateProfile saves u on the server and stores the returned profile.
func (a *App) UpdateProfile(ctx context.Context, u domain.ProfileUpdate) (*domain.FarmerProfile, error) {
	token, err := a.token()
	if err != nil {
		return nil, err
	}
	resp, err := a.api.Auth.UpdateProfile(ctx, token, u)
	if err != nil {
		return nil, a.Guard(err)
	}
	a.store.SetFarmerProfile(resp.Profile)
	a.cache.Invalidate(keyDashboard, keyFarm)
	return a.store.FarmerProfile(), nil
}

// ChangePassword updates the account password.
func (a *App) ChangePassword(ctx context.Context, payload services.ChangePasswordPayload) (*services.MessageResponse, error) {
	token, err := a.token()
	if err != nil {
		return nil, err
	}
	resp, err := a.api.Auth.ChangePassword(ctx, token, payload)
	return resp, a.Guard(err)
}
