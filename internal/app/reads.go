package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/agroaide/agroaide-client/internal/query"
	"github.com/agroaide/agroaide-client/internal/services"
)

// Cache keys. Mutations invalidate by prefix.
const (
	keyDashboard     = "dashboard"
	keyFarm          = "farm"
	keyCalendar      = "calendar"
	keyMarket        = "market"
	keyWeather       = "weather"
	keyNotifications = "notifications"
	keyAdvisor       = "advisor"
	keySystem        = "system"
)

func cached[T any](ctx context.Context, a *App, key string, fetch func(context.Context, string) (*T, error)) (*T, error) {
	token, err := a.token()
	if err != nil {
		return nil, err
	}
	v, err := query.Fetch(ctx, a.cache, key, func(ctx context.Context) (*T, error) {
		return fetch(ctx, token)
	})
	if err != nil {
		return nil, a.Guard(err)
	}
	return v, nil
}

// Dashboard returns the cached dashboard snapshot.
func (a *App) Dashboard(ctx context.Context) (*services.DashboardSnapshot, error) {
	return cached(ctx, a, keyDashboard, a.api.Dashboard.Snapshot)
}

// FarmOverview returns the cached farm overview.
func (a *App) FarmOverview(ctx context.Context) (*services.FarmOverview, error) {
	return cached(ctx, a, keyFarm+":overview", a.api.Farm.Overview)
}

// Calendar returns the calendar around date; "" means today.
func (a *App) Calendar(ctx context.Context, date string) (*services.CalendarResponse, error) {
	return cached(ctx, a, keyCalendar+":"+date, func(ctx context.Context, token string) (*services.CalendarResponse, error) {
		return a.api.Calendar.Calendar(ctx, token, date)
	})
}

// MarketIntel returns cached market intel.
func (a *App) MarketIntel(ctx context.Context) (*services.MarketIntel, error) {
	return cached(ctx, a, keyMarket+":intel", a.api.Market.Intel)
}

// Resources returns cached learning resources.
func (a *App) Resources(ctx context.Context) (*services.ResourcesResponse, error) {
	return cached(ctx, a, keyMarket+":resources", a.api.Market.Resources)
}

// NearbyFarmers returns cached nearby farmers.
func (a *App) NearbyFarmers(ctx context.Context) (*services.NearbyFarmersResponse, error) {
	return cached(ctx, a, keyMarket+":nearby", a.api.Market.NearbyFarmers)
}

// Weather returns the cached forecast.
func (a *App) Weather(ctx context.Context) (*services.Forecast, error) {
	return cached(ctx, a, keyWeather, a.api.Weather.Forecast)
}

// Notifications returns cached notifications.
func (a *App) Notifications(ctx context.Context) (*services.NotificationsResponse, error) {
	return cached(ctx, a, keyNotifications, a.api.Notifications.List)
}

// Suggestions returns cached advisor prompt suggestions.
func (a *App) Suggestions(ctx context.Context) (*services.SuggestionsResponse, error) {
	return cached(ctx, a, keyAdvisor+":suggestions", a.api.Advisor.Suggestions)
}

// SupportLinks returns cached support links.
func (a *App) SupportLinks(ctx context.Context) (*services.SupportLinksResponse, error) {
	return cached(ctx, a, keySystem+":support-links", a.api.System.SupportLinks)
}

// Home is what the dashboard screen shows.
type Home struct {
	Dashboard     *services.DashboardSnapshot     `json:"dashboard"`
	Notifications *services.NotificationsResponse `json:"notifications"`
}

// Home loads the dashboard and notifications concurrently.
func (a *App) Home(ctx context.Context) (*Home, error) {
	var home Home
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		home.Dashboard, err = a.Dashboard(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		home.Notifications, err = a.Notifications(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &home, nil
}

// RefreshHome drops the cached dashboard and notifications so the next Home
// call hits the backend.
func (a *App) RefreshHome() {
	a.cache.Invalidate(keyDashboard, keyNotifications)
}
