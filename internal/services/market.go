package services

import (
	"context"

	"github.com/agroaide/agroaide-client/internal/apiclient"
)

// Trend is the recent direction of a commodity price.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// MarketPrice is a commodity quote at one market.
type MarketPrice struct {
	Commodity   string   `json:"commodity"`
	PricePerTon float64  `json:"pricePerTon"`
	PricePerBag *float64 `json:"pricePerBag,omitempty"`
	Location    string   `json:"location"`
	Trend       Trend    `json:"trend"`
}

// MarketIntel is the /market/intel payload.
type MarketIntel struct {
	MarketPrices []MarketPrice `json:"marketPrices"`
	Highlights   []string      `json:"highlights"`
	LastUpdated  string        `json:"lastUpdated"`
	Source       string        `json:"source"`
}

// Resource is an extension-service resource listing.
type Resource struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ResourcesResponse is the /market/resources payload.
type ResourcesResponse struct {
	Resources []Resource `json:"resources"`
}

// NearbyFarmersResponse is the /market/nearby-farmers payload. Farmer
// entries are passed through as the backend sends them.
type NearbyFarmersResponse struct {
	Farmers []map[string]any `json:"farmers"`
	Message string           `json:"message"`
}

// MarketService covers /market.
type MarketService struct {
	client *apiclient.Client
}

// Intel returns market prices and insights.
func (s *MarketService) Intel(ctx context.Context, token string) (*MarketIntel, error) {
	return apiclient.Request[MarketIntel](ctx, s.client, "/market/intel", apiclient.RequestOptions{Token: token})
}

// Resources returns learning resources.
func (s *MarketService) Resources(ctx context.Context, token string) (*ResourcesResponse, error) {
	return apiclient.Request[ResourcesResponse](ctx, s.client, "/market/resources", apiclient.RequestOptions{Token: token})
}

// NearbyFarmers returns farmers near the caller's location.
func (s *MarketService) NearbyFarmers(ctx context.Context, token string) (*NearbyFarmersResponse, error) {
	return apiclient.Request[NearbyFarmersResponse](ctx, s.client, "/market/nearby-farmers", apiclient.RequestOptions{Token: token})
}
