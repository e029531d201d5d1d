package services

import (
	"context"

	"github.com/agroaide/agroaide-client/internal/apiclient"
)

// WeatherAlert is a banner-level weather warning.
type WeatherAlert struct {
	Severity string    `json:"severity"`
	Title    string    `json:"title"`
	Advice   string    `json:"advice"`
	Gradient [2]string `json:"gradient"`
}

// SoilMetric is one soil-health reading.
type SoilMetric struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
	Icon  string  `json:"icon"`
	Tone  string  `json:"tone"`
}

// DashboardSnapshot is the home screen payload.
type DashboardSnapshot struct {
	User struct {
		Name     string `json:"name"`
		FarmName string `json:"farmName"`
	} `json:"user"`
	WeatherAlert WeatherAlert `json:"weatherAlert"`
	PriorityTask struct {
		Title           string   `json:"title"`
		Progress        float64  `json:"progress"`
		EstimatedImpact string   `json:"estimatedImpact"`
		ActionItems     []string `json:"actionItems"`
	} `json:"priorityTask"`
	SoilHealth      []SoilMetric `json:"soilHealth"`
	WeatherForecast []struct {
		Day           string  `json:"day"`
		High          float64 `json:"high"`
		Low           float64 `json:"low"`
		Precipitation float64 `json:"precipitation"`
		Icon          string  `json:"icon"`
		Condition     string  `json:"condition"`
	} `json:"weatherForecast"`
	AIInsights []struct {
		ID          string `json:"id"`
		Title       string `json:"title"`
		Description string `json:"description"`
	} `json:"aiInsights"`
	UnreadNotifications int `json:"unreadNotifications"`
	CurrentWeather      struct {
		Temperature float64 `json:"temperature"`
		Humidity    float64 `json:"humidity"`
		Condition   string  `json:"condition"`
		Icon        string  `json:"icon"`
	} `json:"currentWeather"`
}

// DashboardService covers /dashboard.
type DashboardService struct {
	client *apiclient.Client
}

// Snapshot fetches the dashboard summary.
func (s *DashboardService) Snapshot(ctx context.Context, token string) (*DashboardSnapshot, error) {
	return apiclient.Request[DashboardSnapshot](ctx, s.client, "/dashboard/snapshot", apiclient.RequestOptions{Token: token})
}
