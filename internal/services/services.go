// Package services wraps each backend area in a small typed client. The
// wrappers hold no state beyond the shared *apiclient.Client; every
// authenticated call takes the bearer token explicitly.
package services

import (
	"net/url"

	"github.com/agroaide/agroaide-client/internal/apiclient"
)

// MessageResponse is the {message} body most mutations return.
type MessageResponse struct {
	Message string `json:"message"`
}

// Services groups every area wrapper around one client.
type Services struct {
	Auth          *AuthService
	Dashboard     *DashboardService
	Farm          *FarmService
	Calendar      *CalendarService
	Market        *MarketService
	Weather       *WeatherService
	Notifications *NotificationService
	Advisor       *AdvisorService
	System        *SystemService
}

// New builds all area wrappers on top of client.
func New(client *apiclient.Client) *Services {
	return &Services{
		Auth:          &AuthService{client: client},
		Dashboard:     &DashboardService{client: client},
		Farm:          &FarmService{client: client},
		Calendar:      &CalendarService{client: client},
		Market:        &MarketService{client: client},
		Weather:       &WeatherService{client: client},
		Notifications: &NotificationService{client: client},
		Advisor:       NewAdvisorService(client, nil),
		System:        &SystemService{client: client},
	}
}

func escape(id string) string {
	return url.PathEscape(id)
}
