package services

import (
	"context"

	"github.com/agroaide/agroaide-client/internal/apiclient"
)

// CurrentConditions is the live observation at the farm.
type CurrentConditions struct {
	Temperature         float64 `json:"temperature"`
	Humidity            float64 `json:"humidity"`
	ApparentTemperature float64 `json:"apparentTemperature"`
	Precipitation       float64 `json:"precipitation"`
	WeatherCode         int     `json:"weatherCode"`
	WindSpeed           float64 `json:"windSpeed"`
	IsDay               bool    `json:"isDay"`
	Condition           string  `json:"condition"`
	Icon                string  `json:"icon"`
}

// DailyForecast is one day of the forecast.
type DailyForecast struct {
	Day                      string  `json:"day"`
	Date                     string  `json:"date"`
	High                     float64 `json:"high"`
	Low                      float64 `json:"low"`
	Precipitation            float64 `json:"precipitation"`
	PrecipitationProbability float64 `json:"precipitationProbability"`
	Condition                string  `json:"condition"`
	Icon                     string  `json:"icon"`
	UVIndex                  float64 `json:"uvIndex"`
}

// HourlyForecast is one hour of the forecast.
type HourlyForecast struct {
	Time                     string  `json:"time"`
	Temperature              float64 `json:"temperature"`
	PrecipitationProbability float64 `json:"precipitationProbability"`
	Condition                string  `json:"condition"`
}

// Forecast is the /weather/forecast payload.
type Forecast struct {
	Current         CurrentConditions `json:"current"`
	SoilHealth      []SoilMetric      `json:"soilHealth"`
	WeatherForecast []DailyForecast   `json:"weatherForecast"`
	Hourly          []HourlyForecast  `json:"hourly"`
	Alerts          []WeatherAlert    `json:"alerts"`
}

// WeatherService covers /weather.
type WeatherService struct {
	client *apiclient.Client
}

// Forecast returns current conditions with hourly and daily forecasts.
func (s *WeatherService) Forecast(ctx context.Context, token string) (*Forecast, error) {
	return apiclient.Request[Forecast](ctx, s.client, "/weather/forecast", apiclient.RequestOptions{Token: token})
}
