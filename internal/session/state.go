// Package session holds the client's session and preference state.
//
// A Store is created once by the composition root and passed to whoever
// needs it. Every change goes through a named mutation, each of which is a
// pure State -> State function applied atomically; durable persistence is a
// separate subscriber (see Persister).
package session

import (
	"time"

	"github.com/agroaide/agroaide-client/internal/domain"
)

// AuthStatus drives the routing gates.
type AuthStatus string

const (
	StatusSignedOut      AuthStatus = "signedOut"
	StatusAuthenticating AuthStatus = "authenticating"
	StatusAuthenticated  AuthStatus = "authenticated"
)

// Valid reports whether s is a known status.
func (s AuthStatus) Valid() bool {
	switch s {
	case StatusSignedOut, StatusAuthenticating, StatusAuthenticated:
		return true
	}
	return false
}

// State is the durable part of the session. Every field survives a restart.
type State struct {
	OnboardingCompleted     bool                           `json:"onboardingCompleted"`
	AuthStatus              AuthStatus                     `json:"authStatus"`
	AccessToken             string                         `json:"accessToken,omitempty"`
	FarmerProfile           *domain.FarmerProfile          `json:"farmerProfile,omitempty"`
	ThemePreference         domain.ThemePreference         `json:"themePreference"`
	LastSyncISO             string                         `json:"lastSyncISO,omitempty"`
	OfflineModeEnabled      bool                           `json:"offlineModeEnabled"`
	NotificationPreferences domain.NotificationPreferences `json:"notificationPreferences"`
	AiAdvisorPreference     domain.AiAdvisorPreference     `json:"aiAdvisorPreference"`
}

// DefaultState returns the state of a fresh install.
func DefaultState() State {
	return State{
		AuthStatus:              StatusSignedOut,
		ThemePreference:         domain.ThemePreferenceSystem,
		NotificationPreferences: domain.DefaultNotificationPreferences(),
		AiAdvisorPreference:     domain.DefaultAiAdvisorPreference(),
	}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	s.FarmerProfile = s.FarmerProfile.Clone()
	return s
}

// HasToken reports whether an access token is held.
func (s State) HasToken() bool {
	return s.AccessToken != ""
}

// ISOTimestamp formats t the way lastSyncISO is stored: UTC, millisecond precision.
func ISOTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}
