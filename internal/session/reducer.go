package session

import (
	"errors"
	"fmt"

	"github.com/agroaide/agroaide-client/internal/domain"
)

var (
	// ErrTokenRequired is returned when authenticating without a token.
	ErrTokenRequired = errors.New("session: authenticated status requires an access token")
	// ErrUnexpectedToken is returned when a token accompanies a non-authenticated status.
	ErrUnexpectedToken = errors.New("session: only the authenticated status may carry an access token")
	// ErrInvalidAuthStatus is returned for an unknown AuthStatus.
	ErrInvalidAuthStatus = errors.New("session: invalid auth status")
	// ErrInvalidTheme is returned for an unknown ThemePreference.
	ErrInvalidTheme = errors.New("session: invalid theme preference")
)

func completeOnboarding(s State) State {
	s.OnboardingCompleted = true
	return s
}

func setAuthState(s State, status AuthStatus, token string) (State, error) {
	if !status.Valid() {
		return s, fmt.Errorf("%w: %q", ErrInvalidAuthStatus, status)
	}
	if status == StatusAuthenticated && token == "" {
		return s, ErrTokenRequired
	}
	if status != StatusAuthenticated && token != "" {
		return s, ErrUnexpectedToken
	}
	s.AuthStatus = status
	s.AccessToken = token
	return s, nil
}

func setFarmerProfile(s State, p domain.FarmerProfile) State {
	s.FarmerProfile = p.Clone()
	return s
}

// updateFarmerProfile is a no-op while no profile is held.
func updateFarmerProfile(s State, u domain.ProfileUpdate) State {
	if s.FarmerProfile == nil {
		return s
	}
	merged := s.FarmerProfile.Apply(u)
	s.FarmerProfile = &merged
	return s
}

// setThemePreference mirrors explicit modes onto the profile. "system" is
// resolved at render time and never written to the profile.
func setThemePreference(s State, pref domain.ThemePreference) (State, error) {
	if !pref.Valid() {
		return s, fmt.Errorf("%w: %q", ErrInvalidTheme, pref)
	}
	s.ThemePreference = pref
	if mode, ok := pref.Mode(); ok && s.FarmerProfile != nil {
		p := s.FarmerProfile.Clone()
		p.PreferredTheme = mode
		s.FarmerProfile = p
	}
	return s, nil
}

// signOut keeps the profile and preferences; only auth fields are reset.
func signOut(s State) State {
	s.AuthStatus = StatusSignedOut
	s.AccessToken = ""
	return s
}

func setOfflineMode(s State, enabled bool) State {
	s.OfflineModeEnabled = enabled
	return s
}

func setLastSync(s State, iso string) State {
	s.LastSyncISO = iso
	return s
}

func updateNotificationPreferences(s State, u domain.NotificationPreferencesUpdate) State {
	s.NotificationPreferences = s.NotificationPreferences.Apply(u)
	return s
}

func updateAiAdvisorPreference(s State, u domain.AiAdvisorPreferenceUpdate) State {
	s.AiAdvisorPreference = s.AiAdvisorPreference.Apply(u)
	return s
}

// normalize repairs a restored state so it satisfies the token invariant.
// A process killed mid-login leaves "authenticating" behind; that is treated
// as signed out.
func normalize(s State) State {
	if !s.AuthStatus.Valid() {
		s.AuthStatus = StatusSignedOut
	}
	if s.AuthStatus == StatusAuthenticating {
		s.AuthStatus = StatusSignedOut
	}
	if s.AuthStatus == StatusAuthenticated && s.AccessToken == "" {
		s.AuthStatus = StatusSignedOut
	}
	if s.AuthStatus != StatusAuthenticated {
		s.AccessToken = ""
	}
	if !s.ThemePreference.Valid() {
		s.ThemePreference = domain.ThemePreferenceSystem
	}
	return s
}
