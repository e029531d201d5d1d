package session

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/agroaide/agroaide-client/internal/domain"
)

// Listener receives a copy of the durable state after each mutation.
// Listeners run synchronously in mutation order and must not mutate the store.
type Listener func(State)

type subscriber struct {
	id int
	fn Listener
}

// Store is the single source of truth for session and preference state.
type Store struct {
	mu       sync.RWMutex
	state    State
	hydrated bool
	ready    chan struct{}

	// notifyMu keeps listener delivery in mutation order.
	notifyMu  sync.Mutex
	listeners []subscriber
	nextID    int

	logger *slog.Logger
}

// New creates a store holding DefaultState. It is not hydrated.
func New(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		state:     DefaultState(),
		ready:     make(chan struct{}),
		logger:    logger,
	}
}

// Subscribe registers l and returns a function that removes it. Listeners
// are called in the order they subscribed.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, subscriber{id: id, fn: l})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			s.listeners = slices.DeleteFunc(s.listeners, func(sub subscriber) bool { return sub.id == id })
			s.mu.Unlock()
		})
	}
}

// update applies fn atomically and notifies listeners with the new state.
func (s *Store) update(fn func(State) (State, error)) error {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	next, err := fn(s.state)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.state = next
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	for _, sub := range listeners {
		sub.fn(next.Clone())
	}
	return nil
}

func (s *Store) apply(fn func(State) State) {
	_ = s.update(func(st State) (State, error) { return fn(st), nil })
}

// Snapshot returns a copy of the current durable state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// AuthStatus returns the current auth status.
func (s *Store) AuthStatus() AuthStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.AuthStatus
}

// AccessToken returns the bearer token, or "" when signed out.
func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.AccessToken
}

// FarmerProfile returns a copy of the profile, or nil if none was ever set.
func (s *Store) FarmerProfile() *domain.FarmerProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.FarmerProfile.Clone()
}

// CompleteOnboarding marks onboarding as done. It never reverts.
func (s *Store) CompleteOnboarding() {
	s.apply(completeOnboarding)
}

// SetAuthState sets the auth status and token together. A token is required
// for StatusAuthenticated and rejected for every other status; a rejected call
// leaves the state unchanged.
func (s *Store) SetAuthState(status AuthStatus, token string) error {
	return s.update(func(st State) (State, error) {
		return setAuthState(st, status, token)
	})
}

// SetFarmerProfile replaces the profile.
func (s *Store) SetFarmerProfile(p domain.FarmerProfile) {
	s.apply(func(st State) State { return setFarmerProfile(st, p) })
}

// UpdateFarmerProfile merges u into the current profile. Without a profile it does nothing.
func (s *Store) UpdateFarmerProfile(u domain.ProfileUpdate) {
	s.apply(func(st State) State { return updateFarmerProfile(st, u) })
}

// SetThemePreference sets the theme preference and mirrors explicit modes
// onto the profile's preferred theme.
func (s *Store) SetThemePreference(pref domain.ThemePreference) error {
	return s.update(func(st State) (State, error) {
		return setThemePreference(st, pref)
	})
}

// SignOut clears the auth status and token. Profile and preferences are kept.
func (s *Store) SignOut() {
	s.apply(signOut)
}

// SetOfflineMode sets the offline flag. It does not start a sync.
func (s *Store) SetOfflineMode(enabled bool) {
	s.apply(func(st State) State { return setOfflineMode(st, enabled) })
}

// SetLastSync records the last sync time; "" clears it.
func (s *Store) SetLastSync(iso string) {
	s.apply(func(st State) State { return setLastSync(st, iso) })
}

// UpdateNotificationPreferences merges u into the notification preferences.
func (s *Store) UpdateNotificationPreferences(u domain.NotificationPreferencesUpdate) {
	s.apply(func(st State) State { return updateNotificationPreferences(st, u) })
}

// UpdateAiAdvisorPreference merges u into the advisor preferences.
func (s *Store) UpdateAiAdvisorPreference(u domain.AiAdvisorPreferenceUpdate) {
	s.apply(func(st State) State { return updateAiAdvisorPreference(st, u) })
}

// Hydrated reports whether the persisted state has been restored.
func (s *Store) Hydrated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hydrated
}

// MarkHydrated flips the hydrated flag. Later calls do nothing.
func (s *Store) MarkHydrated() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hydrated {
		return
	}
	s.hydrated = true
	close(s.ready)
}

// WaitHydrated blocks until the store is hydrated or ctx is done.
func (s *Store) WaitHydrated(ctx context.Context) error {
	select {
	case <-s.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// replace swaps in a restored state without notifying listeners.
func (s *Store) replace(st State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = st
}
