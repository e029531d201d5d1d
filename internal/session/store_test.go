package session

import (
	"errors"
	"math/rand"
	"reflect"
	"slices"
	"sync"
	"testing"

	"github.com/agroaide/agroaide-client/internal/domain"
)

func testProfile() domain.FarmerProfile {
	lat := -1.2921
	return domain.FarmerProfile{
		ID:               "42",
		FullName:         "Amina Wanjiru",
		Email:            "amina@example.com",
		FarmName:         "Green Acres",
		FarmLatitude:     &lat,
		FarmSizeHectares: 3.5,
		Crops:            []string{"maize", "beans"},
		ExperienceLevel:  domain.ExperienceIntermediate,
		IrrigationAccess: domain.IrrigationDrip,
		PreferredTheme:   domain.ThemeLight,
	}
}

func TestNewStoreDefaults(t *testing.T) {
	s := New(nil)
	st := s.Snapshot()

	if st.AuthStatus != StatusSignedOut {
		t.Errorf("expected signedOut, got %q", st.AuthStatus)
	}
	if st.ThemePreference != domain.ThemePreferenceSystem {
		t.Errorf("expected system theme, got %q", st.ThemePreference)
	}
	if !st.NotificationPreferences.SevereWeather || st.NotificationPreferences.CommunityMentions {
		t.Errorf("unexpected notification defaults: %+v", st.NotificationPreferences)
	}
	if st.AiAdvisorPreference != domain.DefaultAiAdvisorPreference() {
		t.Errorf("unexpected advisor defaults: %+v", st.AiAdvisorPreference)
	}
	if s.Hydrated() {
		t.Error("new store must not be hydrated")
	}
}

func TestSetAuthStateEnforcesTokenInvariant(t *testing.T) {
	tests := []struct {
		name    string
		status  AuthStatus
		token   string
		wantErr error
	}{
		{"authenticated with token", StatusAuthenticated, "t1", nil},
		{"authenticated without token", StatusAuthenticated, "", ErrTokenRequired},
		{"signed out with token", StatusSignedOut, "t1", ErrUnexpectedToken},
		{"authenticating with token", StatusAuthenticating, "t1", ErrUnexpectedToken},
		{"authenticating", StatusAuthenticating, "", nil},
		{"unknown status", AuthStatus("guest"), "", ErrInvalidAuthStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(nil)
			before := s.Snapshot()

			err := s.SetAuthState(tt.status, tt.token)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if err != nil && !reflect.DeepEqual(before, s.Snapshot()) {
				t.Fatal("rejected call must leave state unchanged")
			}
			if err == nil && s.AuthStatus() != tt.status {
				t.Fatalf("expected status %q, got %q", tt.status, s.AuthStatus())
			}
		})
	}
}

func TestAccessTokenTracksLatestAuthentication(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s := New(nil)
	wantToken := ""

	for i := 0; i < 500; i++ {
		switch rng.Intn(4) {
		case 0:
			tok := "tok-" + string(rune('a'+rng.Intn(26)))
			if err := s.SetAuthState(StatusAuthenticated, tok); err != nil {
				t.Fatalf("step %d: %v", i, err)
			}
			wantToken = tok
		case 1:
			if err := s.SetAuthState(StatusAuthenticating, ""); err != nil {
				t.Fatalf("step %d: %v", i, err)
			}
			wantToken = ""
		case 2:
			if err := s.SetAuthState(StatusSignedOut, ""); err != nil {
				t.Fatalf("step %d: %v", i, err)
			}
			wantToken = ""
		case 3:
			s.SignOut()
			wantToken = ""
		}

		if got := s.AccessToken(); got != wantToken {
			t.Fatalf("step %d: expected token %q, got %q", i, wantToken, got)
		}
		if (s.AuthStatus() == StatusAuthenticated) != (s.AccessToken() != "") {
			t.Fatalf("step %d: token defined iff authenticated violated", i)
		}
	}
}

func TestOnboardingNeverReverts(t *testing.T) {
	s := New(nil)
	s.CompleteOnboarding()
	s.CompleteOnboarding()

	_ = s.SetAuthState(StatusAuthenticated, "t1")
	s.SetFarmerProfile(testProfile())
	_ = s.SetThemePreference(domain.ThemePreferenceDark)
	s.SetOfflineMode(true)
	s.SetLastSync("2024-05-01T10:00:00.000Z")
	s.UpdateNotificationPreferences(domain.NotificationPreferencesUpdate{})
	s.UpdateAiAdvisorPreference(domain.AiAdvisorPreferenceUpdate{})
	s.SignOut()

	if !s.Snapshot().OnboardingCompleted {
		t.Fatal("onboardingCompleted reverted to false")
	}
}

func TestUpdateFarmerProfileWithoutProfileIsNoop(t *testing.T) {
	s := New(nil)
	name := "Someone"

	s.UpdateFarmerProfile(domain.ProfileUpdate{FullName: &name})

	if s.FarmerProfile() != nil {
		t.Fatal("expected profile to remain absent")
	}
}

func TestUpdateFarmerProfileMerges(t *testing.T) {
	s := New(nil)
	s.SetFarmerProfile(testProfile())
	farm := "Riverbend"

	s.UpdateFarmerProfile(domain.ProfileUpdate{FarmName: &farm, Crops: []string{"sorghum"}})

	got := s.FarmerProfile()
	if got.FarmName != "Riverbend" {
		t.Errorf("expected merged farm name, got %q", got.FarmName)
	}
	if !reflect.DeepEqual(got.Crops, []string{"sorghum"}) {
		t.Errorf("expected crops replaced, got %v", got.Crops)
	}
	if got.FullName != "Amina Wanjiru" || got.Email != "amina@example.com" {
		t.Errorf("untouched fields changed: %+v", got)
	}
}

func TestSetThemePreferenceSyncsProfile(t *testing.T) {
	s := New(nil)
	s.SetFarmerProfile(testProfile())

	if err := s.SetThemePreference(domain.ThemePreferenceDark); err != nil {
		t.Fatalf("SetThemePreference failed: %v", err)
	}
	if got := s.FarmerProfile().PreferredTheme; got != domain.ThemeDark {
		t.Fatalf("expected preferredTheme dark, got %q", got)
	}

	if err := s.SetThemePreference(domain.ThemePreferenceSystem); err != nil {
		t.Fatalf("SetThemePreference failed: %v", err)
	}
	if got := s.FarmerProfile().PreferredTheme; got != domain.ThemeDark {
		t.Fatalf("system preference must leave preferredTheme unchanged, got %q", got)
	}
	if got := s.Snapshot().ThemePreference; got != domain.ThemePreferenceSystem {
		t.Fatalf("expected themePreference system, got %q", got)
	}
}

func TestSetThemePreferenceWithoutProfile(t *testing.T) {
	s := New(nil)

	if err := s.SetThemePreference(domain.ThemePreferenceField); err != nil {
		t.Fatalf("SetThemePreference failed: %v", err)
	}
	if s.FarmerProfile() != nil {
		t.Fatal("theme change must not create a profile")
	}
	if err := s.SetThemePreference("sepia"); !errors.Is(err, ErrInvalidTheme) {
		t.Fatalf("expected ErrInvalidTheme, got %v", err)
	}
}

func TestSignOutRetainsProfile(t *testing.T) {
	s := New(nil)
	p1 := testProfile()

	if err := s.SetAuthState(StatusAuthenticated, "t1"); err != nil {
		t.Fatalf("SetAuthState failed: %v", err)
	}
	s.SetFarmerProfile(p1)
	s.SignOut()

	st := s.Snapshot()
	if st.AuthStatus != StatusSignedOut {
		t.Errorf("expected signedOut, got %q", st.AuthStatus)
	}
	if st.AccessToken != "" {
		t.Errorf("expected token cleared, got %q", st.AccessToken)
	}
	if !reflect.DeepEqual(*st.FarmerProfile, p1) {
		t.Errorf("expected profile retained, got %+v", st.FarmerProfile)
	}
}

func TestPreferenceUpdatesAreShallowMerges(t *testing.T) {
	s := New(nil)
	off := false
	on := true
	deep := domain.DetailDeep

	s.UpdateNotificationPreferences(domain.NotificationPreferencesUpdate{MarketMovers: &off, CommunityMentions: &on})
	s.UpdateAiAdvisorPreference(domain.AiAdvisorPreferenceUpdate{DetailLevel: &deep})

	st := s.Snapshot()
	want := domain.NotificationPreferences{SevereWeather: true, MarketMovers: false, AIInsights: true, CommunityMentions: true}
	if st.NotificationPreferences != want {
		t.Errorf("expected %+v, got %+v", want, st.NotificationPreferences)
	}
	if st.AiAdvisorPreference.DetailLevel != domain.DetailDeep || st.AiAdvisorPreference.Tone != domain.ToneBalanced {
		t.Errorf("unexpected advisor preference: %+v", st.AiAdvisorPreference)
	}
}

func TestSnapshotIsIsolated(t *testing.T) {
	s := New(nil)
	s.SetFarmerProfile(testProfile())

	snap := s.Snapshot()
	snap.FarmerProfile.Crops[0] = "mutated"
	snap.FarmerProfile.FullName = "mutated"

	got := s.FarmerProfile()
	if got.Crops[0] != "maize" || got.FullName != "Amina Wanjiru" {
		t.Fatal("snapshot mutation leaked into the store")
	}
}

func TestSubscribeReceivesMutations(t *testing.T) {
	s := New(nil)
	var mu sync.Mutex
	var seen []State

	unsubscribe := s.Subscribe(func(st State) {
		mu.Lock()
		seen = append(seen, st)
		mu.Unlock()
	})

	s.CompleteOnboarding()
	if err := s.SetAuthState(StatusAuthenticated, ""); err == nil {
		t.Fatal("expected error")
	}
	s.SetOfflineMode(true)
	s.MarkHydrated()
	unsubscribe()
	s.SetOfflineMode(false)

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(seen))
	}
	if !seen[0].OnboardingCompleted || !seen[1].OfflineModeEnabled {
		t.Fatalf("unexpected notifications: %+v", seen)
	}
}

func TestListenersRunInSubscriptionOrder(t *testing.T) {
	s := New(nil)
	var order []int

	var unsubscribes []func()
	for i := range 5 {
		unsubscribes = append(unsubscribes, s.Subscribe(func(State) { order = append(order, i) }))
	}
	unsubscribes[2]()

	for range 3 {
		order = order[:0]
		s.SetOfflineMode(true)
		if !slices.Equal(order, []int{0, 1, 3, 4}) {
			t.Fatalf("unexpected delivery order %v", order)
		}
	}
}

func TestMarkHydratedIsOneWay(t *testing.T) {
	s := New(nil)
	s.MarkHydrated()
	s.MarkHydrated()

	if !s.Hydrated() {
		t.Fatal("expected hydrated")
	}
}

func TestConcurrentMutations(t *testing.T) {
	s := New(nil)
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = s.SetAuthState(StatusAuthenticated, "tok")
			s.SignOut()
		}()
		go func() {
			defer wg.Done()
			_ = s.Snapshot()
			s.SetOfflineMode(true)
		}()
	}
	wg.Wait()

	st := s.Snapshot()
	if (st.AuthStatus == StatusAuthenticated) != st.HasToken() {
		t.Fatalf("token invariant violated: %+v", st)
	}
}
