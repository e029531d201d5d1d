package session

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/agroaide/agroaide-client/internal/domain"
	"github.com/agroaide/agroaide-client/internal/store"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type failingRepo struct {
	store.Repository
	mu    sync.Mutex
	saves int
}

func (f *failingRepo) Save(context.Context, string, []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	return errors.New("disk full")
}

func (f *failingRepo) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves
}

type brokenLoadRepo struct {
	store.Repository
}

func (brokenLoadRepo) Load(context.Context, string) ([]byte, error) {
	return nil, errors.New("io error")
}

func closePersister(t *testing.T, p *Persister) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := p.Close(ctx); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
}

func TestPersistRoundTrip(t *testing.T) {
	repo, err := store.NewSQLite(filepath.Join(t.TempDir(), "agroaide.db"))
	if err != nil {
		t.Fatalf("NewSQLite failed: %v", err)
	}
	defer func() { _ = repo.Close() }()

	first := New(nil)
	if err := first.Hydrate(context.Background(), repo); err != nil {
		t.Fatalf("Hydrate failed: %v", err)
	}
	p := NewPersister(first, repo, nil)

	first.CompleteOnboarding()
	if err := first.SetAuthState(StatusAuthenticated, "t1"); err != nil {
		t.Fatalf("SetAuthState failed: %v", err)
	}
	first.SetFarmerProfile(testProfile())
	if err := first.SetThemePreference(domain.ThemePreferenceField); err != nil {
		t.Fatalf("SetThemePreference failed: %v", err)
	}
	first.SetOfflineMode(true)
	first.SetLastSync("2024-05-01T10:00:00.000Z")
	tone := domain.ToneBold
	first.UpdateAiAdvisorPreference(domain.AiAdvisorPreferenceUpdate{Tone: &tone})
	closePersister(t, p)

	second := New(nil)
	if second.Hydrated() {
		t.Fatal("fresh store must not be hydrated before restore")
	}
	if err := second.Hydrate(context.Background(), repo); err != nil {
		t.Fatalf("Hydrate failed: %v", err)
	}
	if !second.Hydrated() {
		t.Fatal("expected hydrated after restore")
	}

	if !reflect.DeepEqual(first.Snapshot(), second.Snapshot()) {
		t.Fatalf("restored state differs:\nwant %+v\ngot  %+v", first.Snapshot(), second.Snapshot())
	}
}

func TestPersistedEnvelope(t *testing.T) {
	repo := store.NewMemory()
	s := New(nil)
	p := NewPersister(s, repo, nil)
	s.CompleteOnboarding()
	closePersister(t, p)

	data, err := repo.Load(context.Background(), StorageKey)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	var env struct {
		State   map[string]json.RawMessage `json:"state"`
		Version int                        `json:"version"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if env.Version != 0 {
		t.Errorf("expected version 0, got %d", env.Version)
	}
	if string(env.State["onboardingCompleted"]) != "true" {
		t.Errorf("expected onboardingCompleted=true, got %s", env.State["onboardingCompleted"])
	}
	if _, ok := env.State["hydrated"]; ok {
		t.Error("hydrated must not be persisted")
	}
}

func TestHydrateWithoutStoredState(t *testing.T) {
	s := New(nil)

	if err := s.Hydrate(context.Background(), store.NewMemory()); err != nil {
		t.Fatalf("Hydrate failed: %v", err)
	}
	if !s.Hydrated() {
		t.Fatal("expected immediate hydration")
	}
	if !reflect.DeepEqual(s.Snapshot(), DefaultState()) {
		t.Fatalf("expected defaults, got %+v", s.Snapshot())
	}
}

func TestHydrateLoadErrorStillMarksHydrated(t *testing.T) {
	s := New(nil)

	err := s.Hydrate(context.Background(), brokenLoadRepo{})
	if err == nil {
		t.Fatal("expected load error")
	}
	if !s.Hydrated() {
		t.Fatal("store must be hydrated even when restore fails")
	}
	if err := s.WaitHydrated(context.Background()); err != nil {
		t.Fatalf("WaitHydrated failed: %v", err)
	}
}

func TestHydrateOverlaysPartialState(t *testing.T) {
	repo := store.NewMemory()
	raw := `{"state":{"onboardingCompleted":true,"themePreference":"dark","notificationPreferences":{"communityMentions":true}},"version":0}`
	if err := repo.Save(context.Background(), StorageKey, []byte(raw)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	s := New(nil)
	if err := s.Hydrate(context.Background(), repo); err != nil {
		t.Fatalf("Hydrate failed: %v", err)
	}

	st := s.Snapshot()
	if !st.OnboardingCompleted || st.ThemePreference != domain.ThemePreferenceDark {
		t.Errorf("persisted fields not restored: %+v", st)
	}
	if !st.NotificationPreferences.CommunityMentions || !st.NotificationPreferences.SevereWeather {
		t.Errorf("expected persisted field over defaults, got %+v", st.NotificationPreferences)
	}
	if st.AiAdvisorPreference != domain.DefaultAiAdvisorPreference() {
		t.Errorf("expected default advisor preference, got %+v", st.AiAdvisorPreference)
	}
}

func TestHydrateNormalizesAuth(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantStatus AuthStatus
		wantToken  string
	}{
		{"authenticated", `{"state":{"authStatus":"authenticated","accessToken":"t1"}}`, StatusAuthenticated, "t1"},
		{"authenticated without token", `{"state":{"authStatus":"authenticated"}}`, StatusSignedOut, ""},
		{"interrupted login", `{"state":{"authStatus":"authenticating"}}`, StatusSignedOut, ""},
		{"stray token", `{"state":{"authStatus":"signedOut","accessToken":"t1"}}`, StatusSignedOut, ""},
		{"garbage status", `{"state":{"authStatus":"admin","accessToken":"t1"}}`, StatusSignedOut, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := store.NewMemory()
			if err := repo.Save(context.Background(), StorageKey, []byte(tt.raw)); err != nil {
				t.Fatalf("Save failed: %v", err)
			}
			s := New(nil)
			if err := s.Hydrate(context.Background(), repo); err != nil {
				t.Fatalf("Hydrate failed: %v", err)
			}
			if s.AuthStatus() != tt.wantStatus || s.AccessToken() != tt.wantToken {
				t.Fatalf("expected (%q, %q), got (%q, %q)", tt.wantStatus, tt.wantToken, s.AuthStatus(), s.AccessToken())
			}
		})
	}
}

func TestHydrateCorruptState(t *testing.T) {
	repo := store.NewMemory()
	if err := repo.Save(context.Background(), StorageKey, []byte("{not json")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	s := New(nil)
	if err := s.Hydrate(context.Background(), repo); err == nil {
		t.Fatal("expected decode error")
	}
	if !s.Hydrated() || !reflect.DeepEqual(s.Snapshot(), DefaultState()) {
		t.Fatal("expected hydrated defaults after corrupt state")
	}
}

func TestPersisterSwallowsSaveErrors(t *testing.T) {
	repo := &failingRepo{}
	s := New(nil)
	p := NewPersister(s, repo, nil)

	s.CompleteOnboarding()
	s.SetOfflineMode(true)
	closePersister(t, p)

	if repo.saveCount() == 0 {
		t.Fatal("expected at least one save attempt")
	}
	if !s.Snapshot().OnboardingCompleted {
		t.Fatal("mutation must succeed despite persistence failure")
	}
}

func TestPersisterWritesLatestSnapshot(t *testing.T) {
	repo := store.NewMemory()
	s := New(nil)
	p := NewPersister(s, repo, nil)

	for i := 0; i < 100; i++ {
		s.SetOfflineMode(i%2 == 0)
	}
	s.SetLastSync("2024-06-01T00:00:00.000Z")
	closePersister(t, p)

	restored := New(nil)
	if err := restored.Hydrate(context.Background(), repo); err != nil {
		t.Fatalf("Hydrate failed: %v", err)
	}
	if got := restored.Snapshot().LastSyncISO; got != "2024-06-01T00:00:00.000Z" {
		t.Fatalf("expected latest snapshot persisted, got lastSyncISO=%q", got)
	}
}

func TestPersisterStopsListeningAfterClose(t *testing.T) {
	repo := store.NewMemory()
	s := New(nil)
	p := NewPersister(s, repo, nil)
	closePersister(t, p)
	closePersister(t, p)

	s.CompleteOnboarding()

	if _, err := repo.Load(context.Background(), StorageKey); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected nothing persisted after Close, got %v", err)
	}
}

func TestForgetDeletesSavedState(t *testing.T) {
	repo := store.NewMemory()
	s := New(nil)
	s.MarkHydrated()
	p := NewPersister(s, repo, nil)

	s.CompleteOnboarding()
	if err := s.SetAuthState(StatusAuthenticated, "tok"); err != nil {
		t.Fatalf("SetAuthState failed: %v", err)
	}
	if err := p.Forget(context.Background()); err != nil {
		t.Fatalf("Forget failed: %v", err)
	}

	if _, err := repo.Load(context.Background(), StorageKey); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected saved state deleted, got %v", err)
	}
	if !reflect.DeepEqual(s.Snapshot(), DefaultState()) {
		t.Fatalf("expected default state, got %+v", s.Snapshot())
	}
	if !s.Hydrated() {
		t.Fatal("store must stay hydrated")
	}

	s.CompleteOnboarding()
	if _, err := repo.Load(context.Background(), StorageKey); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected nothing persisted after Forget, got %v", err)
	}
	closePersister(t, p)
}

func TestWaitHydratedHonoursContext(t *testing.T) {
	s := New(nil)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := s.WaitHydrated(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestISOTimestamp(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 30, 15, 250_000_000, time.FixedZone("EAT", 3*3600))
	if got := ISOTimestamp(ts); got != "2024-05-01T09:30:15.250Z" {
		t.Fatalf("unexpected ISO timestamp %q", got)
	}
}
