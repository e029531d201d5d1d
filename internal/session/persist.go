package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/agroaide/agroaide-client/internal/store"
)

// StorageKey is the namespaced key the durable state is saved under.
const StorageKey = "agroaide-store"

const (
	storageVersion = 0
	saveTimeout    = 5 * time.Second
)

type envelope struct {
	State   json.RawMessage `json:"state"`
	Version int             `json:"version"`
}

func encodeState(st State) ([]byte, error) {
	raw, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	return json.Marshal(envelope{State: raw, Version: storageVersion})
}

// decodeState overlays the persisted fields on DefaultState.
func decodeState(data []byte) (State, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return State{}, fmt.Errorf("decode envelope: %w", err)
	}
	st := DefaultState()
	if len(env.State) > 0 && string(env.State) != "null" {
		if err := json.Unmarshal(env.State, &st); err != nil {
			return State{}, fmt.Errorf("decode state: %w", err)
		}
	}
	return normalize(st), nil
}

// Hydrate restores the persisted state from repo and marks the store
// hydrated. With nothing stored it hydrates immediately with defaults. On a
// read or decode error the defaults are kept, the store is still marked
// hydrated, and the error is returned.
func (s *Store) Hydrate(ctx context.Context, repo store.Repository) error {
	defer s.MarkHydrated()

	data, err := repo.Load(ctx, StorageKey)
	if errors.Is(err, store.ErrNotFound) {
		s.logger.Debug("No persisted session, starting fresh")
		return nil
	}
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	st, err := decodeState(data)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	s.replace(st)
	s.logger.Debug("Session restored", "auth_status", st.AuthStatus, "onboarding_completed", st.OnboardingCompleted)
	return nil
}

// Persister saves every state change to a Repository in the background.
// Writes are best-effort: failures are logged and dropped. Bursts coalesce
// so only the latest pending snapshot is written.
type Persister struct {
	store       *Store
	repo        store.Repository
	logger      *slog.Logger
	pending     chan State
	stop        chan struct{}
	done        chan struct{}
	unsubscribe func()
	closeOnce   sync.Once
}

// NewPersister subscribes to s and starts the background writer.
func NewPersister(s *Store, repo store.Repository, logger *slog.Logger) *Persister {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Persister{
		store:   s,
		repo:    repo,
		logger:  logger,
		pending: make(chan State, 1),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	p.unsubscribe = s.Subscribe(p.enqueue)
	go p.run()
	return p
}

// enqueue replaces any snapshot still waiting to be written.
func (p *Persister) enqueue(st State) {
	for {
		select {
		case p.pending <- st:
			return
		default:
		}
		select {
		case <-p.pending:
		default:
		}
	}
}

func (p *Persister) run() {
	defer close(p.done)
	for {
		select {
		case st := <-p.pending:
			p.save(st)
		case <-p.stop:
			select {
			case st := <-p.pending:
				p.save(st)
			default:
			}
			return
		}
	}
}

func (p *Persister) save(st State) {
	data, err := encodeState(st)
	if err != nil {
		p.logger.Warn("Failed to encode session", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := p.repo.Save(ctx, StorageKey, data); err != nil {
		p.logger.Warn("Failed to persist session", "error", err)
	}
}

// Close stops listening, writes the last pending snapshot and waits for the
// writer to exit or ctx to expire.
func (p *Persister) Close(ctx context.Context) error {
	p.closeOnce.Do(func() {
		p.unsubscribe()
		close(p.stop)
	})
	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Forget stops persisting, deletes the saved state and resets the store to
// DefaultState. The store stays hydrated.
func (p *Persister) Forget(ctx context.Context) error {
	if err := p.Close(ctx); err != nil {
		return err
	}
	if err := p.repo.Delete(ctx, StorageKey); err != nil {
		return fmt.Errorf("forget session: %w", err)
	}
	p.store.replace(DefaultState())
	p.logger.Info("Local session forgotten")
	return nil
}
