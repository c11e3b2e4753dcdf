// Package store keeps named slices of application state in memory, mirrors
// every change to durable storage and notifies subscribers.
//
// A Store is hydrated once when it is opened. Missing or unreadable documents
// fall back to the store's default state so a damaged database never blocks
// startup. Mutations are serialised, persisted before they become visible and
// then broadcast to subscribers in subscription order.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/Veraticus/pantrychef/internal/common"
)

// Backend is durable key-value storage for serialised state. Load must return
// an error wrapping common.ErrNotFound when nothing is stored under name.
type Backend interface {
	Load(ctx context.Context, name string) ([]byte, error)
	Save(ctx context.Context, name string, data []byte) error
}

// Config describes a named store.
type Config[T any] struct {
	// Default builds the initial state used when nothing valid is stored.
	Default func() T
	// Sanitize, when set, repairs invariants of freshly loaded state.
	Sanitize func(T) T
	Logger   *slog.Logger
	Name     string
}

// persisted is the on-disk envelope for a store document.
type persisted[T any] struct {
	State   T   `json:"state"`
	Version int `json:"version"`
}

// schemaVersion is written into every document.
const schemaVersion = 0

type subscriber[T any] struct {
	fn func(T)
	id int
}

// Store holds one named slice of state.
type Store[T any] struct {
	state       T
	backend     Backend
	logger      *slog.Logger
	name        string
	subscribers []subscriber[T]
	nextID      int
	mu          sync.Mutex
}

// Open hydrates the named store from backend.
func Open[T any](ctx context.Context, backend Backend, cfg Config[T]) (*Store[T], error) {
	if backend == nil {
		return nil, errors.New("store backend is required")
	}
	if cfg.Name == "" {
		return nil, errors.New("store name is required")
	}
	if cfg.Default == nil {
		return nil, fmt.Errorf("store %q: default state is required", cfg.Name)
	}

	s := &Store[T]{
		backend: backend,
		logger:  common.LoggerOrDefault(cfg.Logger),
		name:    cfg.Name,
	}

	state, err := s.hydrate(ctx, cfg)
	if err != nil {
		return nil, err
	}
	s.state = state

	return s, nil
}

func (s *Store[T]) hydrate(ctx context.Context, cfg Config[T]) (T, error) {
	data, err := s.backend.Load(ctx, s.name)
	if errors.Is(err, common.ErrNotFound) {
		s.logger.Debug("store not found, using defaults", "store", s.name)
		return cfg.Default(), nil
	}
	if err != nil {
		var zero T
		return zero, fmt.Errorf("failed to load store %q: %w", s.name, err)
	}

	// Decode over the defaults so fields added since the document was written keep
	// their default values.
	doc := persisted[T]{State: cfg.Default()}
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.Warn("stored state is corrupt, resetting to defaults",
			"store", s.name,
			"error", err)
		return cfg.Default(), nil
	}

	if cfg.Sanitize != nil {
		doc.State = cfg.Sanitize(doc.State)
	}

	return doc.State, nil
}

// Name returns the storage key of the store.
func (s *Store[T]) Name() string {
	return s.name
}

// State returns the current state.
func (s *Store[T]) State() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Set replaces the whole state.
func (s *Store[T]) Set(ctx context.Context, state T) error {
	return s.Update(ctx, func(T) (T, bool) { return state, true })
}

// Update applies fn to the current state. When fn reports a change the new
// state is persisted, installed and broadcast; otherwise nothing happens. If
// persisting fails the previous state is kept and the error returned.
//
// fn must not modify slices or maps reachable from its argument in place.
func (s *Store[T]) Update(ctx context.Context, fn func(T) (T, bool)) error {
	s.mu.Lock()

	next, changed := fn(s.state)
	if !changed {
		s.mu.Unlock()
		return nil
	}

	data, err := json.Marshal(persisted[T]{State: next, Version: schemaVersion})
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to encode store %q: %w", s.name, err)
	}

	if err := s.backend.Save(ctx, s.name, data); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to persist store %q: %w", s.name, err)
	}

	s.state = next
	subscribers := slices.Clone(s.subscribers)
	s.mu.Unlock()

	for _, sub := range subscribers {
		sub.fn(next)
	}

	return nil
}

// Subscribe registers fn to be called after every persisted change. The
// returned function removes the subscription; calling it more than once is safe.
func (s *Store[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.subscribers = append(s.subscribers, subscriber[T]{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.subscribers = slices.DeleteFunc(s.subscribers, func(sub subscriber[T]) bool {
				return sub.id == id
			})
		})
	}
}
