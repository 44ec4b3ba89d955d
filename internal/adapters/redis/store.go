// Package redis persists transition-rate baselines to Redis, for teams
// sharing one baseline across CI runs.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/mberan/tfm/pkg/domain"
)

// Store implements ports.BaselineStore using Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for stored baselines.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for baselines.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "tfm:baseline:",
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) key(name string) string {
	return s.prefix + name
}

// Save persists the rates to Redis.
func (s *Store) Save(ctx context.Context, name string, rates domain.Rates) error {
	if name == "" {
		return fmt.Errorf("baseline name cannot be empty")
	}

	data, err := json.Marshal(rates)
	if err != nil {
		return fmt.Errorf("failed to marshal rates: %w", err)
	}

	if err := s.client.Set(ctx, s.key(name), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save baseline: %w", err)
	}
	return nil
}

// Load retrieves the rates from Redis.
func (s *Store) Load(ctx context.Context, name string) (domain.Rates, error) {
	if name == "" {
		return nil, fmt.Errorf("baseline name cannot be empty")
	}

	data, err := s.client.Get(ctx, s.key(name)).Bytes()
	if err != nil {
		if err == backend.Nil {
			return nil, domain.ErrBaselineNotFound
		}
		return nil, fmt.Errorf("failed to load baseline: %w", err)
	}

	var rates domain.Rates
	if err := json.Unmarshal(data, &rates); err != nil {
		return nil, fmt.Errorf("failed to unmarshal baseline: %w", err)
	}
	return rates, nil
}

// Delete removes the baseline key.
func (s *Store) Delete(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("baseline name cannot be empty")
	}

	if err := s.client.Del(ctx, s.key(name)).Err(); err != nil {
		return fmt.Errorf("failed to delete baseline: %w", err)
	}
	return nil
}
