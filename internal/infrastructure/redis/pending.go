package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-otp-signup/internal/config"
	"github.com/go-otp-signup/internal/domain"
	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "pending_registration:"

// NewClient builds a go-redis client from configuration.
func NewClient(cfg *config.Config) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

// PendingStore keeps pending registrations in Redis so several API instances
// can share them. Keys outlive the OTP by retention, which lets an expired
// code still be reported as expired rather than missing.
type PendingStore struct {
	client    goredis.UniversalClient
	retention time.Duration
	now       func() time.Time
}

// NewPendingStore falls back to config.DefaultPendingRetention when
// retention is not positive.
func NewPendingStore(client goredis.UniversalClient, retention time.Duration, now func() time.Time) *PendingStore {
	if retention <= 0 {
		retention = config.DefaultPendingRetention
	}
	return &PendingStore{client: client, retention: retention, now: now}
}

func key(email string) string { return keyPrefix + email }

func (s *PendingStore) Get(ctx context.Context, email string) (*domain.PendingRegistration, error) {
	b, err := s.client.Get(ctx, key(email)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, fmt.Errorf("pending registration: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	var p domain.PendingRegistration
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("decode pending registration: %w", err)
	}
	return &p, nil
}

func (s *PendingStore) Put(ctx context.Context, p *domain.PendingRegistration) error {
	b, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode pending registration: %w", err)
	}
	remaining := p.ExpiresAt.Sub(s.now())
	if remaining < 0 {
		remaining = 0
	}
	ttl := remaining + s.retention
	if err := s.client.Set(ctx, key(p.Email()), b, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *PendingStore) Delete(ctx context.Context, email string) error {
	if err := s.client.Del(ctx, key(email)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
