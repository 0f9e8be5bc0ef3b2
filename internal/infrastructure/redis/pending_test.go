package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-otp-signup/internal/config"
	"github.com/go-otp-signup/internal/domain"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)

func newStore(t *testing.T) (*PendingStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewPendingStore(client, time.Hour, func() time.Time { return t0 }), mr
}

func record(code string) *domain.PendingRegistration {
	return domain.NewPendingRegistration(domain.Profile{
		Role: domain.RoleShopkeeper, Name: "Ravi", Email: "r@x.com", Phone: "555", Password: "pw",
	}, code, t0)
}

func TestPutGet_RoundTripsProfile(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)
	require.NoError(t, s.Put(ctx, record("012345")))

	got, err := s.Get(ctx, "r@x.com")
	require.NoError(t, err)
	assert.Equal(t, "012345", got.OTP)
	assert.Equal(t, domain.RoleShopkeeper, got.Profile.Role)
	assert.True(t, got.ExpiresAt.Equal(t0.Add(domain.OTPValidity)))
}

func TestPut_SetsTTLPastExpiry(t *testing.T) {
	s, mr := newStore(t)
	require.NoError(t, s.Put(context.Background(), record("012345")))
	assert.Equal(t, domain.OTPValidity+time.Hour, mr.TTL(keyPrefix+"r@x.com"))
}

func TestPut_Overwrites(t *testing.T) {
	ctx := context.Background()
	s, mr := newStore(t)
	require.NoError(t, s.Put(ctx, record("111111")))
	require.NoError(t, s.Put(ctx, record("222222")))

	got, err := s.Get(ctx, "r@x.com")
	require.NoError(t, err)
	assert.Equal(t, "222222", got.OTP)
	assert.Len(t, mr.Keys(), 1)
}

func TestGet_MissingAfterTTL(t *testing.T) {
	ctx := context.Background()
	s, mr := newStore(t)
	require.NoError(t, s.Put(ctx, record("111111")))

	mr.FastForward(domain.OTPValidity + time.Hour + time.Second)

	_, err := s.Get(ctx, "r@x.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)
	require.NoError(t, s.Put(ctx, record("111111")))
	require.NoError(t, s.Delete(ctx, "r@x.com"))

	_, err := s.Get(ctx, "r@x.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGet_ServerDown(t *testing.T) {
	s, mr := newStore(t)
	mr.Close()
	_, err := s.Get(context.Background(), "r@x.com")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func newStoreWithRetention(t *testing.T, retention time.Duration, now func() time.Time) (*PendingStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewPendingStore(client, retention, now), mr
}

func TestPut_NonPositiveRetentionKeepsExpiredRecord(t *testing.T) {
	for name, retention := range map[string]time.Duration{"zero": 0, "negative": -10 * time.Minute} {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s, mr := newStoreWithRetention(t, retention, func() time.Time { return t0 })
			require.NoError(t, s.Put(ctx, record("012345")))
			assert.Equal(t, domain.OTPValidity+config.DefaultPendingRetention, mr.TTL(keyPrefix+"r@x.com"))

			// Still live two seconds in.
			mr.FastForward(2 * time.Second)
			got, err := s.Get(ctx, "r@x.com")
			require.NoError(t, err)
			assert.Equal(t, "012345", got.OTP)

			// Past the window the record is still there to be reported as expired.
			mr.FastForward(domain.OTPValidity)
			got, err = s.Get(ctx, "r@x.com")
			require.NoError(t, err)
			assert.True(t, got.Expired(t0.Add(domain.OTPValidity+2*time.Second)))
		})
	}
}

func TestPut_AlreadyExpiredRecordLivesForRetention(t *testing.T) {
	late := func() time.Time { return t0.Add(domain.OTPValidity + time.Minute) }
	s, mr := newStoreWithRetention(t, time.Hour, late)
	require.NoError(t, s.Put(context.Background(), record("012345")))
	assert.Equal(t, time.Hour, mr.TTL(keyPrefix+"r@x.com"))
}
