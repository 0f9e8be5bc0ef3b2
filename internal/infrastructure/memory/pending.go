package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-otp-signup/internal/domain"
)

// PendingStore keeps pending registrations in process memory, one per email.
// Expired records stay put until a verification attempt or a fresh issuance
// replaces them, unless Sweep is run.
type PendingStore struct {
	mu      sync.RWMutex
	records map[string]domain.PendingRegistration
}

func NewPendingStore() *PendingStore {
	return &PendingStore{records: make(map[string]domain.PendingRegistration)}
}

func (s *PendingStore) Get(_ context.Context, email string) (*domain.PendingRegistration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.records[email]
	if !ok {
		return nil, fmt.Errorf("pending registration: %w", domain.ErrNotFound)
	}
	return &p, nil
}

func (s *PendingStore) Put(_ context.Context, p *domain.PendingRegistration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[p.Email()] = *p
	return nil
}

func (s *PendingStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, email)
	return nil
}

// Len returns the number of stored records, expired ones included.
func (s *PendingStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Sweep drops records that expired more than retention before now and
// returns how many were removed. A record whose OTP is still valid is never
// removed.
func (s *PendingStore) Sweep(now time.Time, retention time.Duration) int {
	if retention < 0 {
		retention = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for email, p := range s.records {
		if p.Expired(now) && now.Sub(p.ExpiresAt) > retention {
			delete(s.records, email)
			removed++
		}
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *PendingStore) RunSweeper(ctx context.Context, interval, retention time.Duration, now func() time.Time) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(now(), retention); n > 0 {
				slog.Debug("swept expired pending registrations", "count", n)
			}
		}
	}
}
