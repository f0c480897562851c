package worker

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	domainErrors "github.com/threadcart/garmentshop/internal/domain/errors"
	"github.com/threadcart/garmentshop/internal/usecase"
)

type sweeperFacadeStub struct {
	mu          sync.Mutex
	pending     []string
	reconciled  []string
	reconcileFn func(string) (*usecase.ReconciliationResult, error)
}

func (s *sweeperFacadeStub) UnreconciledSessions(ctx context.Context, olderThan time.Duration, limit int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.pending
	s.pending = nil
	return out, nil
}

func (s *sweeperFacadeStub) ReconcilePayment(ctx context.Context, sessionID string) (*usecase.ReconciliationResult, error) {
	s.mu.Lock()
	s.reconciled = append(s.reconciled, sessionID)
	s.mu.Unlock()
	if s.reconcileFn != nil {
		return s.reconcileFn(sessionID)
	}
	return &usecase.ReconciliationResult{OrderID: 1, Created: true}, nil
}

func (s *sweeperFacadeStub) reconciledSessions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.reconciled...)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestSessionSweeperReconcilesPendingSessions(t *testing.T) {
	facade := &sweeperFacadeStub{pending: []string{"cs_a", "cs_b"}}
	sweeper := NewSessionSweeper(facade, 10*time.Millisecond, time.Minute, 10, 2, testLogger())

	sweeper.Start(context.Background())
	defer sweeper.Stop()

	waitFor(t, time.Second, func() bool {
		return len(facade.reconciledSessions()) == 2
	})
}

func TestSessionSweeperTreatsReplayAsDone(t *testing.T) {
	facade := &sweeperFacadeStub{
		pending: []string{"cs_dup"},
		reconcileFn: func(string) (*usecase.ReconciliationResult, error) {
			return nil, domainErrors.ErrAlreadyExists
		},
	}
	sweeper := NewSessionSweeper(facade, 10*time.Millisecond, time.Minute, 10, 1, testLogger())

	sweeper.Start(context.Background())
	defer sweeper.Stop()

	waitFor(t, time.Second, func() bool {
		return len(facade.reconciledSessions()) == 1
	})
}

func TestSessionSweeperStopIsIdempotent(t *testing.T) {
	facade := &sweeperFacadeStub{}
	sweeper := NewSessionSweeper(facade, 10*time.Millisecond, time.Minute, 1, 1, testLogger())

	sweeper.Start(context.Background())
	sweeper.Stop()
	sweeper.Stop()
}

func TestNewSessionSweeperDefaults(t *testing.T) {
	sweeper := NewSessionSweeper(&sweeperFacadeStub{}, time.Second, time.Minute, 0, 0, testLogger())
	if sweeper.workers != 1 || sweeper.batchSize != 1 {
		t.Fatalf("expected defaults of 1, got workers=%d batch=%d", sweeper.workers, sweeper.batchSize)
	}
}
