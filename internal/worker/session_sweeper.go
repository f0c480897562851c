package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/threadcart/garmentshop/internal/adapter/payment"
	domainErrors "github.com/threadcart/garmentshop/internal/domain/errors"
	"github.com/threadcart/garmentshop/internal/metrics"
	"github.com/threadcart/garmentshop/internal/usecase"
)

// CheckoutFacade exposes the subset of application functionality required
// by the sweeper.
type CheckoutFacade interface {
	UnreconciledSessions(ctx context.Context, olderThan time.Duration, limit int) ([]string, error)
	ReconcilePayment(ctx context.Context, sessionID string) (*usecase.ReconciliationResult, error)
}

// SessionSweeper periodically re-drives reconciliation for checkout sessions
// whose success redirect never arrived. Reconciliation is idempotent, so a
// session racing with the redirect handler resolves to one order either way.
type SessionSweeper struct {
	facade       CheckoutFacade
	pollInterval time.Duration
	minAge       time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan string
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewSessionSweeper constructs the sweeper worker pool.
func NewSessionSweeper(facade CheckoutFacade, pollInterval, minAge time.Duration, batchSize, workers int, logger *slog.Logger) *SessionSweeper {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &SessionSweeper{
		facade:       facade,
		pollInterval: pollInterval,
		minAge:       minAge,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan string, batchSize*workers),
	}
}

// Start launches background sweeping.
func (s *SessionSweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.worker(runCtx)
	}

	s.wg.Add(1)
	go s.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (s *SessionSweeper) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *SessionSweeper) dispatch(ctx context.Context) {
	defer s.wg.Done()
	defer close(s.jobs)
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.fetchAndDispatch(ctx)
		}
	}
}

func (s *SessionSweeper) fetchAndDispatch(ctx context.Context) {
	sessions, err := s.facade.UnreconciledSessions(ctx, s.minAge, s.batchSize)
	if err != nil {
		s.logger.Error("fetch unreconciled sessions failed", slog.String("error", err.Error()))
		return
	}
	if len(sessions) > 0 {
		metrics.SessionSweepsTotal.Inc()
	}
	for _, sessionID := range sessions {
		select {
		case <-ctx.Done():
			return
		case s.jobs <- sessionID:
		}
	}
}

func (s *SessionSweeper) worker(ctx context.Context) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case sessionID, ok := <-s.jobs:
			if !ok {
				return
			}
			s.handleSession(ctx, sessionID)
		}
	}
}

func (s *SessionSweeper) handleSession(ctx context.Context, sessionID string) {
	result, err := s.facade.ReconcilePayment(ctx, sessionID)
	if err != nil {
		var rateLimited payment.TooManyRequestsError
		switch {
		case errors.As(err, &rateLimited):
			s.logger.Warn("gateway rate limited", slog.Duration("retry_after", rateLimited.RetryAfter))
			time.Sleep(rateLimited.RetryAfter)
		case errors.Is(err, domainErrors.ErrAlreadyExists):
			// The redirect handler got there first.
		case errors.Is(err, domainErrors.ErrPaymentIncomplete):
			// Buyer has not paid yet; the next sweep will retry.
		default:
			s.logger.Error("session reconcile failed",
				slog.String("session_id", sessionID),
				slog.String("error", err.Error()),
			)
		}
		return
	}

	s.logger.Info("session reconciled by sweeper",
		slog.String("session_id", sessionID),
		slog.Int64("order_id", result.OrderID),
	)
}
