package repository

import (
	"context"
	"time"
)

// SessionRepository records checkout session ids so the sweeper can re-drive
// reconciliation. Correlation data stays on the gateway session itself.
type SessionRepository interface {
	Record(ctx context.Context, sessionID string) error
	MarkReconciled(ctx context.Context, sessionID string) error
	ListUnreconciled(ctx context.Context, olderThan time.Duration, limit int) ([]string, error)
}
