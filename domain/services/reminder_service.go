package services

import (
	"context"
	"time"
)

// DispatchResult counters of one reminder tick
type DispatchResult struct {
	Scanned int
	Fired   int
	Failed  int
}

type ReminderService interface {
	// DispatchDue fires every reminder whose fire time is <= now and has no delivery row yet
	DispatchDue(ctx context.Context, now time.Time) (*DispatchResult, error)
}
