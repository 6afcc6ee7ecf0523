package eventlog

import (
	"context"
	"fmt"
)

// Pruner returns the scheduled pass that drops journal entries older than
// retentionDays. A non-positive retention disables pruning.
func Pruner(service Service, retentionDays int) func(context.Context) (int, error) {
	return func(ctx context.Context) (int, error) {
		if retentionDays <= 0 {
			return 0, nil
		}
		n, err := service.CleanupOldEvents(ctx, retentionDays)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", LogMsgCleanupJobFailed, err)
		}
		return int(n), nil
	}
}
