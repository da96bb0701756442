package ports

import (
	"context"

	"ewaste/internal/core/domain/model/pickup"
)

// EventPublisher delivers committed pickup transitions to other services.
// It is called only after the transaction holding the logs has committed.
type EventPublisher interface {
	PublishLogs(ctx context.Context, logs []*pickup.Log) error
}
