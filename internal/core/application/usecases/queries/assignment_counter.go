package queries

import (
	"context"

	"ewaste/internal/core/domain/model/kernel"
	"ewaste/internal/core/domain/model/pickup"
	"ewaste/internal/core/ports"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// terminalStatuses are left out of the open assignment scope.
var terminalStatuses = []string{pickup.Completed.String(), pickup.Cancelled.String()}

// AssignmentCounter counts pickup requests per assigned worker in one query.
// It is the load source for the assignment planner.
type AssignmentCounter struct {
	db    *gorm.DB
	scope ports.AssignmentScope
}

func NewAssignmentCounter(db *gorm.DB, scope ports.AssignmentScope) AssignmentCounter {
	return AssignmentCounter{db: db, scope: scope}
}

// Scope reports which requests the counter includes.
func (c AssignmentCounter) Scope() ports.AssignmentScope {
	return c.scope
}

// CountAssignments returns the number of requests bound to each of workerIDs.
// Workers without requests are absent from the map.
func (c AssignmentCounter) CountAssignments(
	ctx context.Context,
	workerIDs []kernel.UUID,
) (map[kernel.UUID]int, error) {
	counts := make(map[kernel.UUID]int, len(workerIDs))
	if len(workerIDs) == 0 {
		return counts, nil
	}

	ids := make([]string, 0, len(workerIDs))
	for _, id := range workerIDs {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		ids = append(ids, id.String())
	}

	sql := `
		SELECT
			assigned_worker_id,
			COUNT(*)
		FROM pickup_requests
		WHERE assigned_worker_id = ANY(?::uuid[])`
	args := []any{pq.Array(ids)}
	if c.scope == ports.OpenAssignments {
		sql += ` AND status <> ALL(?::text[])`
		args = append(args, pq.Array(terminalStatuses))
	}
	sql += ` GROUP BY assigned_worker_id`

	rows, err := c.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var n int

		if err = rows.Scan(&id, &n); err != nil {
			return nil, err
		}

		workerID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		counts[workerID] = n
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}

func workerExists(ctx context.Context, db *gorm.DB, id kernel.UUID) (bool, error) {
	var exists bool
	err := db.WithContext(ctx).
		Raw(`SELECT EXISTS (SELECT 1 FROM workers WHERE id = ?)`, id.Bytes()).
		Scan(&exists).Error
	return exists, err
}
