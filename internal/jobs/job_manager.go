package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	pickupAssignmentJob *PickupAssignmentJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(assigner BulkAssigner, assignmentSchedule string, logger *slog.Logger) *JobManager {
	return &JobManager{
		pickupAssignmentJob: NewPickupAssignmentJob(assigner, assignmentSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.pickupAssignmentJob.Start(); err != nil {
		return fmt.Errorf("failed to start pickup assignment job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.pickupAssignmentJob.Stop()
}
