package jobs

import (
	"context"
	"log/slog"

	"ewaste/internal/core/application/orchestrator"

	"github.com/robfig/cron/v3"
)

// DefaultAssignmentSchedule runs bulk assignment every five minutes.
const DefaultAssignmentSchedule = "0 */5 * * * *"

// BulkAssigner assigns every waiting pickup request it can.
type BulkAssigner interface {
	AssignAllUnassigned(ctx context.Context) (orchestrator.BulkResult, error)
}

// PickupAssignmentJob periodically retries assignment of the pickups that
// could not be assigned when they were created.
type PickupAssignmentJob struct {
	assigner BulkAssigner
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

// NewPickupAssignmentJob creates the job. schedule is a six-field cron
// expression (seconds first); empty means DefaultAssignmentSchedule.
func NewPickupAssignmentJob(assigner BulkAssigner, schedule string, logger *slog.Logger) *PickupAssignmentJob {
	if schedule == "" {
		schedule = DefaultAssignmentSchedule
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &PickupAssignmentJob{
		assigner: assigner,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "pickup_assignment_job"),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start registers the run and starts the scheduler.
func (j *PickupAssignmentJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(j.ctx, "Pickup assignment job started", "schedule", j.schedule)
	return nil
}

// Stop cancels a run in progress and waits for it to return.
func (j *PickupAssignmentJob) Stop() {
	j.cancel()
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Pickup assignment job stopped")
}

func (j *PickupAssignmentJob) run() {
	res, err := j.assigner.AssignAllUnassigned(j.ctx)
	if err != nil {
		if j.ctx.Err() == nil {
			j.logger.ErrorContext(j.ctx, "Pickup assignment job failed", "error", err)
		}
		return
	}
	if res.Total > 0 {
		j.logger.InfoContext(j.ctx, "Pickup assignment job run",
			"waiting", res.Total, "assigned", res.Assigned)
	}
}
