// Package orchestrator is the entry point for pickup assignment. It runs
// automatic assignment when a pickup is created and in bulk, and fronts the
// lifecycle commands and the load queries for inbound adapters and jobs.
package orchestrator

import (
	"context"
	"errors"
	"log/slog"

	"ewaste/internal/core/application/usecases/commands"
	"ewaste/internal/core/application/usecases/queries"
	"ewaste/internal/core/domain/model/kernel"
	"ewaste/internal/core/domain/model/pickup"
	"ewaste/internal/core/domain/model/worker"
	"ewaste/internal/core/domain/services"
)

// DefaultAutoAssignAttempts bounds how often one request is re-planned after
// its chosen worker filled up or went off duty before commit.
const DefaultAutoAssignAttempts = 3

type CreatePickupHandler interface {
	Handle(ctx context.Context, cmd commands.CreatePickupCommand) (*pickup.Request, error)
}

type RegisterWorkerHandler interface {
	Handle(ctx context.Context, cmd commands.RegisterWorkerCommand) (*worker.Worker, error)
}

type AssignWorkerHandler interface {
	Handle(ctx context.Context, cmd commands.AssignWorkerCommand) (*pickup.Request, error)
}

type AutoAssignHandler interface {
	Handle(ctx context.Context, cmd commands.AutoAssignCommand) (commands.AutoAssignResult, error)
}

type UpdateStatusHandler interface {
	Handle(ctx context.Context, cmd commands.UpdateStatusCommand) (*pickup.Request, error)
}

type MarkReachedHandler interface {
	Handle(ctx context.Context, cmd commands.MarkReachedCommand) (*pickup.Request, error)
}

type RescheduleHandler interface {
	Handle(ctx context.Context, cmd commands.RescheduleCommand) (*pickup.Request, error)
}

type UnassignedPickupsHandler interface {
	Handle(ctx context.Context, query queries.GetUnassignedPickupsQuery) ([]queries.PickupView, error)
}

type NearbyWorkersHandler interface {
	Handle(ctx context.Context, query queries.GetNearbyWorkersQuery) ([]queries.GetNearbyWorkersQueryResponse, error)
}

type AssignmentCountHandler interface {
	Handle(ctx context.Context, query queries.GetAssignmentCountQuery) (queries.GetAssignmentCountQueryResponse, error)
}

type WorkerAvailabilityHandler interface {
	Handle(ctx context.Context, query queries.GetWorkerAvailabilityQuery) (queries.GetWorkerAvailabilityQueryResponse, error)
}

// Handlers groups the use cases the orchestrator drives.
type Handlers struct {
	CreatePickup       CreatePickupHandler
	RegisterWorker     RegisterWorkerHandler
	AssignWorker       AssignWorkerHandler
	AutoAssign         AutoAssignHandler
	UpdateStatus       UpdateStatusHandler
	MarkReached        MarkReachedHandler
	Reschedule         RescheduleHandler
	UnassignedPickups  UnassignedPickupsHandler
	NearbyWorkers      NearbyWorkersHandler
	AssignmentCount    AssignmentCountHandler
	WorkerAvailability WorkerAvailabilityHandler
}

// Config tunes automatic assignment. Zero fields take the package defaults.
type Config struct {
	MaxAssignmentsPerWorker int
	AutoAssignAttempts      int
}

// BulkResult summarises one AssignAllUnassigned run.
type BulkResult struct {
	Total    int
	Assigned int
}

// Orchestrator composes planning and the lifecycle commands.
//
// Automatic assignment is best effort: creating a pickup never fails because
// no worker could be assigned, and a failure on one request never stops a
// bulk run. Such requests stay waiting for the next run.
type Orchestrator struct {
	h      Handlers
	cfg    Config
	logger *slog.Logger
}

func New(h Handlers, cfg Config, logger *slog.Logger) *Orchestrator {
	if cfg.MaxAssignmentsPerWorker <= 0 {
		cfg.MaxAssignmentsPerWorker = services.DefaultMaxAssignmentsPerWorker
	}
	if cfg.AutoAssignAttempts <= 0 {
		cfg.AutoAssignAttempts = DefaultAutoAssignAttempts
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Orchestrator{
		h:      h,
		cfg:    cfg,
		logger: logger.With("component", "assignment_orchestrator"),
	}
}

// MaxAssignmentsPerWorker is the capacity used for automatic assignment.
func (o *Orchestrator) MaxAssignmentsPerWorker() int {
	return o.cfg.MaxAssignmentsPerWorker
}

// OnCreate stores a new pickup request and tries to assign it right away.
// The returned request is the stored state: either assigned, or still
// waiting when no worker could be committed.
func (o *Orchestrator) OnCreate(ctx context.Context, details pickup.Details) (*pickup.Request, error) {
	cmd, err := commands.NewCreatePickupCommand(kernel.NewUUID(), details)
	if err != nil {
		return nil, err
	}

	request, err := o.h.CreatePickup.Handle(ctx, cmd)
	if err != nil {
		return nil, err
	}

	res, err := o.AutoAssign(ctx, request.ID())
	if err != nil {
		o.logger.WarnContext(ctx, "automatic assignment deferred",
			"request_id", request.ID(), "error", err)
		return request, nil
	}
	if !res.Assigned() {
		o.logger.InfoContext(ctx, "no worker found, pickup left waiting", "request_id", request.ID())
		return request, nil
	}

	return res.Request, nil
}

// AutoAssign plans and commits an assignment for one waiting request.
//
// If the planned worker reached the cap or went off duty between planning and
// commit, the request is planned again without that worker, up to the
// configured number of attempts.
func (o *Orchestrator) AutoAssign(ctx context.Context, requestID kernel.UUID) (commands.AutoAssignResult, error) {
	var excluded []kernel.UUID

	for attempt := 1; ; attempt++ {
		cmd, err := commands.NewAutoAssignCommand(requestID, o.cfg.MaxAssignmentsPerWorker, excluded...)
		if err != nil {
			return commands.AutoAssignResult{}, err
		}

		res, err := o.h.AutoAssign.Handle(ctx, cmd)
		o.logTrace(ctx, requestID, res.Plan)
		if err == nil {
			if res.Assigned() {
				o.logger.InfoContext(ctx, "pickup assigned",
					"request_id", requestID,
					"worker_id", res.Plan.Worker.ID(),
					"distance_km", res.Plan.DistanceKm,
					"fallback", res.Plan.Fallback)
			}
			return res, nil
		}

		lostRace := errors.Is(err, services.ErrWorkerAtCapacity) || errors.Is(err, commands.ErrWorkerUnavailable)
		if !lostRace || res.Plan.Worker == nil || attempt >= o.cfg.AutoAssignAttempts {
			return res, err
		}

		o.logger.InfoContext(ctx, "planned worker lost before commit, planning again",
			"request_id", requestID,
			"worker_id", res.Plan.Worker.ID(),
			"attempt", attempt,
			"error", err)
		excluded = append(excluded, res.Plan.Worker.ID())
	}
}

// AssignAllUnassigned runs automatic assignment for every waiting request in
// turn and reports how many were assigned.
func (o *Orchestrator) AssignAllUnassigned(ctx context.Context) (BulkResult, error) {
	waiting, err := o.h.UnassignedPickups.Handle(ctx, queries.NewGetUnassignedPickupsQuery())
	if err != nil {
		return BulkResult{}, err
	}

	result := BulkResult{Total: len(waiting)}
	for _, p := range waiting {
		if err = ctx.Err(); err != nil {
			return result, err
		}

		res, assignErr := o.AutoAssign(ctx, p.ID)
		if assignErr != nil {
			o.logger.WarnContext(ctx, "bulk assignment skipped request",
				"request_id", p.ID, "error", assignErr)
			continue
		}
		if res.Assigned() {
			result.Assigned++
		}
	}

	o.logger.InfoContext(ctx, "bulk assignment finished",
		"total", result.Total, "assigned", result.Assigned)
	return result, nil
}

// Assign binds a specific worker to a request without capacity checks.
func (o *Orchestrator) Assign(ctx context.Context, requestID, workerID kernel.UUID) (*pickup.Request, error) {
	cmd, err := commands.NewAssignWorkerCommand(requestID, workerID)
	if err != nil {
		return nil, err
	}
	return o.h.AssignWorker.Handle(ctx, cmd)
}

func (o *Orchestrator) UpdateStatus(ctx context.Context, requestID kernel.UUID, update pickup.StatusUpdate) (*pickup.Request, error) {
	cmd, err := commands.NewUpdateStatusCommand(requestID, update)
	if err != nil {
		return nil, err
	}
	return o.h.UpdateStatus.Handle(ctx, cmd)
}

func (o *Orchestrator) MarkReached(ctx context.Context, requestID, workerID kernel.UUID) (*pickup.Request, error) {
	cmd, err := commands.NewMarkReachedCommand(requestID, workerID)
	if err != nil {
		return nil, err
	}
	return o.h.MarkReached.Handle(ctx, cmd)
}

func (o *Orchestrator) Reschedule(
	ctx context.Context,
	requestID, workerID kernel.UUID,
	newDate, reason string,
) (*pickup.Request, error) {
	cmd, err := commands.NewRescheduleCommand(requestID, workerID, newDate, reason)
	if err != nil {
		return nil, err
	}
	return o.h.Reschedule.Handle(ctx, cmd)
}

// RegisterWorker adds a worker to the pool.
func (o *Orchestrator) RegisterWorker(
	ctx context.Context,
	profile worker.Profile,
	address kernel.Address,
	location *kernel.GeoPoint,
	available bool,
) (*worker.Worker, error) {
	cmd, err := commands.NewRegisterWorkerCommand(kernel.NewUUID(), profile, address, location, available)
	if err != nil {
		return nil, err
	}
	return o.h.RegisterWorker.Handle(ctx, cmd)
}

// NearbyWorkers lists workers within radiusKm of pincode, whatever their
// availability.
func (o *Orchestrator) NearbyWorkers(
	ctx context.Context,
	pincode string,
	radiusKm float64,
) ([]queries.GetNearbyWorkersQueryResponse, error) {
	query, err := queries.NewGetNearbyWorkersQuery(pincode, radiusKm)
	if err != nil {
		return nil, err
	}
	return o.h.NearbyWorkers.Handle(ctx, query)
}

func (o *Orchestrator) AssignmentCount(ctx context.Context, workerID kernel.UUID) (int, error) {
	query, err := queries.NewGetAssignmentCountQuery(workerID)
	if err != nil {
		return 0, err
	}
	resp, err := o.h.AssignmentCount.Handle(ctx, query)
	if err != nil {
		return 0, err
	}
	return resp.Count, nil
}

// IsAvailable reports whether the worker holds fewer than maxAssignments requests.
func (o *Orchestrator) IsAvailable(ctx context.Context, workerID kernel.UUID, maxAssignments int) (bool, error) {
	resp, err := o.WorkerLoad(ctx, workerID, maxAssignments)
	if err != nil {
		return false, err
	}
	return resp.Available, nil
}

// WorkerLoad returns the worker's assignment count measured against maxAssignments.
func (o *Orchestrator) WorkerLoad(
	ctx context.Context,
	workerID kernel.UUID,
	maxAssignments int,
) (queries.GetWorkerAvailabilityQueryResponse, error) {
	query, err := queries.NewGetWorkerAvailabilityQuery(workerID, maxAssignments)
	if err != nil {
		return queries.GetWorkerAvailabilityQueryResponse{}, err
	}
	return o.h.WorkerAvailability.Handle(ctx, query)
}

func (o *Orchestrator) logTrace(ctx context.Context, requestID kernel.UUID, plan services.Plan) {
	for _, e := range plan.Trace {
		o.logger.DebugContext(ctx, "assignment trace",
			"request_id", requestID, "event", e.Kind, "detail", e.String())
	}
}
