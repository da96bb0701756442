package services

import (
	"context"
	"errors"
	"fmt"

	"ewaste/internal/core/domain/model/kernel"
	"ewaste/internal/core/domain/model/pickup"
	"ewaste/internal/core/domain/model/worker"
	"ewaste/internal/core/ports"
	"ewaste/internal/pkg/errs"
)

// DefaultMaxAssignmentsPerWorker is the capacity used when creating pickups.
const DefaultMaxAssignmentsPerWorker = 5

// ErrWorkerAtCapacity is returned when a capacity-checked assignment finds the
// chosen worker full at commit time.
var ErrWorkerAtCapacity = errors.New("worker is at capacity")

// TraceKind classifies a planning decision.
type TraceKind string

const (
	TraceMissingAddress    TraceKind = "missing_address"
	TraceNoCandidates      TraceKind = "no_candidates"
	TraceCapacityFiltered  TraceKind = "capacity_filtered"
	TraceCapacityFallback  TraceKind = "capacity_fallback"
	TraceTargetUnresolved  TraceKind = "target_unresolved"
	TraceCandidateExcluded TraceKind = "candidate_excluded"
	TraceSelected          TraceKind = "selected"
)

// TraceEvent records one decision taken by AssignmentPlanner.Plan.
// WorkerID is the zero UUID for events that concern no single worker.
type TraceEvent struct {
	Kind        TraceKind
	WorkerID    kernel.UUID
	Assignments int
	DistanceKm  float64
}

func (e TraceEvent) String() string {
	switch e.Kind {
	case TraceCapacityFiltered:
		return fmt.Sprintf("%s: worker %s has %d assignments", e.Kind, e.WorkerID, e.Assignments)
	case TraceCandidateExcluded:
		return fmt.Sprintf("%s: worker %s could not be geocoded", e.Kind, e.WorkerID)
	case TraceSelected:
		return fmt.Sprintf("%s: worker %s at %.3f km", e.Kind, e.WorkerID, e.DistanceKm)
	default:
		return string(e.Kind)
	}
}

// Plan is the read-only outcome of AssignmentPlanner.Plan.
type Plan struct {
	// Worker is the chosen assignee, nil when the pickup must wait.
	Worker     *worker.Worker
	DistanceKm float64
	// Fallback is true when every worker was at capacity and the whole pool was used.
	Fallback bool
	Trace    []TraceEvent
}

// Found reports whether a worker was chosen.
func (p Plan) Found() bool {
	return p.Worker != nil
}

// Has reports whether the trace contains an event of kind k.
func (p Plan) Has(k TraceKind) bool {
	for _, e := range p.Trace {
		if e.Kind == k {
			return true
		}
	}
	return false
}

// AssignmentPlanner chooses the nearest worker for a pickup request.
//
// Selection algorithm:
//   - A request without any address information is not planned
//   - Workers whose load is below the cap form the candidate set
//   - If nobody is below the cap, the whole pool is used instead (Fallback)
//   - The nearest resolvable candidate wins, earlier candidates win ties
//
// The planner never mutates the request or the workers; committing the choice
// is the caller's job.
type AssignmentPlanner struct {
	engine  *DistanceEngine
	counter ports.AssignmentCounter
}

func NewAssignmentPlanner(engine *DistanceEngine, counter ports.AssignmentCounter) *AssignmentPlanner {
	return &AssignmentPlanner{engine: engine, counter: counter}
}

// Plan picks an assignee for request out of pool. It returns an error only for
// invalid input or when assignment counts cannot be read; "nobody found" is a
// Plan without Worker.
func (p *AssignmentPlanner) Plan(
	ctx context.Context,
	request *pickup.Request,
	pool []*worker.Worker,
	maxAssignmentsPerWorker int,
) (Plan, error) {
	if err := request.Validate(); err != nil {
		return Plan{}, err
	}
	if maxAssignmentsPerWorker <= 0 {
		return Plan{}, errs.NewValueIsOutOfRangeError("max assignments per worker", maxAssignmentsPerWorker, 1, "unbounded")
	}

	var plan Plan
	if !request.HasAddress() {
		plan.Trace = append(plan.Trace, TraceEvent{Kind: TraceMissingAddress})
		return plan, nil
	}
	if len(pool) == 0 {
		plan.Trace = append(plan.Trace, TraceEvent{Kind: TraceNoCandidates})
		return plan, nil
	}

	ids := make([]kernel.UUID, 0, len(pool))
	for _, w := range pool {
		if err := w.Validate(); err != nil {
			return Plan{}, err
		}
		ids = append(ids, w.ID())
	}

	counts, err := p.counter.CountAssignments(ctx, ids)
	if err != nil {
		return Plan{}, fmt.Errorf("count assignments: %w", err)
	}

	candidates := make([]*worker.Worker, 0, len(pool))
	for _, w := range pool {
		n := counts[w.ID()]
		if n < maxAssignmentsPerWorker {
			candidates = append(candidates, w)
			continue
		}
		plan.Trace = append(plan.Trace, TraceEvent{Kind: TraceCapacityFiltered, WorkerID: w.ID(), Assignments: n})
	}

	if len(candidates) == 0 {
		plan.Fallback = true
		plan.Trace = append(plan.Trace, TraceEvent{Kind: TraceCapacityFallback})
		candidates = pool
	}

	nearest := p.engine.Nearest(ctx, request, candidates)
	if !nearest.TargetResolved {
		plan.Trace = append(plan.Trace, TraceEvent{Kind: TraceTargetUnresolved})
		return plan, nil
	}
	for _, w := range nearest.Excluded {
		plan.Trace = append(plan.Trace, TraceEvent{Kind: TraceCandidateExcluded, WorkerID: w.ID()})
	}
	if nearest.Nearest == nil {
		return plan, nil
	}

	plan.Worker = nearest.Nearest.Worker
	plan.DistanceKm = nearest.Nearest.DistanceKm
	plan.Trace = append(plan.Trace, TraceEvent{
		Kind:        TraceSelected,
		WorkerID:    plan.Worker.ID(),
		Assignments: counts[plan.Worker.ID()],
		DistanceKm:  plan.DistanceKm,
	})

	return plan, nil
}
