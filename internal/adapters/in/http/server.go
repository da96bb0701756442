package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"ewaste/internal/core/application/orchestrator"
	"ewaste/internal/core/application/usecases/commands"
	"ewaste/internal/core/application/usecases/queries"
	"ewaste/internal/core/domain/model/kernel"
	"ewaste/internal/core/domain/model/pickup"
	"ewaste/internal/core/domain/model/worker"
	"ewaste/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// PickupService is the assignment and lifecycle entry point the server drives.
type PickupService interface {
	OnCreate(ctx context.Context, details pickup.Details) (*pickup.Request, error)
	Assign(ctx context.Context, requestID, workerID kernel.UUID) (*pickup.Request, error)
	AutoAssign(ctx context.Context, requestID kernel.UUID) (commands.AutoAssignResult, error)
	UpdateStatus(ctx context.Context, requestID kernel.UUID, update pickup.StatusUpdate) (*pickup.Request, error)
	MarkReached(ctx context.Context, requestID, workerID kernel.UUID) (*pickup.Request, error)
	Reschedule(ctx context.Context, requestID, workerID kernel.UUID, newDate, reason string) (*pickup.Request, error)
	AssignAllUnassigned(ctx context.Context) (orchestrator.BulkResult, error)
	RegisterWorker(
		ctx context.Context,
		profile worker.Profile,
		address kernel.Address,
		location *kernel.GeoPoint,
		available bool,
	) (*worker.Worker, error)
	NearbyWorkers(ctx context.Context, pincode string, radiusKm float64) ([]queries.GetNearbyWorkersQueryResponse, error)
	WorkerLoad(ctx context.Context, workerID kernel.UUID, maxAssignments int) (queries.GetWorkerAvailabilityQueryResponse, error)
	MaxAssignmentsPerWorker() int
}

type UnassignedPickupsHandler interface {
	Handle(ctx context.Context, query queries.GetUnassignedPickupsQuery) ([]queries.PickupView, error)
}

type WorkerPickupsHandler interface {
	Handle(ctx context.Context, query queries.GetWorkerPickupsQuery) ([]queries.PickupView, error)
}

type PickupHistoryHandler interface {
	Handle(ctx context.Context, query queries.GetPickupHistoryQuery) ([]queries.LogView, error)
}

// Server exposes the pickup service over JSON.
type Server struct {
	service PickupService

	// Query handlers
	unassignedPickupsHandler UnassignedPickupsHandler
	workerPickupsHandler     WorkerPickupsHandler
	pickupHistoryHandler     PickupHistoryHandler

	nearbyRadiusKm float64
	now            func() time.Time
}

// NewServer creates a server. nearbyRadiusKm is used when a nearby worker
// search gives no radius.
func NewServer(
	service PickupService,
	unassignedPickupsHandler UnassignedPickupsHandler,
	workerPickupsHandler WorkerPickupsHandler,
	pickupHistoryHandler PickupHistoryHandler,
	nearbyRadiusKm float64,
) *Server {
	if nearbyRadiusKm <= 0 {
		nearbyRadiusKm = queries.DefaultNearbyRadiusKm
	}
	return &Server{
		service:                  service,
		unassignedPickupsHandler: unassignedPickupsHandler,
		workerPickupsHandler:     workerPickupsHandler,
		pickupHistoryHandler:     pickupHistoryHandler,
		nearbyRadiusKm:           nearbyRadiusKm,
		now:                      time.Now,
	}
}

// Register mounts the API under /api/v1.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	v1 := e.Group("/api/v1")

	v1.POST("/pickups", s.CreatePickup)
	v1.GET("/pickups/unassigned", s.GetUnassignedPickups)
	v1.POST("/pickups/:id/assign", s.AssignPickup)
	v1.POST("/pickups/:id/auto-assign", s.AutoAssignPickup)
	v1.PUT("/pickups/:id/status", s.UpdatePickupStatus)
	v1.PUT("/pickups/:id/reached", s.MarkPickupReached)
	v1.POST("/pickups/:id/reschedule", s.ReschedulePickup)
	v1.GET("/pickups/:id/history", s.GetPickupHistory)

	v1.POST("/assignments/assign-all", s.AssignAll)
	v1.GET("/assignments/nearby-workers", s.GetNearbyWorkers)

	v1.POST("/workers", s.RegisterWorker)
	v1.GET("/workers/:id/assignments", s.GetWorkerAssignments)
	v1.GET("/workers/:id/pickups", s.GetWorkerPickups)
	v1.GET("/workers/:id/logs", s.GetWorkerLogs)
}

// CreatePickup handles POST /api/v1/pickups. The pickup is stored even when
// no worker can be assigned yet.
func (s *Server) CreatePickup(c echo.Context) error {
	var body NewPickup
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	details, err := body.toDetails()
	if err != nil {
		return writeError(c, err)
	}

	request, err := s.service.OnCreate(c.Request().Context(), details)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, pickupFrom(request))
}

// GetUnassignedPickups handles GET /api/v1/pickups/unassigned.
func (s *Server) GetUnassignedPickups(c echo.Context) error {
	views, err := s.unassignedPickupsHandler.Handle(c.Request().Context(), queries.NewGetUnassignedPickupsQuery())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, pickupsFromViews(views))
}

// AssignPickup handles POST /api/v1/pickups/:id/assign, a manual override
// that ignores capacity.
func (s *Server) AssignPickup(c echo.Context) error {
	requestID, workerID, err := s.requestAndWorker(c)
	if err != nil {
		return writeError(c, err)
	}

	request, err := s.service.Assign(c.Request().Context(), requestID, workerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, pickupFrom(request))
}

// AutoAssignPickup handles POST /api/v1/pickups/:id/auto-assign.
func (s *Server) AutoAssignPickup(c echo.Context) error {
	requestID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	res, err := s.service.AutoAssign(c.Request().Context(), requestID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, autoAssignmentFrom(res))
}

// UpdatePickupStatus handles PUT /api/v1/pickups/:id/status.
func (s *Server) UpdatePickupStatus(c echo.Context) error {
	requestID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	var body StatusReport
	if err = c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	workerID, err := kernel.UUIDFromString(body.WorkerID)
	if err != nil {
		return writeError(c, err)
	}

	request, err := s.service.UpdateStatus(c.Request().Context(), requestID, pickup.StatusUpdate{
		WorkerID:    workerID,
		Status:      pickup.Status(body.Status),
		CollectedKg: body.CollectedKg,
		Notes:       body.Notes,
		Items: pickup.Items{
			Brand:          body.Brand,
			Details:        body.ItemDetails,
			EstimatedValue: body.EstimatedValue,
		},
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, pickupFrom(request))
}

// MarkPickupReached handles PUT /api/v1/pickups/:id/reached.
func (s *Server) MarkPickupReached(c echo.Context) error {
	requestID, workerID, err := s.requestAndWorker(c)
	if err != nil {
		return writeError(c, err)
	}

	request, err := s.service.MarkReached(c.Request().Context(), requestID, workerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, pickupFrom(request))
}

// ReschedulePickup handles POST /api/v1/pickups/:id/reschedule.
func (s *Server) ReschedulePickup(c echo.Context) error {
	requestID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	var body RescheduleRequest
	if err = c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	workerID, err := kernel.UUIDFromString(body.WorkerID)
	if err != nil {
		return writeError(c, err)
	}

	request, err := s.service.Reschedule(c.Request().Context(), requestID, workerID, body.NewDate, body.Reason)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, pickupFrom(request))
}

// GetPickupHistory handles GET /api/v1/pickups/:id/history.
func (s *Server) GetPickupHistory(c echo.Context) error {
	requestID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	query, err := queries.NewGetPickupHistoryQuery(requestID)
	if err != nil {
		return writeError(c, err)
	}
	return s.writeHistory(c, query)
}

// AssignAll handles POST /api/v1/assignments/assign-all.
func (s *Server) AssignAll(c echo.Context) error {
	res, err := s.service.AssignAllUnassigned(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, bulkAssignmentFrom(res))
}

// GetNearbyWorkers handles GET /api/v1/assignments/nearby-workers?pincode=&radius_km=.
func (s *Server) GetNearbyWorkers(c echo.Context) error {
	radius := s.nearbyRadiusKm
	if raw := c.QueryParam("radius_km"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return badRequest(c, "radius_km must be a number")
		}
		radius = parsed
	}

	found, err := s.service.NearbyWorkers(c.Request().Context(), c.QueryParam("pincode"), radius)
	if err != nil {
		return writeError(c, err)
	}

	response := make([]Worker, 0, len(found))
	for _, w := range found {
		response = append(response, nearbyWorkerFrom(w))
	}
	return c.JSON(http.StatusOK, response)
}

// RegisterWorker handles POST /api/v1/workers. Workers are available unless
// the body says otherwise.
func (s *Server) RegisterWorker(c echo.Context) error {
	var body NewWorker
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	location, err := geoPoint(body.Latitude, body.Longitude)
	if err != nil {
		return writeError(c, err)
	}
	available := body.Available == nil || *body.Available

	w, err := s.service.RegisterWorker(c.Request().Context(),
		worker.Profile{Username: body.Username, FullName: body.FullName, Phone: body.Phone, Email: body.Email},
		body.Address.toDomain(), location, available)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, workerFrom(w))
}

// GetWorkerAssignments handles GET /api/v1/workers/:id/assignments?max=.
func (s *Server) GetWorkerAssignments(c echo.Context) error {
	workerID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	maxAssignments := s.service.MaxAssignmentsPerWorker()
	if raw := c.QueryParam("max"); raw != "" {
		if maxAssignments, err = strconv.Atoi(raw); err != nil {
			return badRequest(c, "max must be an integer")
		}
	}

	load, err := s.service.WorkerLoad(c.Request().Context(), workerID, maxAssignments)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, workerLoadFrom(load))
}

// GetWorkerPickups handles GET /api/v1/workers/:id/pickups?scope=all|today|missed.
func (s *Server) GetWorkerPickups(c echo.Context) error {
	workerID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	scope, err := queries.ParsePickupScope(c.QueryParam("scope"))
	if err != nil {
		return writeError(c, err)
	}
	query, err := queries.NewGetWorkerPickupsQuery(workerID, scope, s.now())
	if err != nil {
		return writeError(c, err)
	}

	views, err := s.workerPickupsHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, pickupsFromViews(views))
}

// GetWorkerLogs handles GET /api/v1/workers/:id/logs.
func (s *Server) GetWorkerLogs(c echo.Context) error {
	workerID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	query, err := queries.NewGetWorkerHistoryQuery(workerID)
	if err != nil {
		return writeError(c, err)
	}
	return s.writeHistory(c, query)
}

func (s *Server) writeHistory(c echo.Context, query queries.GetPickupHistoryQuery) error {
	views, err := s.pickupHistoryHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	response := make([]Log, 0, len(views))
	for _, v := range views {
		response = append(response, logFrom(v))
	}
	return c.JSON(http.StatusOK, response)
}

// requestAndWorker reads the request id from the path and the worker id from
// a WorkerRef body.
func (s *Server) requestAndWorker(c echo.Context) (kernel.UUID, kernel.UUID, error) {
	requestID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}

	var body WorkerRef
	if err = c.Bind(&body); err != nil {
		return kernel.UUID{}, kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	workerID, err := kernel.UUIDFromString(body.WorkerID)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	return requestID, workerID, nil
}

func pickupsFromViews(views []queries.PickupView) []Pickup {
	response := make([]Pickup, 0, len(views))
	for _, v := range views {
		response = append(response, pickupFromView(v))
	}
	return response
}
