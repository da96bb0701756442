package pickuprepo_test

import (
	"context"
	"testing"
	"time"

	"ewaste/internal/adapters/out/postgres/pickuprepo"
	"ewaste/internal/core/domain/model/kernel"
	"ewaste/internal/core/domain/model/pickup"
	"ewaste/internal/core/ports"
	"ewaste/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// PickupRepositoryIntegrationTestSuite verifies pickup request persistence on PostgreSQL.
type PickupRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *pickuprepo.GormPickupRepository
	tracker    *MockAggregateTracker
}

func (suite *PickupRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&pickuprepo.PickupRequestDTO{}))
}

func (suite *PickupRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE pickup_requests").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.repository = pickuprepo.NewGormPickupRepository(suite.db, suite.tracker)
}

func (suite *PickupRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *PickupRepositoryIntegrationTestSuite) TestAdd_ThenGet_RoundTripsAllFields() {
	ctx := context.Background()
	loc, err := kernel.NewGeoPoint(18.5204, 73.8567)
	suite.Require().NoError(err)
	d := suite.details("411001")
	d.Location = &loc
	d.Contact = pickup.Contact{Name: "Asha", Phone: "98000", Email: "asha@example.com"}
	d.Status = pickup.PaidPendingPickup
	original, err := pickup.NewRequest(kernel.NewUUID(), d, time.Now().UTC())
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Add(ctx, original))
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", original.ID(), original)

	got, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)
	suite.Equal(original.ID(), got.ID())
	suite.Equal(original.RequesterID(), got.RequesterID())
	suite.Equal(original.Contact(), got.Contact())
	suite.Equal(original.Address(), got.Address())
	suite.Equal("2026-10-20", got.Date())
	suite.Equal(pickup.PaidPendingPickup, got.Status())
	suite.Nil(got.AssignedWorker())
	gotLoc, ok := got.Location()
	suite.True(ok)
	suite.InDelta(18.5204, gotLoc.Latitude(), 1e-9)
}

func (suite *PickupRepositoryIntegrationTestSuite) TestGet_Unknown_ReturnsNotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *PickupRepositoryIntegrationTestSuite) TestUpdate_WritesClearedFieldsAsNull() {
	ctx := context.Background()
	r := suite.add("411001")
	workerID := kernel.NewUUID()
	weight := 7.5

	_, err := r.Assign(workerID, "ravi", time.Now())
	suite.Require().NoError(err)
	_, err = r.UpdateStatus(pickup.StatusUpdate{WorkerID: workerID, Status: pickup.Completed, CollectedKg: &weight}, time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, r))

	got, err := suite.repository.Get(ctx, r.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(got.WeightKg())
	suite.InDelta(7.5, *got.WeightKg(), 0)
	suite.Equal(pickup.TrackingDone, got.TrackingStatus())

	_, err = r.UpdateStatus(pickup.StatusUpdate{WorkerID: workerID, Status: pickup.Assigned}, time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, r))

	got, err = suite.repository.Get(ctx, r.ID())
	suite.Require().NoError(err)
	suite.Nil(got.WeightKg())
	suite.Equal(pickup.Assigned, got.Status())
	suite.True(got.IsAssignedTo(workerID))
}

func (suite *PickupRepositoryIntegrationTestSuite) TestUpdate_Unknown_ReturnsNotFound() {
	r, err := pickup.NewRequest(kernel.NewUUID(), suite.details("411001"), time.Now())
	suite.Require().NoError(err)

	err = suite.repository.Update(context.Background(), r)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *PickupRepositoryIntegrationTestSuite) TestGetForUpdate_ReturnsLockedRow() {
	ctx := context.Background()
	r := suite.add("411001")

	err := suite.db.Transaction(func(tx *gorm.DB) error {
		repo := pickuprepo.NewGormPickupRepository(tx, suite.tracker)
		got, err := repo.GetForUpdate(ctx, r.ID())
		if err != nil {
			return err
		}
		suite.Equal(r.ID(), got.ID())
		return nil
	})

	suite.Require().NoError(err)
}

func (suite *PickupRepositoryIntegrationTestSuite) TestGetAllAwaitingAssignment_FiltersByStatusAndAssignee() {
	ctx := context.Background()
	pending := suite.add("411001")
	d := suite.details("411002")
	d.Status = pickup.PaidPendingPickup
	paid, err := pickup.NewRequest(kernel.NewUUID(), d, time.Now().UTC().Add(time.Second))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, paid))

	assigned := suite.add("411003")
	_, err = assigned.Assign(kernel.NewUUID(), "ravi", time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, assigned))

	cancelled := suite.add("411004")
	cancelledBy := kernel.NewUUID()
	_, err = cancelled.Assign(cancelledBy, "meera", time.Now())
	suite.Require().NoError(err)
	_, err = cancelled.UpdateStatus(pickup.StatusUpdate{WorkerID: cancelledBy, Status: pickup.Cancelled}, time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, cancelled))

	got, err := suite.repository.GetAllAwaitingAssignment(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(got, 2)
	suite.True(got[0].IsEqual(pending))
	suite.True(got[1].IsEqual(paid))
}

func (suite *PickupRepositoryIntegrationTestSuite) TestCountAssignments_ByScope() {
	ctx := context.Background()
	workerID := kernel.NewUUID()

	for i, final := range []pickup.Status{pickup.Assigned, pickup.Completed, pickup.Cancelled, pickup.Assigned} {
		r := suite.add("41100" + string(rune('0'+i)))
		_, err := r.Assign(workerID, "ravi", time.Now())
		suite.Require().NoError(err)
		if final != pickup.Assigned {
			_, err = r.UpdateStatus(pickup.StatusUpdate{WorkerID: workerID, Status: final}, time.Now())
			suite.Require().NoError(err)
		}
		suite.Require().NoError(suite.repository.Update(ctx, r))
	}
	suite.add("411099")

	all, err := suite.repository.CountAssignments(ctx, workerID, ports.AllAssignments)
	suite.Require().NoError(err)
	suite.Equal(4, all)

	open, err := suite.repository.CountAssignments(ctx, workerID, ports.OpenAssignments)
	suite.Require().NoError(err)
	suite.Equal(2, open)

	none, err := suite.repository.CountAssignments(ctx, kernel.NewUUID(), ports.AllAssignments)
	suite.Require().NoError(err)
	suite.Zero(none)
}

func (suite *PickupRepositoryIntegrationTestSuite) details(pincode string) pickup.Details {
	return pickup.Details{
		RequesterID: kernel.NewUUID(),
		Address:     kernel.NewAddress("12 MG Road", "Pune", "MH", pincode),
		Date:        "2026-10-20",
		TimeSlot:    "10:00",
		WasteType:   "Laptop",
	}
}

func (suite *PickupRepositoryIntegrationTestSuite) add(pincode string) *pickup.Request {
	r, err := pickup.NewRequest(kernel.NewUUID(), suite.details(pincode), time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(context.Background(), r))
	return r
}

func TestPickupRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(PickupRepositoryIntegrationTestSuite))
}
