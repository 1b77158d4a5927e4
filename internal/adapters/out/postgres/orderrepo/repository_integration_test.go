package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"procurement/internal/adapters/out/postgres/orderrepo"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/errs"

	"github.com/shopspring/decimal"
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

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers to verify database persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
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

	// Get connection string and connect to database
	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	// Auto-migrate the schema
	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderLineDTO{},
		&orderrepo.NonConformityDTO{},
		&orderrepo.HistoryEntryDTO{},
	))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	// Clean the database before each test
	suite.Require().NoError(
		suite.db.Exec("TRUNCATE TABLE orders, order_lines, non_conformities, order_status_history").Error)

	// Create fresh repository and tracker for each test
	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()

	testOrder := suite.createTestOrder(kernel.NewUUID(), kernel.NewUUID())
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	suite.assertOrderCount(1)
	suite.assertCountIn("order_lines", 2)
	suite.assertCountIn("order_status_history", 1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_RoundTrips() {
	ctx := context.Background()

	original := suite.createTestOrder(kernel.NewUUID(), kernel.NewUUID())
	suite.tracker.On("TrackAggregate", original.ID(), original).Once()
	suite.Require().NoError(suite.repository.Add(ctx, original))

	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.Equal(original.ID(), retrieved.ID())
	suite.Equal(original.OrderNumber(), retrieved.OrderNumber())
	suite.Equal(original.SupplierID(), retrieved.SupplierID())
	suite.Equal(original.StationID(), retrieved.StationID())
	suite.Equal(order.StatusRegistered, retrieved.Status())
	suite.True(original.Total().Equal(retrieved.Total()))
	suite.Len(retrieved.Lines(), 2)
	suite.Len(retrieved.History(), 1)
	suite.Nil(retrieved.Shipment())
	suite.Nil(retrieved.Reception())
	suite.Equal(int64(0), retrieved.Version())

	// Line order and frozen terms survive the round trip
	suite.Equal(original.Lines()[0].ProductID(), retrieved.Lines()[0].ProductID())
	suite.True(original.Lines()[0].UnitPrice().Equal(retrieved.Lines()[0].UnitPrice()))
	suite.Equal(original.Lines()[1].PackagingUnit(), retrieved.Lines()[1].PackagingUnit())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_ConfirmedOrder_PersistsTransition() {
	ctx := context.Background()

	testOrder := suite.createTestOrder(kernel.NewUUID(), kernel.NewUUID())
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.confirm(testOrder)
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusConfirmed, retrieved.Status())
	suite.Len(retrieved.History(), 2)
	suite.NotNil(retrieved.Lines()[0].ConfirmedDeliveryDate())
	suite.Equal(int64(1), retrieved.Version())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_ReturnsStatusConflict() {
	ctx := context.Background()

	testOrder := suite.createTestOrder(kernel.NewUUID(), kernel.NewUUID())
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(2)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	// Two sessions load the same row
	first, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.confirm(first)
	suite.Require().NoError(suite.repository.Update(ctx, first))

	// The second session lost the race
	suite.confirm(second)
	err = suite.repository.Update(ctx, second)
	suite.Require().Error(err)

	var conflictErr *errs.StatusConflictError
	suite.Require().ErrorAs(err, &conflictErr)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	missing := suite.createTestOrder(kernel.NewUUID(), kernel.NewUUID())
	err := suite.repository.Update(ctx, missing)

	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllByMasterOrder_ReturnsChildrenByOrderNumber() {
	ctx := context.Background()

	stationID := kernel.NewUUID()
	masterID := kernel.NewUUID()
	otherMasterID := kernel.NewUUID()

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(3)

	for _, id := range []kernel.UUID{masterID, masterID, otherMasterID} {
		child := suite.createTestOrder(kernel.NewUUID(), stationID)
		suite.Require().NoError(child.AttachToMaster(id))
		suite.Require().NoError(suite.repository.Add(ctx, child))
	}

	children, err := suite.repository.GetAllByMasterOrder(ctx, masterID)
	suite.Require().NoError(err)
	suite.Len(children, 2)
	suite.Less(children[0].OrderNumber(), children[1].OrderNumber())
	for _, child := range children {
		suite.Require().NotNil(child.MasterOrderID())
		suite.Equal(masterID, *child.MasterOrderID())
	}

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestDeleteAllByMasterOrder_RemovesOrdersAndChildRows() {
	ctx := context.Background()

	masterID := kernel.NewUUID()
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(2)

	attached := suite.createTestOrder(kernel.NewUUID(), kernel.NewUUID())
	suite.Require().NoError(attached.AttachToMaster(masterID))
	suite.Require().NoError(suite.repository.Add(ctx, attached))

	standalone := suite.createTestOrder(kernel.NewUUID(), kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, standalone))

	suite.Require().NoError(suite.repository.DeleteAllByMasterOrder(ctx, masterID))

	suite.assertOrderCount(1)
	suite.assertCountIn("order_lines", 2)
	suite.assertCountIn("order_status_history", 1)

	_, err := suite.repository.Get(ctx, attached.ID())
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	remaining, err := suite.repository.Get(ctx, standalone.ID())
	suite.Require().NoError(err)
	suite.Equal(standalone.ID(), remaining.ID())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_ReceivedOrder_PersistsNonConformities() {
	ctx := context.Background()

	supplierID := kernel.NewUUID()
	stationID := kernel.NewUUID()
	testOrder := suite.createTestOrder(supplierID, stationID)
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Times(3)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.confirm(testOrder)

	supplier, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleSupplier, &supplierID)
	suite.Require().NoError(err)
	err = testOrder.Transition(order.StatusShipped, supplier, order.TransitionPayload{
		Carrier:          "DHL",
		TrackingNumber:   "TRK-1",
		ShipmentProofKey: "docs/shipment.pdf",
	})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	station, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleStation, &stationID)
	suite.Require().NoError(err)
	damaged, err := order.NewNonConformity("crushed packaging", 2, []string{"photos/a.jpg", "photos/b.jpg"})
	suite.Require().NoError(err)
	err = testOrder.Transition(order.StatusReceived, station, order.TransitionPayload{
		ReceptionProofKey: "docs/reception.pdf",
		ReceivedQuantities: map[kernel.UUID]int{
			testOrder.Lines()[0].ProductID(): 8,
		},
		NonConformities: []order.NonConformity{damaged},
	})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusReceived, retrieved.Status())
	suite.Require().NotNil(retrieved.Shipment())
	suite.Equal("DHL", retrieved.Shipment().Carrier())
	suite.Require().NotNil(retrieved.Reception())
	suite.Equal("docs/reception.pdf", retrieved.Reception().ProofKey())
	suite.Equal(8, retrieved.Lines()[0].QuantityReceived())
	suite.Require().Len(retrieved.NonConformities(), 1)
	suite.Equal([]string{"photos/a.jpg", "photos/b.jpg"}, retrieved.NonConformities()[0].PhotoKeys())
	suite.Len(retrieved.History(), 4)

	suite.tracker.AssertExpectations(suite.T())
}

// confirm moves the order from Registered to Confirmed with committed dates
// for every line.
func (suite *OrderRepositoryIntegrationTestSuite) confirm(testOrder *order.PurchaseOrder) {
	supplierID := testOrder.SupplierID()
	supplier, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleSupplier, &supplierID)
	suite.Require().NoError(err)

	dates := make(map[kernel.UUID]time.Time, len(testOrder.Lines()))
	for _, line := range testOrder.Lines() {
		dates[line.ProductID()] = time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)
	}

	err = testOrder.Transition(order.StatusConfirmed, supplier, order.TransitionPayload{
		ConfirmedDeliveryDates: dates,
	})
	suite.Require().NoError(err)
}

// createTestOrder creates a two-line order in Registered status.
func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder(supplierID, stationID kernel.UUID) *order.PurchaseOrder {
	desired := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	lineA, err := order.NewLine(kernel.NewUUID(), 10, decimal.RequireFromString("2.00"), "box", 6, desired)
	suite.Require().NoError(err)
	lineB, err := order.NewLine(kernel.NewUUID(), 5, decimal.RequireFromString("3.00"), "pallet", 24, desired)
	suite.Require().NoError(err)

	testOrder, err := order.NewPurchaseOrder(
		kernel.NewUUID(),
		kernel.NewOrderNumber(),
		supplierID,
		stationID,
		[]order.Line{lineA, lineB},
		kernel.NewUUID(),
	)
	suite.Require().NoError(err)
	return testOrder
}

// assertOrderCount verifies the number of orders in the database.
func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int) {
	var count int64
	err := suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

// assertCountIn verifies the number of rows in a child table.
func (suite *OrderRepositoryIntegrationTestSuite) assertCountIn(table string, expected int) {
	var count int64
	err := suite.db.Table(table).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
