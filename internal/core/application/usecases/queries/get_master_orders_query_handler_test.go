package queries_test

import (
	"context"
	"testing"
	"time"

	"procurement/internal/adapters/out/postgres/masterorderrepo"
	"procurement/internal/adapters/out/postgres/orderrepo"
	"procurement/internal/core/application/usecases/queries"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/masterorder"
	"procurement/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// mockAggregateTracker is a no-op tracker for seeding test data through the
// repositories.
type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ interface{}) {}

type GetMasterOrdersQueryHandlerTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	handler    queries.GetMasterOrdersQueryHandler
	orderRepo  *orderrepo.GormOrderRepository
	masterRepo *masterorderrepo.GormMasterOrderRepository
}

func (suite *GetMasterOrdersQueryHandlerTestSuite) SetupSuite() {
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

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderLineDTO{},
		&orderrepo.NonConformityDTO{},
		&orderrepo.HistoryEntryDTO{},
		&masterorderrepo.MasterOrderDTO{},
	)
	suite.Require().NoError(err)

	suite.handler = queries.NewGetMasterOrdersQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
	suite.masterRepo = masterorderrepo.NewGormMasterOrderRepository(db, &mockAggregateTracker{})
}

func (suite *GetMasterOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetMasterOrdersQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE master_orders, orders, order_lines, non_conformities, order_status_history").Error)
}

func (suite *GetMasterOrdersQueryHandlerTestSuite) TestHandle_StationActor_SeesOwnMastersOnly() {
	ctx := context.Background()

	stationID := kernel.NewUUID()
	otherStationID := kernel.NewUUID()

	mine := suite.seedMaster(ctx, stationID, 2)
	suite.seedMaster(ctx, otherStationID, 1)

	station, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleStation, &stationID)
	suite.Require().NoError(err)
	query, err := queries.NewGetMasterOrdersQuery(station)
	suite.Require().NoError(err)

	responses, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(responses, 1)
	suite.Equal(mine.ID(), responses[0].ID)
	suite.Equal(mine.Reference(), responses[0].Reference)
	suite.Equal(order.StatusRegistered.String(), responses[0].Status)
	suite.Require().Len(responses[0].Orders, 2)
	suite.Less(responses[0].Orders[0].OrderNumber, responses[0].Orders[1].OrderNumber)
}

func (suite *GetMasterOrdersQueryHandlerTestSuite) TestHandle_ManagerActor_SeesAllMasters() {
	ctx := context.Background()

	suite.seedMaster(ctx, kernel.NewUUID(), 1)
	suite.seedMaster(ctx, kernel.NewUUID(), 1)

	manager, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleManager, nil)
	suite.Require().NoError(err)
	query, err := queries.NewGetMasterOrdersQuery(manager)
	suite.Require().NoError(err)

	responses, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Len(responses, 2)
}

func (suite *GetMasterOrdersQueryHandlerTestSuite) TestHandle_DriftedStatus_IsHealedOnRead() {
	ctx := context.Background()

	stationID := kernel.NewUUID()
	master := suite.seedMaster(ctx, stationID, 2)

	// Both children advanced behind the cached master status
	suite.Require().NoError(suite.db.Exec(
		"UPDATE orders SET status = ? WHERE master_order_id = ?",
		int(order.StatusConfirmed), master.ID().Bytes()).Error)

	manager, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleManager, nil)
	suite.Require().NoError(err)
	query, err := queries.NewGetMasterOrdersQuery(manager)
	suite.Require().NoError(err)

	responses, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(responses, 1)
	suite.Equal(order.StatusConfirmed.String(), responses[0].Status)

	// The cached row was rewritten, not just the response
	var stored int
	suite.Require().NoError(suite.db.Raw(
		"SELECT status FROM master_orders WHERE id = ?", master.ID().Bytes()).Scan(&stored).Error)
	suite.Equal(int(order.StatusConfirmed), stored)
}

func (suite *GetMasterOrdersQueryHandlerTestSuite) TestHandle_AllChildrenArchived_MasterIsArchived() {
	ctx := context.Background()

	master := suite.seedMaster(ctx, kernel.NewUUID(), 2)
	suite.Require().NoError(suite.db.Exec(
		"UPDATE orders SET status = ? WHERE master_order_id = ?",
		int(order.StatusArchived), master.ID().Bytes()).Error)

	manager, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleManager, nil)
	suite.Require().NoError(err)
	query, err := queries.NewGetMasterOrdersQuery(manager)
	suite.Require().NoError(err)

	responses, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(responses, 1)
	suite.Equal(order.StatusArchived.String(), responses[0].Status)
}

func (suite *GetMasterOrdersQueryHandlerTestSuite) TestHandle_NoMasters_ReturnsEmptySlice() {
	manager, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleManager, nil)
	suite.Require().NoError(err)
	query, err := queries.NewGetMasterOrdersQuery(manager)
	suite.Require().NoError(err)

	responses, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Empty(responses)
}

// seedMaster persists a master order with the given number of one-line
// children, all in Registered status.
func (suite *GetMasterOrdersQueryHandlerTestSuite) seedMaster(
	ctx context.Context,
	stationID kernel.UUID,
	childCount int,
) *masterorder.MasterOrder {
	desired := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	createdBy := kernel.NewUUID()

	children := make([]*order.PurchaseOrder, 0, childCount)
	for range childCount {
		line, err := order.NewLine(kernel.NewUUID(), 10, decimal.RequireFromString("2.00"), "box", 6, desired)
		suite.Require().NoError(err)

		child, err := order.NewPurchaseOrder(
			kernel.NewUUID(),
			kernel.NewOrderNumber(),
			kernel.NewUUID(),
			stationID,
			[]order.Line{line},
			createdBy,
		)
		suite.Require().NoError(err)
		children = append(children, child)
	}

	master, err := masterorder.NewMasterOrder(
		kernel.NewUUID(),
		kernel.NewMasterReference(),
		stationID,
		children,
		createdBy,
	)
	suite.Require().NoError(err)

	for _, child := range children {
		suite.Require().NoError(child.AttachToMaster(master.ID()))
		suite.Require().NoError(suite.orderRepo.Add(ctx, child))
	}
	suite.Require().NoError(suite.masterRepo.Add(ctx, master))

	return master
}

func TestGetMasterOrdersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetMasterOrdersQueryHandlerTestSuite))
}
