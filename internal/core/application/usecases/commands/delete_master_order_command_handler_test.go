package commands_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"procurement/internal/core/application/usecases/commands"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/masterorder"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/ports"
	"procurement/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBlobCleanupRepository struct{ mock.Mock }

func (m *MockBlobCleanupRepository) Add(ctx context.Context, cleanup ports.BlobCleanup) error {
	args := m.Called(ctx, cleanup)
	return args.Error(0)
}

func (m *MockBlobCleanupRepository) GetAllPending(ctx context.Context) ([]ports.BlobCleanup, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.BlobCleanup), args.Error(1)
}

func (m *MockBlobCleanupRepository) MarkAttempt(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBlobCleanupRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockDeleteUoW struct{ mock.Mock }

func (m *MockDeleteUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDeleteUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDeleteUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDeleteUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockDeleteUoW) MasterOrderRepository() ports.MasterOrderRepository {
	args := m.Called()
	return args.Get(0).(ports.MasterOrderRepository)
}

func (m *MockDeleteUoW) BlobCleanupRepository() ports.BlobCleanupRepository {
	args := m.Called()
	return args.Get(0).(ports.BlobCleanupRepository)
}

type MockDeleteUoWFactory struct{ mock.Mock }

func (m *MockDeleteUoWFactory) Create() commands.DeleteUoW {
	args := m.Called()
	return args.Get(0).(commands.DeleteUoW)
}

type MockDocumentStorage struct{ mock.Mock }

func (m *MockDocumentStorage) Put(ctx context.Context, key, contentType string, body io.Reader) error {
	args := m.Called(ctx, key, contentType, body)
	return args.Error(0)
}

func (m *MockDocumentStorage) Remove(ctx context.Context, keys []string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

// deletionFixture builds a master order with one child carrying a shipment
// proof, a reception proof, and non-conformity photos.
type deletionFixture struct {
	master *masterorder.MasterOrder
	orders []*order.PurchaseOrder
	keys   []string
}

func newDeletionFixture(t *testing.T) deletionFixture {
	t.Helper()

	supplierID := kernel.NewUUID()
	stationID := kernel.NewUUID()
	productID := kernel.NewUUID()

	line, err := order.NewLine(productID, 3, decimal.RequireFromString("4.00"),
		"box", 6, time.Now().AddDate(0, 0, 7))
	require.NoError(t, err)

	po, err := order.NewPurchaseOrder(
		kernel.NewUUID(), kernel.NewOrderNumber(),
		supplierID, stationID, []order.Line{line}, kernel.NewUUID())
	require.NoError(t, err)

	master, err := masterorder.NewMasterOrder(
		kernel.NewUUID(), kernel.NewMasterReference(), stationID,
		[]*order.PurchaseOrder{po}, kernel.NewUUID())
	require.NoError(t, err)
	require.NoError(t, po.AttachToMaster(master.ID()))

	supplierActor, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleSupplier, &supplierID)
	require.NoError(t, err)
	stationActor, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleStation, &stationID)
	require.NoError(t, err)

	require.NoError(t, po.Transition(order.StatusConfirmed, supplierActor, order.TransitionPayload{
		ConfirmedDeliveryDates: map[kernel.UUID]time.Time{productID: time.Now().AddDate(0, 0, 10)},
	}))
	require.NoError(t, po.Transition(order.StatusShipped, supplierActor, order.TransitionPayload{
		ShipmentProofKey: "docs/shipment.pdf",
	}))

	nc, err := order.NewNonConformity("damaged", 1, []string{"photos/a.jpg", "photos/b.jpg"})
	require.NoError(t, err)
	require.NoError(t, po.Transition(order.StatusReceived, stationActor, order.TransitionPayload{
		ReceptionProofKey: "docs/reception.pdf",
		NonConformities:   []order.NonConformity{nc},
	}))

	return deletionFixture{
		master: master,
		orders: []*order.PurchaseOrder{po},
		keys:   []string{"docs/shipment.pdf", "docs/reception.pdf", "photos/a.jpg", "photos/b.jpg"},
	}
}

func managerCommandActor(t *testing.T) kernel.Actor {
	t.Helper()
	actor, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleManager, nil)
	require.NoError(t, err)
	return actor
}

func TestDeleteMasterOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	f := newDeletionFixture(t)

	cmd, err := commands.NewDeleteMasterOrderCommand(f.master.ID(), managerCommandActor(t))
	require.NoError(t, err)

	orderRepo := new(MockCheckoutOrderRepository)
	masterRepo := new(MockCheckoutMasterOrderRepository)
	uow := new(MockDeleteUoW)
	storage := new(MockDocumentStorage)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("MasterOrderRepository").Return(masterRepo).Twice()
	uow.On("OrderRepository").Return(orderRepo).Twice()
	masterRepo.On("Get", ctx, f.master.ID()).Return(f.master, nil).Once()
	orderRepo.On("GetAllByMasterOrder", ctx, f.master.ID()).Return(f.orders, nil).Once()
	storage.On("Remove", ctx, f.keys).Return(nil).Once()
	orderRepo.On("DeleteAllByMasterOrder", ctx, f.master.ID()).Return(nil).Once()
	masterRepo.On("Delete", ctx, f.master.ID()).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockDeleteUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDeleteMasterOrderCommandHandler(factory, storage, discardLogger())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	storage.AssertNumberOfCalls(t, "Remove", 1)
	orderRepo.AssertExpectations(t)
	masterRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestDeleteMasterOrderCommandHandler_Handle_StorageFailureWritesOutbox(t *testing.T) {
	ctx := t.Context()
	f := newDeletionFixture(t)

	cmd, err := commands.NewDeleteMasterOrderCommand(f.master.ID(), managerCommandActor(t))
	require.NoError(t, err)

	orderRepo := new(MockCheckoutOrderRepository)
	masterRepo := new(MockCheckoutMasterOrderRepository)
	cleanupRepo := new(MockBlobCleanupRepository)
	uow := new(MockDeleteUoW)
	storage := new(MockDocumentStorage)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("MasterOrderRepository").Return(masterRepo).Twice()
	uow.On("OrderRepository").Return(orderRepo).Twice()
	uow.On("BlobCleanupRepository").Return(cleanupRepo).Once()
	masterRepo.On("Get", ctx, f.master.ID()).Return(f.master, nil).Once()
	orderRepo.On("GetAllByMasterOrder", ctx, f.master.ID()).Return(f.orders, nil).Once()
	storage.On("Remove", ctx, f.keys).Return(errors.New("storage unavailable")).Once()
	cleanupRepo.On("Add", ctx, mock.AnythingOfType("ports.BlobCleanup")).Return(nil).Once()
	orderRepo.On("DeleteAllByMasterOrder", ctx, f.master.ID()).Return(nil).Once()
	masterRepo.On("Delete", ctx, f.master.ID()).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockDeleteUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDeleteMasterOrderCommandHandler(factory, storage, discardLogger())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)

	outbox := cleanupRepo.Calls[0].Arguments[1].(ports.BlobCleanup)
	assert.ElementsMatch(t, f.keys, outbox.Keys)
	cleanupRepo.AssertExpectations(t)
}

func TestDeleteMasterOrderCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	missingID := kernel.NewUUID()

	cmd, err := commands.NewDeleteMasterOrderCommand(missingID, managerCommandActor(t))
	require.NoError(t, err)

	masterRepo := new(MockCheckoutMasterOrderRepository)
	uow := new(MockDeleteUoW)
	storage := new(MockDocumentStorage)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("MasterOrderRepository").Return(masterRepo).Once(),
		masterRepo.On("Get", ctx, missingID).
			Return(nil, errs.NewObjectNotFoundError("master order", missingID)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeleteUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDeleteMasterOrderCommandHandler(factory, storage, discardLogger())
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	storage.AssertNotCalled(t, "Remove")
}

func TestDeleteMasterOrderCommandHandler_Handle_ForeignStationForbidden(t *testing.T) {
	ctx := t.Context()
	f := newDeletionFixture(t)

	otherStation := kernel.NewUUID()
	actor, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleStation, &otherStation)
	require.NoError(t, err)

	cmd, err := commands.NewDeleteMasterOrderCommand(f.master.ID(), actor)
	require.NoError(t, err)

	masterRepo := new(MockCheckoutMasterOrderRepository)
	uow := new(MockDeleteUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("MasterOrderRepository").Return(masterRepo).Once(),
		masterRepo.On("Get", ctx, f.master.ID()).Return(f.master, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeleteUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDeleteMasterOrderCommandHandler(
		factory, new(MockDocumentStorage), discardLogger())
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrNotAuthorized)
}
