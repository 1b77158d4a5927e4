package cmd

import (
	"log/slog"

	"procurement/internal/adapters/out/postgres"
	"procurement/internal/adapters/out/postgres/catalogrepo"
	"procurement/internal/core/application/usecases/commands"
	"procurement/internal/core/application/usecases/queries"
	"procurement/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	storage    ports.DocumentStorage
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

func NewCompositionRoot(
	_ Config,
	gormDB *gorm.DB,
	storage ports.DocumentStorage,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		storage:    storage,
		publisher:  publisher,
		logger:     logger,
	}
}

func (c *CompositionRoot) DocumentStorage() ports.DocumentStorage {
	return c.storage
}

func (c *CompositionRoot) CreateAddCartLineCommandHandler() commands.AddCartLineCommandHandler {
	var f commands.CartUoWFactory = FuncCartUoWFactory(func() commands.CartUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAddCartLineCommandHandler(f)
}

func (c *CompositionRoot) CreateCheckoutCartCommandHandler() commands.CheckoutCartCommandHandler {
	var f commands.CheckoutUoWFactory = FuncCheckoutUoWFactory(func() commands.CheckoutUoW {
		return c.uowFactory.Create()
	})
	referenceData := catalogrepo.NewGormReferenceDataGateway(c.gormDB)
	return commands.NewCheckoutCartCommandHandler(f, referenceData, c.logger)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeOrderStatusCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateDeleteMasterOrderCommandHandler() commands.DeleteMasterOrderCommandHandler {
	var f commands.DeleteUoWFactory = FuncDeleteUoWFactory(func() commands.DeleteUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeleteMasterOrderCommandHandler(f, c.storage, c.logger)
}

func (c *CompositionRoot) CreateCleanupBlobsCommandHandler() commands.CleanupBlobsCommandHandler {
	var f commands.CleanupUoWFactory = FuncCleanupUoWFactory(func() commands.CleanupUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCleanupBlobsCommandHandler(f, c.storage, c.logger)
}

func (c *CompositionRoot) CreateGetMasterOrdersQueryHandler() queries.GetMasterOrdersQueryHandler {
	return queries.NewGetMasterOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

type FuncCartUoWFactory func() commands.CartUoW

func (f FuncCartUoWFactory) Create() commands.CartUoW {
	return f()
}

type FuncCheckoutUoWFactory func() commands.CheckoutUoW

func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDeleteUoWFactory func() commands.DeleteUoW

func (f FuncDeleteUoWFactory) Create() commands.DeleteUoW {
	return f()
}

type FuncCleanupUoWFactory func() commands.CleanupUoW

func (f FuncCleanupUoWFactory) Create() commands.CleanupUoW {
	return f()
}
