package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"procurement/cmd"
	httpadapter "procurement/internal/adapters/in/http"
	"procurement/internal/adapters/out/gcs"
	"procurement/internal/adapters/out/kafka"
	"procurement/internal/adapters/out/postgres/catalogrepo"
	"procurement/internal/adapters/out/postgres/cartrepo"
	"procurement/internal/adapters/out/postgres/cleanuprepo"
	"procurement/internal/adapters/out/postgres/masterorderrepo"
	"procurement/internal/adapters/out/postgres/orderrepo"
	"procurement/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	ctx := context.Background()

	gormDB := mustOpenDatabase(configs)
	migrateDatabase(gormDB)

	storage, err := gcs.NewDocumentStorage(ctx, configs.StorageBucket)
	if err != nil {
		log.Fatalf("Error creating document storage: %v", err)
	}
	defer storage.Close()

	publisher, err := kafka.NewOrderStatusProducer(
		[]string{configs.KafkaHost}, configs.KafkaOrderChangedTopic)
	if err != nil {
		log.Fatalf("Error creating kafka producer: %v", err)
	}
	defer publisher.Close()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	app := cmd.NewCompositionRoot(configs, gormDB, storage, publisher, logger)

	jobManager := jobs.NewJobManager(
		app.CreateCleanupBlobsCommandHandler(),
		configs.BlobCleanupCronSpec,
		logger,
	)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:               goDotEnvVariable("HTTP_PORT"),
		DBHost:                 goDotEnvVariable("DB_HOST"),
		DBPort:                 goDotEnvVariable("DB_PORT"),
		DBUser:                 goDotEnvVariable("DB_USER"),
		DBPassword:             goDotEnvVariable("DB_PASSWORD"),
		DBName:                 goDotEnvVariable("DB_NAME"),
		DBSslMode:              goDotEnvVariable("DB_SSLMODE"),
		KafkaHost:              goDotEnvVariable("KAFKA_HOST"),
		KafkaOrderChangedTopic: goDotEnvVariable("KAFKA_ORDER_CHANGED_TOPIC"),
		StorageBucket:          goDotEnvVariable("STORAGE_BUCKET"),
		BlobCleanupCronSpec:    goDotEnvVariable("BLOB_CLEANUP_CRON_SPEC"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustOpenDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	return gormDB
}

func migrateDatabase(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&cartrepo.CartDTO{},
		&cartrepo.CartLineDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderLineDTO{},
		&orderrepo.NonConformityDTO{},
		&orderrepo.HistoryEntryDTO{},
		&masterorderrepo.MasterOrderDTO{},
		&cleanuprepo.BlobCleanupDTO{},
		&catalogrepo.SupplierProductTermsDTO{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()

	server := httpadapter.NewServer(
		app.CreateAddCartLineCommandHandler(),
		app.CreateCheckoutCartCommandHandler(),
		app.CreateChangeOrderStatusCommandHandler(),
		app.CreateCancelOrderCommandHandler(),
		app.CreateDeleteMasterOrderCommandHandler(),
		app.CreateGetMasterOrdersQueryHandler(),
		app.CreateGetOrderQueryHandler(),
		app.DocumentStorage(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
