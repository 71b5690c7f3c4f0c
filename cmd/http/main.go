package main

import (
	"context"
	"labcore-service/internal/app/config"
	"labcore-service/internal/app/delivery/http/middlewares"
	"labcore-service/internal/app/delivery/http/routers"
	"labcore-service/internal/app/drivers/database"
	"labcore-service/internal/app/drivers/logger"
	"labcore-service/internal/app/drivers/messaging"
	driverstorage "labcore-service/internal/app/drivers/storage"
	"labcore-service/internal/app/services/core/catalog"
	"labcore-service/internal/app/services/core/orders"
	"labcore-service/internal/app/services/core/results"
	"labcore-service/internal/app/services/core/specimens"
	"labcore-service/internal/app/services/shared/events"
	"labcore-service/internal/app/services/shared/locker"
	redisrepo "labcore-service/internal/app/services/shared/redis"
	"labcore-service/internal/app/services/shared/sequence"
	"labcore-service/internal/app/services/shared/storage"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/minio/minio-go/v7"
	"github.com/sirupsen/logrus"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		logrus.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	minioClient := driverstorage.NewMinio(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		RabbitMQ:       rabbitMQ,
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}
	bootstrapTheApp(bootstrap, minioClient)

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	logrus.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		logrus.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		logrus.Printf("Error while closing connections: %v", err)
	}

	logrus.Println("Server exiting")
}

func bootstrapTheApp(bootstrap config.Bootstrap, minioClient *minio.Client) {
	// Shared services
	redisRepository := redisrepo.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockService(redisRepository, bootstrap.Logger)
	counterRepository := sequence.NewCounterMongoRepository(bootstrap.MongoDB, bootstrap.DriverConfig.MongoDB.DbName)
	sequenceService := sequence.NewSequenceService(counterRepository, bootstrap.Logger)
	objectStorage := storage.NewMinioStorage(minioClient, bootstrap.DriverConfig.Minio.BucketName)

	eventPublisher, err := events.NewEventPublisher(bootstrap.RabbitMQ, bootstrap.DriverConfig.RabbitMQ.EventQueue, bootstrap.Logger)
	if err != nil {
		logrus.Fatalf("Failed to set up event publisher: %v", err)
	}

	// Middlewares
	middlewares := &middlewares.Middlewares{
		Log:            bootstrap.Logger,
		InternalConfig: bootstrap.InternalConfig,
	}

	// Catalog
	pcrPanelRepository := catalog.NewPCRPanelMongoRepository(bootstrap.MongoDB, bootstrap.DriverConfig.MongoDB.DbName)
	testCatalogRepository := catalog.NewTestCatalogMongoRepository(bootstrap.MongoDB, bootstrap.DriverConfig.MongoDB.DbName)
	testResolver := catalog.NewTestResolver(pcrPanelRepository, testCatalogRepository)

	// Orders
	orderRepository := orders.NewOrderMongoRepository(bootstrap.MongoDB, bootstrap.DriverConfig.MongoDB.DbName)
	patientRepository := orders.NewPatientMongoRepository(bootstrap.MongoDB, bootstrap.DriverConfig.MongoDB.DbName)
	orderUsecase := orders.NewOrderUsecase(orderRepository, patientRepository, testResolver, sequenceService, lockerService, bootstrap.InternalConfig)
	orderController := orders.NewOrderController(bootstrap.Logger, orderUsecase, bootstrap.InternalConfig)

	// Specimens
	specimenRepository := specimens.NewSpecimenMongoRepository(bootstrap.MongoDB, bootstrap.DriverConfig.MongoDB.DbName)
	specimenUsecase := specimens.NewSpecimenUsecase(orderRepository, specimenRepository, sequenceService, lockerService, bootstrap.InternalConfig)
	specimenController := specimens.NewSpecimenController(bootstrap.Logger, specimenUsecase, bootstrap.InternalConfig)

	// Results
	resultRepository := results.NewResultMongoRepository(bootstrap.MongoDB, bootstrap.DriverConfig.MongoDB.DbName)
	resultUsecase := results.NewResultUsecase(resultRepository, orderRepository, sequenceService, lockerService, eventPublisher, objectStorage, bootstrap.InternalConfig, bootstrap.Logger)
	resultController := results.NewResultController(bootstrap.Logger, resultUsecase, bootstrap.InternalConfig)

	routers.SetupRoutes(bootstrap.Router, bootstrap.InternalConfig, middlewares, orderController, specimenController, resultController)
}
