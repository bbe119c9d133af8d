package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carelog-service/internal/app/config"
	"carelog-service/internal/app/delivery/http/controllers"
	"carelog-service/internal/app/delivery/http/middlewares"
	"carelog-service/internal/app/delivery/http/routers"
	"carelog-service/internal/app/drivers/database"
	"carelog-service/internal/app/drivers/logger"
	"carelog-service/internal/app/drivers/messaging"
	"carelog-service/internal/app/drivers/storage"
	"carelog-service/internal/app/models"
	"carelog-service/internal/app/services/core/sleeps"
	"carelog-service/internal/app/services/remote"
	"carelog-service/internal/app/services/remote/residents"
	remoteSleeps "carelog-service/internal/app/services/remote/sleeps"
	"carelog-service/internal/app/services/shared/entrycache"
	"carelog-service/internal/app/services/shared/inflight"
	"carelog-service/internal/app/services/shared/journal"
	"carelog-service/internal/app/services/shared/locker"
	"carelog-service/internal/app/services/shared/notices"
	"carelog-service/internal/app/services/shared/redis"
	"carelog-service/internal/app/services/shared/reminder"
	"carelog-service/internal/app/services/shared/selection"
	sharedStorage "carelog-service/internal/app/services/shared/storage"
	"carelog-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Version sets the default build version
var Version = "develop"

// Tag sets the default latest commit tag
var Tag = "0.0.1-rc"

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	zapLogger.Info("Starting carelog service",
		zap.String("version", Version),
		zap.String("tag", Tag),
		zap.String("env", internalConfig.App.Env))

	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	minioClient := storage.NewMinio(driverConfig)

	err = storage.EnsureBucket(minioClient, internalConfig.Minio.ReportBucketName)
	if err != nil {
		log.Fatalf("Error preparing report bucket: %v", err)
	}

	bootstrap := config.Bootstrap{
		Router:         chi.NewRouter(),
		Redis:          redisClient,
		MongoDB:        mongoDB,
		Minio:          minioClient,
		Logger:         zapLogger,
		RabbitMQ:       rabbitMQ,
		InternalConfig: internalConfig,
		DriverConfig:   driverConfig,
	}
	err = bootstrapingTheApp(&bootstrap)
	if err != nil {
		log.Fatalf("Error bootstraping the app: %v", err)
	}

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: bootstrap.Router,
	}

	go func() {
		zapLogger.Info("HTTP server listening", zap.String("address", internalConfig.App.Port))
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Error closing dependencies: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) error {
	internalConfig := bootstrap.InternalConfig
	log := bootstrap.Logger

	// Records API
	limiter := rate.NewLimiter(rate.Limit(internalConfig.RemoteAPI.MaxRequestsPerSecond), internalConfig.RemoteAPI.MaxBurstRequests)
	remoteClient := remote.NewRemoteClient(
		internalConfig.RemoteAPI.BaseUrl,
		time.Duration(internalConfig.RemoteAPI.TimeoutInSeconds)*time.Second,
		limiter,
		log,
	)
	sleepClient := remoteSleeps.NewSleepApiClient(remoteClient, log)
	residentClient := residents.NewResidentApiClient(remoteClient, log)

	// Shared services
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockService := locker.NewLockService(redisRepository, log)
	entryCache := entrycache.NewSleepEntryCache(
		redisRepository,
		sleepClient,
		time.Duration(internalConfig.Sleep.EntriesCacheTTLInSeconds)*time.Second,
		log,
	)
	inFlightTracker := inflight.NewRedisInFlightTracker(lockService, inflight.DefaultTTL, log)
	selectionStore := selection.NewSelectionStore(redisRepository, selection.DefaultTTL)
	noticeService := notices.NewNoticeService(
		redisRepository,
		time.Duration(internalConfig.Sleep.NoticeTTLInSeconds)*time.Second,
		time.Now,
		log,
	)
	submissionJournal := journal.NewSubmissionMongoRepository(bootstrap.MongoDB, bootstrap.DriverConfig.MongoDB.DbName)
	reportStorage := sharedStorage.NewMinioStorage(bootstrap.Minio)

	// Sleeps
	calendar := sleeps.NewCalendar(internalConfig.Sleep.TrackingStartDate, time.Now)
	sleepUsecase := sleeps.NewSleepUsecase(
		sleepClient,
		residentClient,
		entryCache,
		inFlightTracker,
		selectionStore,
		noticeService,
		submissionJournal,
		reportStorage,
		calendar,
		internalConfig,
		log,
	)

	if internalConfig.Sleep.ReminderEnabled {
		publisher, err := reminder.NewReminderPublisher(bootstrap.RabbitMQ, internalConfig.RabbitMQ.ReminderQueue, log)
		if err != nil {
			return err
		}

		worker := sleeps.NewReminderWorker(log, sleeps.ReminderWorkerConfig{
			CronSpec: internalConfig.Sleep.ReminderCronSpec,
			LockTTL:  time.Duration(internalConfig.Sleep.ReminderLockTTLInSeconds) * time.Second,
			Session: models.AuthSession{
				Token:  internalConfig.RemoteAPI.ServiceToken,
				Role:   constvars.RoleSuperuser,
				UserID: constvars.ReminderWorkerUserID,
			},
		}, lockService, residentClient, sleepClient, publisher, time.Now)
		worker.Start(context.Background())
		bootstrap.WorkerStop = worker.Stop
	}

	// HTTP
	routers.SetupRoutes(
		bootstrap.Router,
		internalConfig,
		middlewares.NewMiddlewares(log, internalConfig),
		routers.Controllers{
			Sleep:     controllers.NewSleepController(log, sleepUsecase, internalConfig),
			Selection: controllers.NewSelectionController(log, sleepUsecase, internalConfig),
			Report:    controllers.NewReportController(log, sleepUsecase, internalConfig),
			Notice:    controllers.NewNoticeController(log, sleepUsecase, internalConfig),
		},
	)
	return nil
}
