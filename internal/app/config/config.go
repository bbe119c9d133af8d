package config

import (
	"carelog-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "carelog"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
			MaxSizeInMegabytes:  utils.GetEnvInt("LOGGER_MAX_SIZE_IN_MEGABYTES", 100),
			MaxBackups:          utils.GetEnvInt("LOGGER_MAX_BACKUPS", 5),
			MaxAgeInDays:        utils.GetEnvInt("LOGGER_MAX_AGE_IN_DAYS", 30),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "defaultPassword"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                   utils.GetEnvString("APP_ENV", "development"),
			Port:                  utils.GetEnvString("APP_PORT", ":8080"),
			Version:               utils.GetEnvString("APP_VERSION", "v1"),
			Address:               utils.GetEnvString("APP_ADDRESS", "localhost"),
			Timezone:              utils.GetEnvString("APP_TIMEZONE", "Asia/Jakarta"),
			EndpointPrefix:        utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			MaxRequests:           utils.GetEnvInt("APP_MAX_REQUESTS", 20),
			ShutdownTimeout:       utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			SuperuserAPIKeyHash:   utils.GetEnvString("APP_SUPERUSER_API_KEY_HASH", ""),
			RequestTimeoutSeconds: utils.GetEnvInt("APP_REQUEST_TIMEOUT_IN_SECONDS", 10),
		},
		RemoteAPI: RemoteAPI{
			BaseUrl:              utils.GetEnvString("REMOTE_API_BASE_URL", "http://localhost:5000/api"),
			TimeoutInSeconds:     utils.GetEnvInt("REMOTE_API_TIMEOUT_IN_SECONDS", 15),
			MaxRequestsPerSecond: utils.GetEnvInt("REMOTE_API_MAX_REQUESTS_PER_SECOND", 10),
			MaxBurstRequests:     utils.GetEnvInt("REMOTE_API_MAX_BURST_REQUESTS", 10),
			ServiceToken:         utils.GetEnvString("REMOTE_API_SERVICE_TOKEN", ""),
		},
		JWT: JWT{
			Secret: utils.GetEnvString("JWT_SECRET", "anyjwt"),
		},
		Sleep: Sleep{
			TrackingStartDate:        utils.GetEnvString("APP_SLEEP_TRACKING_START_DATE", ""),
			NoticeTTLInSeconds:       utils.GetEnvInt("APP_NOTICE_TTL_IN_SECONDS", 5),
			EntriesCacheTTLInSeconds: utils.GetEnvInt("APP_SLEEP_ENTRIES_CACHE_TTL_IN_SECONDS", 300),
			ReminderCronSpec:         utils.GetEnvString("APP_REMINDER_CRON_SPEC", "@hourly"),
			ReminderLockTTLInSeconds: utils.GetEnvInt("APP_REMINDER_LOCK_TTL_IN_SECONDS", 600),
			ReminderEnabled:          utils.GetEnvBool("APP_REMINDER_ENABLED", true),
		},
		Minio: AppMinio{
			ReportBucketName:          utils.GetEnvString("APP_MINIO_REPORT_BUCKET_NAME", "reports"),
			PresignedURLExpiryInHours: utils.GetEnvInt("APP_MINIO_PRESIGNED_URL_EXPIRY_IN_HOURS", 24),
		},
		RabbitMQ: AppRabbitMQ{
			ReminderQueue: utils.GetEnvString("APP_RABBITMQ_REMINDER_QUEUE", "sleep_reminders"),
		},
	}
}
