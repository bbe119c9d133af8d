package config

type (
	DriverConfig struct {
		MongoDB  MongoDB
		Redis    Redis
		Logger   Logger
		RabbitMQ RabbitMQ
		Minio    Minio
	}
	MongoDB struct {
		Port     string
		Host     string
		DbName   string
		Username string
		Password string
	}
	Redis struct {
		Host     string
		Port     string
		Password string
	}
	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
		MaxSizeInMegabytes  int
		MaxBackups          int
		MaxAgeInDays        int
	}
	RabbitMQ struct {
		Port     string
		Host     string
		Username string
		Password string
	}
	Minio struct {
		Port     string
		Host     string
		Username string
		Password string
		UseSSL   bool
	}
)

type (
	InternalConfig struct {
		App       App
		RemoteAPI RemoteAPI
		JWT       JWT
		Sleep     Sleep
		Minio     AppMinio
		RabbitMQ  AppRabbitMQ
	}

	App struct {
		Env                   string
		Port                  string
		Version               string
		Address               string
		Timezone              string
		EndpointPrefix        string
		MaxRequests           int
		ShutdownTimeout       int
		SuperuserAPIKeyHash   string
		RequestTimeoutSeconds int
	}

	RemoteAPI struct {
		BaseUrl              string
		TimeoutInSeconds     int
		MaxRequestsPerSecond int
		MaxBurstRequests     int
		// ServiceToken authenticates background jobs that have no caller session.
		ServiceToken string
	}

	JWT struct {
		Secret string
	}

	Sleep struct {
		// TrackingStartDate overrides the April 1 rule when set (YYYY-MM-DD).
		TrackingStartDate        string
		NoticeTTLInSeconds       int
		EntriesCacheTTLInSeconds int
		ReminderCronSpec         string
		ReminderLockTTLInSeconds int
		ReminderEnabled          bool
	}

	AppMinio struct {
		ReportBucketName          string
		PresignedURLExpiryInHours int
	}

	AppRabbitMQ struct {
		ReminderQueue string
	}
)
