package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_AUTH_SESSION_KEY         ContextKey = "auth_session"
)

const (
	REQUEST_ID_PREFIX = "CRLG_SVC_"
)

const (
	AppEnvProduction  = "production"
	AppEnvDevelopment = "development"
)

// Dashboard roles as issued by the authentication service.
const (
	RoleCareGiver = "caregiver"
	RoleManager   = "manager"
	RoleSuperuser = "superuser"
)

const (
	APIKeySuperuserID    = "api-key-superuser"
	ReminderWorkerUserID = "reminder-worker"
)

const (
	ResourceSleeps    = "/sleeps"
	ResourceResidents = "/patients"
)

const (
	RedisKeySleepEntriesFormat = "sleeps:entries:%s"
	RedisKeySelectionFormat    = "sleeps:selection:%s"
	RedisKeyNoticeFormat       = "notices:%s"
	RedisKeyInFlightFormat     = "sleeps:inflight:%s"
	RedisKeyReminderLeader     = "sleeps:reminder:leader"
)

const (
	MongoCollectionSleepSubmissions = "sleep_submissions"
)

// Sleep status codes as stored by the records API.
const (
	SleepStatusAwake         = "A"
	SleepStatusSleeping      = "S"
	SleepStatusNotAtFacility = "N/A"
)

const (
	DateLayout     = "2006-01-02"
	TimeSlotLayout = "3:04PM"
	MonthLayout    = "January"
)
