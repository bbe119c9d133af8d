package constvars

const (
	LoggingRequestIDKey      = "request_id"
	LoggingMethodKey         = "method"
	LoggingEndpointKey       = "endpoint"
	LoggingRemoteAddrKey     = "remote_addr"
	LoggingUserAgentKey      = "user_agent"
	LoggingQueryKey          = "query"
	LoggingStatusCodeKey     = "status_code"
	LoggingDurationKey       = "duration"
	LoggingSuccessKey        = "success"
	LoggingResponseLengthKey = "response_length"
	LoggingUserIDKey         = "user_id"
	LoggingRoleKey           = "role"
	LoggingResidentIDKey     = "resident_id"
	LoggingDateKey           = "date"
	LoggingSlotKey           = "slot"
	LoggingStatusKey         = "status"
	LoggingSlotKeyKey        = "slot_key"
	LoggingSuccessCountKey   = "success_count"
	LoggingFailureCountKey   = "failure_count"
	LoggingSkippedCountKey   = "skipped_count"
	LoggingOutcomeKey        = "outcome"
	LoggingRedisKey          = "redis_key"
	LoggingLockValueKey      = "lock_value"
	LoggingLockExpirationKey = "lock_expiration"
	LoggingBucketNameKey     = "bucket_name"
	LoggingObjectNameKey     = "object_name"
	LoggingQueueNameKey      = "queue_name"
	LoggingRemoteURLKey      = "remote_url"
	LoggingMissingCountKey   = "missing_count"
)
