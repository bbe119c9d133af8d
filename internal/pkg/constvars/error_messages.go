package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":      "is required",
	"min":           "must be at least %s characters long",
	"max":           "maximum at %s characters long",
	"numeric":       "must be a number",
	"len":           "must be %s characters long",
	"oneof":         "must be one of [%s]",
	"gt":            "must be greater than %s",
	"gte":           "must be greater than or equal to %s",
	"lt":            "must be less than %s",
	"lte":           "must be less than or equal to %s",
	"dive":          "contains an invalid item",
	"sleep_status":  "must be one of [A, S, N/A]",
	"time_slot":     "must be an hourly slot between 12:00AM and 11:00PM",
	"calendar_date": "must be a date formatted as YYYY-MM-DD",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"len":   true,
	"gt":    true,
	"gte":   true,
	"lt":    true,
	"lte":   true,
	"oneof": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientGenericError                  = "an error occurred"

	ErrClientNoResidentSelected = "please select a resident first"
	ErrClientNoStatusChosen     = "please choose a sleep status"
	ErrClientEmptySelection     = "please select at least one time slot"
	ErrClientInvalidTimeRange   = "invalid time range selected"
	ErrClientSlotAlreadyFilled  = "this time slot has already been filled"
	ErrClientSlotInFlight       = "this time slot is already being submitted"
	ErrClientSlotNotEligible    = "this time slot cannot be filled yet"
	ErrClientRemoteAPIFailed    = "failed to reach the records service"
	ErrClientInvalidReportDate  = "invalid report month or year"
	ErrClientNoDateSelected     = "please select a date first"
)

// Error messages for developers
const (
	ErrDevInvalidInput                       = "invalid input"
	ErrDevCannotParseJSON                    = "cannot parse JSON into struct or other data types"
	ErrDevCannotMarshalJSON                  = "cannot convert struct or other data types to JSON"
	ErrDevInvalidFormat                      = "invalid %s format"
	ErrDevCreateHTTPRequest                  = "failed to create HTTP request"
	ErrDevSendHTTPRequest                    = "failed to send HTTP request"
	ErrDevValidationFailed                   = "validation failed"
	ErrDevMissingRequestID                   = "request id missing from context"
	ErrDevMissingAuthSession                 = "auth session missing from context"
	ErrDevURLParamValidation                 = "parameter %s validation failed"
	ErrDevAuthSigningMethod                  = "unexpected signing method"
	ErrDevAuthTokenInvalid                   = "invalid token"
	ErrDevAuthTokenMissing                   = "token missing"
	ErrDevAuthTokenClaimsMissing             = "token is missing user_id or role claim"
	ErrDevAuthAPIKeyInvalid                  = "invalid api key"
	ErrDevAuthRoleNotPermitted               = "role %s is not permitted for this operation"
	ErrDevServerProcess                      = "server failed to process something related to machine system"
	ErrDevServerDeadlineExceeded             = "deadline exceeded"
	ErrDevRemoteAPIStatus                    = "remote API %s responded with status %d"
	ErrDevRemoteAPIPayloadError              = "remote API %s returned error payload"
	ErrDevRemoteAPIDecode                    = "failed to decode remote API %s response"
	ErrDevRemoteAPIRateLimit                 = "remote API rate limiter wait failed"
	ErrDevSleepPrecondition                  = "sleep submission precondition failed"
	ErrDevSleepSelection                     = "sleep slot selection rejected"
	ErrDevReportPeriod                       = "invalid report period month=%d year=%d"
	ErrDevReportCSV                          = "failed to write report csv"
	ErrDevDBFailedToInsertDocument           = "failed to insert document into database"
	ErrDevDBFailedToFindDocument             = "failed when do find document on database"
	ErrDevDBFailedToIterateDocs              = "failed when iterating documents from database"
	ErrDevMinioFailedToCreateObject          = "failed to create object into minio storage with bucket name '%s'"
	ErrDevMinioFailedToGetObjectPresignedURL = "failed to get object URL from minio storage with bucket name '%s'"
	ErrDevRedisSetData                       = "failed to SET data into redis"
	ErrDevRedisGetData                       = "failed to GET data from redis"
	ErrDevRedisDeleteData                    = "failed to DELETE data from redis"
	ErrDevRedisUnlock                        = "failed to release redis lock"
	ErrDevRabbitMQPublish                    = "failed to publish message to queue %s"
)
