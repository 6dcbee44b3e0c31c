package types

const (
	HeaderAuthorization = "Authorization"
	HeaderRequestID     = "X-Request-ID"
	// HeaderCronKey authenticates the scheduler calling the cron endpoints
	HeaderCronKey = "X-Cron-Key"
	// QueryCallbackToken carries the shared secret on the M-Pesa callback URL
	QueryCallbackToken = "token"
)
