package middleware

import (
	"crypto/subtle"

	"github.com/afyastaff/afyastaff/internal/config"
	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/afyastaff/afyastaff/internal/types"
	"github.com/gin-gonic/gin"
)

// CronKeyMiddleware admits scheduler calls carrying the configured cron key.
// The cron endpoints are closed when no key is configured.
func CronKeyMiddleware(cfg *config.Configuration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !secretMatches(cfg.Cron.Key, c.GetHeader(types.HeaderCronKey)) {
			c.Error(ierr.NewError("invalid cron key").
				WithHint("Invalid cron key").
				Mark(ierr.ErrPermissionDenied))
			c.Abort()
			return
		}
		c.Next()
	}
}

// MpesaCallbackMiddleware admits STK callbacks whose URL carries the token the
// gateway registered with Daraja. Daraja does not sign callbacks, so the route
// is closed when no token is configured.
func MpesaCallbackMiddleware(cfg *config.Configuration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !secretMatches(cfg.Mpesa.CallbackToken, c.Query(types.QueryCallbackToken)) {
			c.Error(ierr.NewError("invalid mpesa callback token").
				WithHint("Invalid callback token").
				Mark(ierr.ErrPermissionDenied))
			c.Abort()
			return
		}
		c.Next()
	}
}

func secretMatches(expected, given string) bool {
	if expected == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(given), []byte(expected)) == 1
}
