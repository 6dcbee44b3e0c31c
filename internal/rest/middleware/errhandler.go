package middleware

import (
	"net/http"
	"strings"

	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/afyastaff/afyastaff/internal/logger"
	"github.com/afyastaff/afyastaff/internal/sentry"
	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error attached to the gin context as an ierr.ErrorResponse
func ErrorHandler(sentrySvc *sentry.Service, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		kind := ierr.KindOf(err)
		status := ierr.HTTPStatusFromErr(err)

		if status >= http.StatusInternalServerError {
			log.Errorw("request failed",
				"error", err,
				"method", c.Request.Method,
				"path", c.FullPath(),
				"status", status)
			sentrySvc.CaptureException(c.Request.Context(), err)
		}

		c.JSON(status, ierr.ErrorResponse{
			Success: false,
			Error: ierr.ErrorDetail{
				Display:   getDisplayMessage(err, kind),
				Kind:      kind,
				Retryable: kind == ierr.KindTransient,
				Details:   ierr.ReportableDetails(err),
			},
		})
	}
}

func getDisplayMessage(err error, kind ierr.Kind) string {
	for _, hint := range errors.GetAllHints(err) {
		if hint = strings.TrimSpace(hint); hint != "" {
			return hint
		}
	}
	if kind == ierr.KindInternal {
		return "An unexpected error occurred"
	}
	return ierr.DisplayMessage(err)
}
