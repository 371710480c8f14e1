package middleware

import (
	"net/http"

	"github.com/beginvegan/backend/internal/apperr"
	"github.com/beginvegan/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ErrorHandler renders the last error recorded with c.Error as the standard
// envelope. Server-side failures are logged with their cause.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		status := apperr.HTTPStatus(err)
		if status >= http.StatusInternalServerError {
			log.Ctx(c.Request.Context()).Error().Err(err).
				Str("method", c.Request.Method).
				Str("path", c.FullPath()).
				Msg("request failed")
		}
		c.JSON(status, types.APIResponse{
			Check: false,
			Information: types.ErrorInfo{
				Code:    string(apperr.KindOf(err)),
				Message: apperr.Message(err),
			},
		})
	}
}

// Recovery turns a panic into a 500 envelope.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Ctx(c.Request.Context()).Error().Interface("panic", recovered).
			Str("path", c.Request.URL.Path).
			Msg("recovered from panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError, types.APIResponse{
			Check: false,
			Information: types.ErrorInfo{
				Code:    string(apperr.KindInternal),
				Message: "internal server error",
			},
		})
	})
}
