package middleware

import (
	"net/http"

	"my-chat/internal/transport/httpdto"
	"my-chat/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler logs errors handlers attached with c.Error. Handlers normally
// write their own response; if none was written a generic 500 is sent.
func ErrorHandler(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		if l != nil {
			for _, ginErr := range c.Errors {
				l.ErrorCtx(c.Request.Context(), "request error", ginErr.Err)
			}
		}
		if !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, httpdto.NewMessageResponse("Server error"))
		}
	}
}
