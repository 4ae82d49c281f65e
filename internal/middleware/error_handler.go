package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"dailypay-backend/internal/logger"
	appErrors "dailypay-backend/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler renders the last error a handler pushed with c.Error.
// Outside development a 500 never exposes the underlying error text.
func ErrorHandler(development bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status, msg := appErrors.HTTPStatus(err)
		if status >= http.StatusInternalServerError {
			logger.WithRequestID(GetRequestID(c)).Error("Request failed",
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
			if development && status == http.StatusInternalServerError {
				msg = err.Error()
			}
		}

		c.AbortWithStatusJSON(status, gin.H{"error": msg})
	}
}

// Recovery turns a panic into a 500. Development responses carry the panic
// value and stack.
func Recovery(development bool) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		stack := string(debug.Stack())
		logger.WithRequestID(GetRequestID(c)).Error("Panic recovered",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("stack", stack),
		)

		if development {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": fmt.Sprint(recovered),
				"stack": stack,
			})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	})
}
