package middleware

import (
	"bytes"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/json"
	"io"
	"strings"

	"dailypay-backend/internal/logger"
	appErrors "dailypay-backend/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	AdminSecretHeader = "X-Admin-Secret"
	adminSecretField  = "adminSecret"
)

// AdminSecretMiddleware gates a route group behind the shared admin secret.
// The secret is read from the header, then the query string, then a JSON body
// field. An empty configured secret disables the group with a 503.
func AdminSecretMiddleware(secret string) gin.HandlerFunc {
	configured := secret != ""
	want := sha256.Sum256([]byte(secret))

	return func(c *gin.Context) {
		if !configured {
			logger.Error("Admin route hit with no ADMIN_SECRET configured",
				zap.String("request_id", GetRequestID(c)),
				zap.String("path", c.Request.URL.Path),
			)
			c.Error(appErrors.ErrAdminMisconfigured)
			c.Abort()
			return
		}

		supplied := suppliedAdminSecret(c)
		got := sha256.Sum256([]byte(supplied))
		if supplied == "" || subtle.ConstantTimeCompare(got[:], want[:]) != 1 {
			logger.Warn("Invalid admin secret",
				zap.String("request_id", GetRequestID(c)),
				zap.String("ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
			)
			c.Error(appErrors.ErrInvalidAdminSecret)
			c.Abort()
			return
		}

		c.Next()
	}
}

func suppliedAdminSecret(c *gin.Context) string {
	if v := strings.TrimSpace(c.GetHeader(AdminSecretHeader)); v != "" {
		return v
	}
	if v := strings.TrimSpace(c.Query(adminSecretField)); v != "" {
		return v
	}
	return secretFromBody(c)
}

// secretFromBody peeks at a JSON body and puts it back for the handler.
// Whatever the decoder consumed is replayed ahead of the unread remainder.
// Body size is bounded by RequestSizeLimitMiddleware.
func secretFromBody(c *gin.Context) string {
	if c.Request.Body == nil || c.ContentType() != gin.MIMEJSON {
		return ""
	}

	var consumed bytes.Buffer
	rest := c.Request.Body
	var body struct {
		AdminSecret string `json:"adminSecret"`
	}
	err := json.NewDecoder(io.TeeReader(rest, &consumed)).Decode(&body)
	c.Request.Body = replayBody{Reader: io.MultiReader(&consumed, rest), Closer: rest}
	if err != nil {
		return ""
	}
	return strings.TrimSpace(body.AdminSecret)
}

type replayBody struct {
	io.Reader
	io.Closer
}
