package handler

import (
	"net/http"
	"time"

	appErrors "dailypay-backend/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errInvalidBody = appErrors.Validation("Invalid request body", nil)

// respondWithError hands err to middleware.ErrorHandler.
func respondWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respondWithError(c, appErrors.Validation(errInvalidBody.Message, err))
		return false
	}
	return true
}

// bindOptionalJSON accepts an empty body and leaves req untouched.
func bindOptionalJSON(c *gin.Context, req interface{}) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	return bindJSON(c, req)
}

func paramUUID(c *gin.Context, name, notFound string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respondWithError(c, appErrors.NotFound(notFound))
		return uuid.Nil, false
	}
	return id, true
}

type sessionCookie struct {
	name   string
	secure bool
}

func (s sessionCookie) set(c *gin.Context, token string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.name, token, int(ttl.Seconds()), "/", "", s.secure, true)
}

func (s sessionCookie) clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.name, "", -1, "/", "", s.secure, true)
}
