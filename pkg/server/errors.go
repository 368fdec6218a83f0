package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Messages returned to API clients.
const (
	MsgInvalidBody     = "invalid JSON body"
	MsgBodyTooLarge    = "request body too large"
	MsgRenderFailed    = "failed to generate PDF"
	MsgUserNotFound    = "portfolio not found"
	MsgLoadFailed      = "failed to load portfolio"
	MsgInvalidSelector = "section flags must be true or false"
)

// apiError is an HTTP status with a client-facing message.
type apiError struct {
	Status  int
	Message string
}

func (e apiError) Error() (msg string) {
	msg = e.Message
	return msg
}

func badRequest(msg string) (e apiError) {
	e = apiError{Status: http.StatusBadRequest, Message: msg}
	return e
}

// respondError writes {"error": msg} with the error's status.
func respondError(c *gin.Context, e apiError) {
	c.AbortWithStatusJSON(e.Status, gin.H{"error": e.Message})
}
