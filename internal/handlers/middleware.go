package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ctxUsername  = "username"
	ctxRequestID = "requestId"

	requestIDHeader = "X-Request-ID"
)

// sessionMiddleware resolves the session cookie. Anonymous requests are
// redirected to the login page instead of getting an error status.
func (h *Handler) sessionMiddleware(c *gin.Context) {
	token, err := c.Cookie(sessionCookie)
	if err != nil || token == "" {
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
		return
	}

	username, ok := h.services.Resolve(token)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
		return
	}

	// store in Gin context
	c.Set(ctxUsername, username)
	c.Next()
}

// requestLogger tags each request with an ID and logs it once it completes.
func (h *Handler) requestLogger(c *gin.Context) {
	start := time.Now()

	rid := c.GetHeader(requestIDHeader)
	if rid == "" {
		rid = uuid.NewString()
	}
	c.Set(ctxRequestID, rid)
	c.Header(requestIDHeader, rid)

	c.Next()

	if h.log == nil {
		return
	}
	h.log.Infow("http_request",
		"request_id", rid,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"latency", time.Since(start),
		"user", c.GetString(ctxUsername),
	)
}
