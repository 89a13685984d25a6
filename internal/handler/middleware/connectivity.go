package middleware

import (
	"errors"
	"net/http"

	"meetroom/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

var errOffline = errors.New("remote store unreachable")

// ConnectivityChecker reports whether the remote store is reachable.
type ConnectivityChecker interface {
	Online() bool
}

// RequireOnline rejects requests that only make sense against a reachable store.
func RequireOnline(checker ConnectivityChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !checker.Online() {
			httperr.AbortWithError(c, http.StatusConflict, errOffline, "Remote store is unreachable; writes stay queued", nil)
			return
		}
		c.Next()
	}
}
