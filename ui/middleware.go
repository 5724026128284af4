package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sentidash/domain/core"
)

const requestIDHeader = "X-Request-ID"

func requestIDFrom(r *http.Request) string {
	if id := r.Header.Get(requestIDHeader); id != "" {
		return id
	}
	return core.NewID().String()
}

// ginRequestID echoes or assigns a request id
func ginRequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header(requestIDHeader, requestIDFrom(c.Request))
		c.Next()
	}
}

// requestID is the net/http form of ginRequestID
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(requestIDHeader, requestIDFrom(r))
		next.ServeHTTP(w, r)
	})
}

// isHTMX reports whether the request was issued by htmx
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
