package httputil

import (
	"context"
	"net/http"
)

// Context key type to avoid collisions
type contextKey string

const (
	userKey contextKey = "icatUser"
)

// WithUser adds the authenticated iRODS user name to the request context
func WithUser(r *http.Request, username string) *http.Request {
	ctx := context.WithValue(r.Context(), userKey, username)
	return r.WithContext(ctx)
}

// GetUser retrieves the iRODS user name from context, returns empty string if not found
func GetUser(r *http.Request) string {
	username, _ := r.Context().Value(userKey).(string)
	return username
}
