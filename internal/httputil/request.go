package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"icatdirect/internal/config"
)

// ParseJSON decodes JSON from the request body into the given destination.
// The body is limited to config.MaxRequestBodyBytes.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxRequestBodyBytes)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	return nil
}

// QueryUint reads a non-negative integer query parameter.
// Missing parameters yield defaultValue.
func QueryUint(r *http.Request, name string, defaultValue uint) (uint, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue, nil
	}

	n, err := strconv.ParseUint(raw, 10, 63)
	if err != nil {
		return 0, fmt.Errorf("%s must be a non-negative integer", name)
	}
	return uint(n), nil
}

// QueryString reads a query parameter, falling back to defaultValue when absent
func QueryString(r *http.Request, name, defaultValue string) string {
	if v := r.URL.Query().Get(name); v != "" {
		return v
	}
	return defaultValue
}

// QueryStrings returns every value of a repeated query parameter, skipping empty ones
func QueryStrings(r *http.Request, name string) []string {
	var values []string
	for _, v := range r.URL.Query()[name] {
		if v != "" {
			values = append(values, v)
		}
	}
	return values
}
