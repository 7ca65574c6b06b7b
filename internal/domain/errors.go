package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors - use with errors.Is()
var (
	// ErrInvalidArgument is returned before any query is issued when a caller
	// supplies a value outside its whitelist (sort column, sort order, UUID, path).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnknownQuery is returned when a symbolic query name is absent from the catalog.
	ErrUnknownQuery = errors.New("unknown query")

	// ErrQueryExecution matches every failure reported by the database.
	ErrQueryExecution = errors.New("query execution failed")

	ErrUnauthorized = errors.New("unauthorized")
)

// InvalidArgumentError names the offending argument
type InvalidArgumentError struct {
	Argument string
	Message  string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Argument, e.Message)
}

func (e *InvalidArgumentError) StatusCode() int { return http.StatusBadRequest }

// Is allows errors.Is() to match against ErrInvalidArgument
func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// NewInvalidArgument builds an InvalidArgumentError with a formatted message
func NewInvalidArgument(argument, format string, args ...interface{}) error {
	return &InvalidArgumentError{
		Argument: argument,
		Message:  fmt.Sprintf(format, args...),
	}
}

// QueryExecutionError wraps a database failure with the query that produced it.
// The driver error stays reachable through errors.As.
type QueryExecutionError struct {
	Query string
	Err   error
}

func (e *QueryExecutionError) Error() string {
	return fmt.Sprintf("query %s: %v", e.Query, e.Err)
}

func (e *QueryExecutionError) Unwrap() error { return e.Err }

func (e *QueryExecutionError) StatusCode() int { return http.StatusBadGateway }

// Is allows errors.Is() to match against ErrQueryExecution
func (e *QueryExecutionError) Is(target error) bool {
	return target == ErrQueryExecution
}
