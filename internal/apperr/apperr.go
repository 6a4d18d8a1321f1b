// Package apperr defines the application failure taxonomy and its HTTP
// mapping. A NotFoundError covers both absent entities and entities owned by
// another user so callers cannot probe for other users' data.
package apperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ErrUnauthenticated is returned when no valid session accompanies a request.
var ErrUnauthenticated = errors.New("authentication required")

// NotFoundError marks an entity as absent or not owned by the caller.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found or access denied"
}

// NotFound builds a NotFoundError for the named resource.
func NotFound(resource string) error {
	return &NotFoundError{Resource: resource}
}

// ValidationError marks malformed or missing input, detected before any write.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validation builds a ValidationError with a formatted message.
func Validation(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// StorageError wraps a persistence failure, reported after rollback.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string {
	return "database error: " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Storage wraps err as a StorageError.
func Storage(err error) error {
	return &StorageError{Err: err}
}

// StatusCode maps an error to its HTTP status.
func StatusCode(err error) int {
	var notFound *NotFoundError
	var validation *ValidationError
	var storage *StorageError
	var fiberErr *fiber.Error

	switch {
	case errors.As(err, &notFound):
		return fiber.StatusNotFound
	case errors.As(err, &validation):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrUnauthenticated):
		return fiber.StatusUnauthorized
	case errors.As(err, &storage):
		return fiber.StatusInternalServerError
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler renders every handler error as {"error": message} with the
// status from StatusCode. Wired into fiber.Config.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return c.Status(StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
}
