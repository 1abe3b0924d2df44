package rcerr

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

const (
	CodeNotFound       = "NOT_FOUND"
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeIntegrityError = "INTEGRITY_ERROR"
	CodeUpstreamError  = "UPSTREAM_ERROR"
	CodeInternalError  = "INTERNAL_ERROR"
)

var (
	// ErrNotFound is returned when a resource is not found.
	ErrNotFound = New(fiber.StatusNotFound, CodeNotFound, "resource not found with given parameters")

	// ErrInvalidReq is returned when a request is invalid.
	ErrInvalidReq = New(fiber.StatusBadRequest, CodeInvalidRequest, "invalid request: some or all request parameters are invalid")

	// ErrIntegrity is returned when the match summary and the timeline of one
	// match disagree with each other and the match cannot be processed.
	ErrIntegrity = New(fiber.StatusUnprocessableEntity, CodeIntegrityError, "match records are inconsistent and cannot be processed")

	// ErrUpstream is returned when a collaborator service misbehaves.
	ErrUpstream = New(fiber.StatusBadGateway, CodeUpstreamError, "upstream service error occurred")

	// ErrInternalError is returned when an internal error occurs.
	ErrInternalError = New(fiber.StatusInternalServerError, CodeInternalError, "internal server error occurred")
)

type Extras map[string]any

// NewInvalidViolations wraps field-level validation violations into an
// invalid-request error.
func NewInvalidViolations(violations any) *RiftError {
	return ErrInvalidReq.WithExtras(Extras{
		"violations": violations,
	})
}

type RiftError struct {
	StatusCode int    `example:"400"`
	ErrorCode  string `example:"INVALID_REQUEST"`
	Message    string `example:"invalid request: some or all request parameters are invalid"`
	Extras     *Extras
}

func New(statusCode int, errorCode string, message string) *RiftError {
	return &RiftError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

func (e RiftError) Msg(format string, parts ...any) *RiftError {
	e.Message = fmt.Sprintf(format, parts...)
	return &e
}

func (e RiftError) WithExtras(extras Extras) *RiftError {
	e.Extras = &extras
	return &e
}

func (e *RiftError) Error() string {
	return fmt.Sprintf("%s: %s", e.ErrorCode, e.Message)
}
