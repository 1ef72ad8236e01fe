// Package errors provides structured error codes shared by the landing
// service's fetch, render and transport layers.
package errors

import (
	"net/http"

	"google.golang.org/grpc/codes"
)

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Configuration errors
	CodeEndpointMissing     Code = "ENDPOINT_MISSING"
	CodeEndpointPlaceholder Code = "ENDPOINT_PLACEHOLDER"

	// Content source errors
	CodeFetchFailed  Code = "FETCH_FAILED"
	CodeDecodeFailed Code = "DECODE_FAILED"

	// Page shell errors
	CodeShellInvalid   Code = "SHELL_INVALID"
	CodeElementMissing Code = "ELEMENT_MISSING"
)

// Misconfigured reports whether the code describes an operator
// configuration problem rather than a runtime failure.
func (c Code) Misconfigured() bool {
	return c == CodeEndpointMissing || c == CodeEndpointPlaceholder
}

// HTTPStatus maps domain codes to the status used for a page response.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeEndpointMissing, CodeEndpointPlaceholder:
		return http.StatusServiceUnavailable
	case CodeFetchFailed, CodeDecodeFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	case CodeEndpointMissing, CodeEndpointPlaceholder:
		return codes.FailedPrecondition
	case CodeFetchFailed, CodeDecodeFailed:
		return codes.Unavailable
	default:
		return codes.Internal
	}
}
