/*-------------------------------------------------------------------------
 *
 * errors.go
 *    API error types and classification
 *
 * Maps domain errors onto HTTP status codes. Store sentinels become
 * 404/409, auth failures 401, upstream model or vector store outages
 * 503. Responses carry the request ID for correlation.
 *
 * Copyright (c) 2024-2026, ShopSmart, Inc. <platform@shopsmart.dev>
 *
 * IDENTIFICATION
 *    shopsmart-retail-agent/internal/api/errors.go
 *
 *-------------------------------------------------------------------------
 */

package api

import (
	"errors"
	"net/http"

	"github.com/vinovator/shopsmart-retail-agent/internal/db"
	"github.com/vinovator/shopsmart-retail-agent/internal/embedding"
	"github.com/vinovator/shopsmart-retail-agent/internal/llm"
	"github.com/vinovator/shopsmart-retail-agent/internal/vectorstore"
)

/* APIError is an error with an HTTP status code */
type APIError struct {
	Code      int
	Message   string
	Err       error
	RequestID string
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

/* ErrorResponse is the JSON body of an error response */
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
}

/* NewError creates an API error */
func NewError(code int, message string, err error) *APIError {
	return &APIError{Code: code, Message: message, Err: err}
}

/* WrapError attaches a request ID to an API error */
func WrapError(err *APIError, requestID string) *APIError {
	return &APIError{
		Code:      err.Code,
		Message:   err.Message,
		Err:       err.Err,
		RequestID: requestID,
	}
}

/* Common API errors */
var (
	ErrUnauthorized       = NewError(http.StatusUnauthorized, "unauthorized", nil)
	ErrNotFoundResponse   = NewError(http.StatusNotFound, "not found", nil)
	ErrServiceUnavailable = NewError(http.StatusServiceUnavailable, "service unavailable", nil)
)

func withCause(base *APIError, err error, requestID string) *APIError {
	return &APIError{
		Code:      base.Code,
		Message:   base.Message,
		Err:       err,
		RequestID: requestID,
	}
}

/* ClassifyError maps a domain error onto an API error */
func ClassifyError(err error, requestID string) *APIError {
	switch {
	case errors.Is(err, db.ErrNotFound):
		return withCause(ErrNotFoundResponse, err, requestID)
	case errors.Is(err, db.ErrTicketDecided):
		return &APIError{Code: http.StatusConflict, Message: "ticket already decided", Err: err, RequestID: requestID}
	case errors.Is(err, db.ErrOrderRefunded):
		return &APIError{Code: http.StatusConflict, Message: "order already refunded", Err: err, RequestID: requestID}
	case errors.Is(err, llm.ErrUnavailable),
		errors.Is(err, embedding.ErrUnavailable),
		errors.Is(err, vectorstore.ErrUnavailable):
		return withCause(ErrServiceUnavailable, err, requestID)
	default:
		return &APIError{Code: http.StatusInternalServerError, Message: "internal error", Err: err, RequestID: requestID}
	}
}
