// Package utils provides utility functions and helpers for the application.
// This file implements the standardized API response envelope used by every
// JSON endpoint, plus a plain stylesheet writer for the public CSS route.
//
// Every JSON response has the shape {success, data, error, meta} so clients
// can parse success and failure the same way.
package utils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/OldNotice_Backend/internal/constants"
)

// Response represents a standardized API response.
// All API endpoints return responses in this format for consistency.
type Response struct {
	Success bool       `json:"success"`         // Whether the request was successful
	Data    any        `json:"data,omitempty"`  // The response data (omitted for error responses)
	Error   *ErrorInfo `json:"error,omitempty"` // Error information (omitted for successful responses)
	Meta    *MetaInfo  `json:"meta,omitempty"`  // Metadata about the response
}

// ErrorInfo represents error information in the response.
type ErrorInfo struct {
	Code    string            `json:"code"`              // A machine-readable error code
	Message string            `json:"message"`           // A human-readable error message
	Details map[string]string `json:"details,omitempty"` // Additional details about the error (e.g., validation errors)
}

// MetaInfo carries response metadata. Render responses report the decision
// reason here so the data payload stays the notice itself.
type MetaInfo struct {
	Reason    string `json:"reason,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// JSON sends a JSON response with the given status code and data.
// This is the primary function for sending successful responses.
//
// The function automatically sets the success flag based on the status code.
func JSON(w http.ResponseWriter, statusCode int, data any) {
	response := Response{
		Success: statusCode >= 200 && statusCode < 300,
		Data:    data,
	}

	SendJSON(w, statusCode, response)
}

// JSONWithMeta sends a successful JSON response carrying metadata.
func JSONWithMeta(w http.ResponseWriter, statusCode int, data any, meta *MetaInfo) {
	response := Response{
		Success: statusCode >= 200 && statusCode < 300,
		Data:    data,
		Meta:    meta,
	}

	SendJSON(w, statusCode, response)
}

// CSS sends a stylesheet body with a public cache lifetime.
func CSS(w http.ResponseWriter, stylesheet string, maxAge int) {
	w.Header().Set(constants.HeaderContentType, constants.ContentTypeCSS)
	if maxAge > 0 {
		w.Header().Set(constants.HeaderCacheControl, fmt.Sprintf("public, max-age=%d", maxAge))
	} else {
		w.Header().Set(constants.HeaderCacheControl, constants.CacheControlNoStore)
	}
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write([]byte(stylesheet)); err != nil {
		log.Error().Err(err).Msg("Failed to write stylesheet response")
	}
}

// Error sends an error response with the given status code and error information.
//
// Parameters:
//   - w: The HTTP response writer
//   - statusCode: The HTTP status code
//   - code: A machine-readable error code
//   - message: A human-readable error message
//   - details: Additional details about the error (e.g., validation errors)
func Error(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	response := Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
			Details: details,
		},
	}

	SendJSON(w, statusCode, response)
}

// ErrorFromAppError sends an error response based on an AppError.
// The error code is derived from the sentinel the AppError wraps.
func ErrorFromAppError(w http.ResponseWriter, err *AppError) {
	errCode := constants.CodeInternalError
	switch err.Err {
	case ErrNotFound:
		errCode = constants.CodeNotFound
	case ErrBadRequest:
		errCode = constants.CodeBadRequest
	case ErrUnauthorized:
		errCode = constants.CodeUnauthorized
	case ErrForbidden:
		errCode = constants.CodeForbidden
	case ErrValidation:
		errCode = constants.CodeValidationError
	case ErrDuplicate:
		errCode = constants.CodeDuplicateResource
	case ErrExpiredToken:
		errCode = constants.CodeTokenExpired
	case ErrInvalidToken:
		errCode = constants.CodeTokenInvalid
	}

	// Field errors become a single detail; multi-field errors carry their own map
	var details map[string]string
	if err.Field != "" {
		details = map[string]string{
			err.Field: err.Message,
		}
	} else if len(err.Details) > 0 {
		details = make(map[string]string, len(err.Details))
		for k, v := range err.Details {
			details[k] = fmt.Sprint(v)
		}
	}

	if err.StatusCode >= constants.StatusInternalServerError && err.DevInfo != "" {
		LogError(err, map[string]any{
			"status_code": err.StatusCode,
			"dev_info":    err.DevInfo,
		})
	}

	Error(w, err.StatusCode, errCode, err.Message, details)
}

// SendJSON is a helper function to send JSON data with proper headers.
// This handles JSON marshaling and error handling for all response types.
func SendJSON(w http.ResponseWriter, statusCode int, data any) {
	// Marshal before writing the header so a failure can still change the status
	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal JSON response")
		w.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
		w.WriteHeader(http.StatusInternalServerError)
		if _, err := w.Write([]byte(`{"success":false,"error":{"code":"internal_error","message":"Failed to generate response"}}`)); err != nil {
			log.Error().Err(err).Msg("Failed to write error response")
		}
		return
	}

	w.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
	w.WriteHeader(statusCode)

	if _, err = w.Write(jsonData); err != nil {
		// Log write errors but don't try to recover
		log.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// NoContent sends a 204 No Content response.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(constants.StatusNoContent)
}

// BadRequest sends a 400 Bad Request response with the given message.
func BadRequest(w http.ResponseWriter, message string, details map[string]string) {
	Error(w, constants.StatusBadRequest, constants.CodeBadRequest, message, details)
}

// Unauthorized sends a 401 Unauthorized response with the given message.
// An empty message falls back to a default.
func Unauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = constants.MsgAuthRequired
	}
	Error(w, constants.StatusUnauthorized, constants.CodeUnauthorized, message, nil)
}

// NotFound sends a 404 Not Found response with the given message.
func NotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = constants.MsgResourceNotFound
	}
	Error(w, constants.StatusNotFound, constants.CodeNotFound, message, nil)
}

// MethodNotAllowed sends a 405 Method Not Allowed response.
func MethodNotAllowed(w http.ResponseWriter) {
	Error(w, constants.StatusMethodNotAllowed, constants.CodeMethodNotAllowed, "Method not allowed", nil)
}

// InternalServerError sends a 500 Internal Server Error response.
// The error is logged but not exposed to the client.
func InternalServerError(w http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("Internal server error")
	Error(w, constants.StatusInternalServerError, constants.CodeInternalError, constants.MsgInternalServerError, nil)
}

// ServiceUnavailable sends a 503 response, used by the health check.
func ServiceUnavailable(w http.ResponseWriter, message string) {
	Error(w, constants.StatusServiceUnavailable, constants.CodeServiceUnavailable, message, nil)
}
