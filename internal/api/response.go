// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/careermatch/internal/logging"
	"github.com/tomtom215/careermatch/internal/models"
	"github.com/tomtom215/careermatch/internal/validation"
)

// Error codes for API responses
const (
	ErrCodeBadRequest          = "BAD_REQUEST"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeRequestTooLarge     = "REQUEST_TOO_LARGE"
	ErrCodeValidationFailed    = "VALIDATION_FAILED"
	ErrCodeInternalError       = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable  = "SERVICE_UNAVAILABLE"
	ErrCodeRecommendationError = "RECOMMENDATION_ERROR"
)

// errBodyTooLarge marks a request body over the configured limit.
var errBodyTooLarge = errors.New("request body too large")

// sanitizeLogValue removes control characters from strings to prevent log injection attacks.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&result, "\\x%02x", r)
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON sends a JSON response with proper headers
func respondJSON(w http.ResponseWriter, r *http.Request, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")

	if response.Metadata.Timestamp.IsZero() {
		response.Metadata.Timestamp = time.Now().UTC()
	}
	response.Metadata.RequestID = logging.RequestIDFromContext(r.Context())

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondSuccess sends a success envelope.
func respondSuccess(w http.ResponseWriter, r *http.Request, data interface{}, meta models.Metadata) {
	respondJSON(w, r, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     data,
		Metadata: meta,
	})
}

// respondError sends an error response. err is logged, never returned to
// the client.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, err error) {
	respondErrorWithDetails(w, r, status, &models.APIError{Code: code, Message: message}, err)
}

func respondErrorWithDetails(w http.ResponseWriter, r *http.Request, status int, apiErr *models.APIError, err error) {
	if err != nil {
		logging.Ctx(r.Context()).Error().
			Str("code", sanitizeLogValue(apiErr.Code)).
			Str("error", sanitizeLogValue(err.Error())).
			Str("path", r.URL.Path).
			Msg("API Error")
	}

	respondJSON(w, r, status, &models.APIResponse{
		Status: "error",
		Error:  apiErr,
	})
}

// decodeJSON reads the whole body and decodes it into v. Bodies over the
// limit set by the router yield errBodyTooLarge.
func decodeJSON(r *http.Request, v interface{}) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errBodyTooLarge
		}
		return fmt.Errorf("read request body: %w", err)
	}
	if len(body) == 0 {
		return errors.New("request body is empty")
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// decodeAndValidate decodes and validates a request body, writing the error
// response itself. It reports whether the handler should continue.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := decodeJSON(r, v); err != nil {
		if errors.Is(err, errBodyTooLarge) {
			respondError(w, r, http.StatusRequestEntityTooLarge, ErrCodeRequestTooLarge, "Request body too large", nil)
			return false
		}
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "Invalid JSON request body", nil)
		return false
	}

	if verr := validation.ValidateStruct(v); verr != nil {
		apiErr := verr.ToAPIError()
		respondErrorWithDetails(w, r, http.StatusBadRequest, &models.APIError{
			Code:    ErrCodeValidationFailed,
			Message: apiErr.Message,
			Details: apiErr.Details,
		}, nil)
		return false
	}
	return true
}
