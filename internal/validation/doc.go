// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

/*
Package validation provides struct validation using go-playground/validator v10.

It provides a thread-safe singleton validator instance, reports fields by
their JSON path (for example "personalityTraits[1].score") and translates
failures into the API's VALIDATION_ERROR format.

Custom validators:
  - notblank: the string contains at least one non-space character

Example usage:

	var req recommend.Request
	if verr := validation.ValidateStruct(&req); verr != nil {
	    apiErr := verr.ToAPIError()
	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
	    return
	}

Assessment types in internal/recommend carry their own validate tags, so
score ranges (skills 0-10, traits 0-100) and list limits are enforced at
the API boundary before a profile reaches the engine.
*/
package validation
