// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

/*
Package models defines the wire structures of the HTTP API.

Engine types (profiles, careers, neighbor results) live in internal/recommend
and are serialized directly. This package holds the envelope shared by every
endpoint and the presentation views derived from engine results:

  - APIResponse: standard response wrapper with status, data, metadata and error
  - CareerView: one recommendation as shown to a client
  - RecommendationsData: the payload of POST /api/v1/recommendations
*/
package models
