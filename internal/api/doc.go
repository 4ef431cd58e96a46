// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

/*
Package api provides the HTTP interface of the recommendation service.

Routing uses go-chi/chi/v5 with go-chi/httprate for per-IP rate limiting.
Every response uses the models.APIResponse envelope.

Endpoints:

	GET  /api/v1/health/live                 process liveness
	GET  /api/v1/health/ready                database reachability
	POST /api/v1/recommendations             KNN career recommendations
	GET  /api/v1/recommendations/status      catalog, cache and audit statistics
	GET  /api/v1/recommendations/summary     stored summary by assessmentId or userId
	POST /api/v1/profile/analysis            strengths and growth areas of a profile
	POST /api/v1/profile/similar             closest recent assessment profiles
	POST /api/v1/cache/purge                 remove expired result cache entries
	GET  /metrics                            Prometheus metrics

Recommendation request:

	{
	  "userProfile": {"skillResults": [...], "personalityTraits": [...], ...},
	  "options": {"k": 5, "useCache": true, "includeDebug": false,
	              "includeInsights": false, "saveToDatabase": true}
	}

Omitted options take the defaults shown. Validation failures return 400
with the offending JSON field path. An empty catalog returns 503; any other
engine failure returns 500 with a generic message and is logged with the
request ID.

Insights are generated only when requested and configured. Generation
failures are reported in the insightsError field and never fail the request.
*/
package api
