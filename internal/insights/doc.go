// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

/*
Package insights turns a finished recommendation run into narrative career
insights using a text-generation model.

The engine never depends on this package. The API calls it after a
successful recommendation when the client asks for insights, and any failure
here is reported next to the recommendations instead of failing the request.

Flow:

	summary := insights.BuildSummary(&profile, resp, similar)
	out, err := insights.Generate(ctx, generator, summary)

Generators:

  - GeminiGenerator: Google Gemini via google.golang.org/genai
  - BreakerGenerator: wraps any Generator with a sony/gobreaker circuit
    breaker so an unavailable model is not called on every request

NewGemini returns a Gemini generator already wrapped in a breaker.

Model output is expected to be a JSON object. Parse extracts the outermost
object from the text; when the text holds no valid object the raw text is
returned as Narrative.
*/
package insights
