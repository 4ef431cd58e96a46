// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

package api

import (
	"github.com/tomtom215/careermatch/internal/recommend"
)

// RecommendationRequest is the body of POST /api/v1/recommendations.
type RecommendationRequest struct {
	UserProfile *recommend.UserProfile `json:"userProfile" validate:"required"`
	Options     RecommendationOptions  `json:"options"`
}

// RecommendationOptions are optional; nil fields take their defaults.
type RecommendationOptions struct {
	K               *int  `json:"k,omitempty" validate:"omitempty,gte=1"`
	UseCache        *bool `json:"useCache,omitempty"`
	IncludeDebug    *bool `json:"includeDebug,omitempty"`
	IncludeInsights *bool `json:"includeInsights,omitempty"`
	SaveToDatabase  *bool `json:"saveToDatabase,omitempty"`
}

// engineOptions resolves defaults: cache on, debug and insights off, audit
// on. A missing K leaves the engine's configured default in place.
func (o *RecommendationOptions) engineOptions() recommend.Options {
	opts := recommend.DefaultOptions()
	if o.K != nil {
		opts.K = *o.K
	}
	if o.UseCache != nil {
		opts.UseCache = *o.UseCache
	}
	if o.IncludeDebug != nil {
		opts.IncludeDebug = *o.IncludeDebug
	}
	if o.SaveToDatabase != nil {
		opts.SkipAudit = !*o.SaveToDatabase
	}
	return opts
}

func (o *RecommendationOptions) wantsInsights() bool {
	return o.IncludeInsights != nil && *o.IncludeInsights
}

// ProfileRequest is the body of the profile endpoints.
type ProfileRequest struct {
	UserProfile *recommend.UserProfile `json:"userProfile" validate:"required"`

	// Limit caps the similar profiles returned; 0 selects the default.
	Limit int `json:"limit,omitempty" validate:"gte=0,lte=50"`
}
