// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

package models

import (
	"math"
	"sort"
	"strings"

	"github.com/tomtom215/careermatch/internal/insights"
	"github.com/tomtom215/careermatch/internal/recommend"
)

// KeySkillLevel is the minimum required level for a skill to be listed
// as a key skill of a career.
const KeySkillLevel = 7.0

// CareerView is one recommended career in presentation form.
type CareerView struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Match           int      `json:"match"`
	Description     string   `json:"description"`
	Skills          []string `json:"skills"`
	Salary          string   `json:"salary"`
	Outlook         string   `json:"outlook"`
	Reasoning       string   `json:"reasoning"`
	Industry        string   `json:"industry"`
	ExperienceLevel string   `json:"experienceLevel"`
	WorkEnvironment string   `json:"workEnvironment"`
	Distance        float64  `json:"distance"`
	Source          string   `json:"source"`
}

// RecommendationsData is the payload of a recommendation response.
type RecommendationsData struct {
	AssessmentID  string                    `json:"assessmentId,omitempty"`
	UserID        string                    `json:"userId,omitempty"`
	Careers       []CareerView              `json:"careers"`
	Analysis      recommend.AnalysisSummary `json:"analysis"`
	Debug         *recommend.DebugInfo      `json:"debug,omitempty"`
	Insights      *insights.Insights        `json:"insights,omitempty"`
	InsightsError string                    `json:"insightsError,omitempty"`
}

// NewCareerView renders a neighbor result. Match is the rounded similarity,
// Skills lists required skills at KeySkillLevel or above (highest first) and
// Reasoning joins the match reasons into one sentence list.
func NewCareerView(r *recommend.NeighborResult) CareerView {
	c := &r.Career
	return CareerView{
		ID:              c.ID,
		Title:           c.Title,
		Match:           int(math.Round(r.Similarity)),
		Description:     c.Description,
		Skills:          keySkills(c.RequiredSkills),
		Salary:          c.SalaryRange,
		Outlook:         c.GrowthOutlook,
		Reasoning:       strings.Join(r.MatchReasons, ". "),
		Industry:        c.Industry,
		ExperienceLevel: c.ExperienceLevel,
		WorkEnvironment: c.WorkEnvironment,
		Distance:        r.Distance,
		Source:          "knn",
	}
}

// NewCareerViews renders results in order. The result is never nil.
func NewCareerViews(results []recommend.NeighborResult) []CareerView {
	views := make([]CareerView, len(results))
	for i := range results {
		views[i] = NewCareerView(&results[i])
	}
	return views
}

func keySkills(required map[string]float64) []string {
	skills := make([]string, 0, len(required))
	for name, level := range required {
		if level >= KeySkillLevel {
			skills = append(skills, name)
		}
	}
	sort.Slice(skills, func(i, j int) bool {
		li, lj := required[skills[i]], required[skills[j]]
		if li != lj {
			return li > lj
		}
		return skills[i] < skills[j]
	})
	return skills
}
