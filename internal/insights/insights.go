// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

package insights

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/careermatch/internal/recommend"
)

// ErrEmptyOutput is returned when the model produced no text.
var ErrEmptyOutput = errors.New("insights: model returned no text")

const (
	strongSkill   = 7.0
	dominantTrait = 70.0
	maxSkills     = 5
	maxTraits     = 3
	maxSimilar    = 3
	maxCareers    = 5
	notIdentified = "None identified"
	notSpecified  = "Not specified"
	defaultKLabel = 5
)

// Generator produces text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Summary is the model input derived from one recommendation run.
type Summary struct {
	TopSkills         []string `json:"topSkills"`
	DominantTraits    []string `json:"dominantTraits"`
	ExperienceLevel   string   `json:"experienceLevel"`
	Industry          string   `json:"industry"`
	WorkEnvironment   string   `json:"workEnvironment"`
	TotalCandidates   int      `json:"totalCandidates"`
	AverageSimilarity float64  `json:"averageSimilarity"`
	K                 int      `json:"k"`
	SimilarProfiles   []string `json:"similarProfiles"`
	TopCareers        []string `json:"topCareers"`
}

// CareerStep is one stage of a suggested career path.
type CareerStep struct {
	Role      string `json:"role"`
	Timeframe string `json:"timeframe"`
	Skills    string `json:"skills"`
	Reasoning string `json:"reasoning"`
}

// SkillGap is a skill worth developing.
type SkillGap struct {
	Name     string `json:"name"`
	Priority string `json:"priority"`
	Reason   string `json:"reason"`
}

// IndustryInsight rates one industry for the user.
type IndustryInsight struct {
	Name            string  `json:"name"`
	MatchPercentage float64 `json:"matchPercentage"`
	Reason          string  `json:"reason"`
	GrowthPotential string  `json:"growthPotential"`
}

// Insights is the parsed model output. Structured is false when the model
// did not return a usable JSON object; Narrative then holds its raw text.
type Insights struct {
	Interpretation    string            `json:"interpretation,omitempty"`
	Patterns          []string          `json:"patterns,omitempty"`
	CareerPath        []CareerStep      `json:"careerPath,omitempty"`
	SkillGaps         []SkillGap        `json:"skillGaps,omitempty"`
	IndustryInsights  []IndustryInsight `json:"industryInsights,omitempty"`
	NetworkingTips    []string          `json:"networkingTips,omitempty"`
	UniqueInsights    string            `json:"uniqueInsights,omitempty"`
	SuccessPredictors []string          `json:"successPredictors,omitempty"`
	Narrative         string            `json:"narrative,omitempty"`
	Structured        bool              `json:"structured"`
}

// BuildSummary collects what the model needs from a profile, its
// recommendation response and optionally the closest other profiles.
func BuildSummary(p *recommend.UserProfile, resp *recommend.Response, similar []recommend.UserProfile) Summary {
	s := Summary{
		TopSkills:       topSkills(p.SkillResults),
		DominantTraits:  topTraits(p.PersonalityTraits),
		ExperienceLevel: p.ExperienceLevel,
		Industry:        p.Preferences.Industry,
		WorkEnvironment: p.Preferences.WorkEnvironment,
		SimilarProfiles: []string{},
		TopCareers:      []string{},
		K:               defaultKLabel,
	}

	if resp != nil {
		s.TotalCandidates = resp.Analysis.TotalCandidates
		s.AverageSimilarity = resp.Analysis.AverageSimilarity
		if len(resp.Recommendations) > 0 {
			s.K = len(resp.Recommendations)
		}
		for i := range resp.Recommendations {
			if i == maxCareers {
				break
			}
			s.TopCareers = append(s.TopCareers, resp.Recommendations[i].Career.Title)
		}
	}

	for i := range similar {
		if i == maxSimilar {
			break
		}
		label := similar[i].Preferences.Industry
		if label == "" {
			label = notSpecified
		}
		if similar[i].ExperienceLevel != "" {
			label += " (" + similar[i].ExperienceLevel + ")"
		}
		s.SimilarProfiles = append(s.SimilarProfiles, label)
	}
	return s
}

func topSkills(skills []recommend.SkillResult) []string {
	strong := make([]recommend.SkillResult, 0, len(skills))
	for _, sk := range skills {
		if sk.Score >= strongSkill {
			strong = append(strong, sk)
		}
	}
	sort.SliceStable(strong, func(i, j int) bool { return strong[i].Score > strong[j].Score })

	out := make([]string, 0, maxSkills)
	for i, sk := range strong {
		if i == maxSkills {
			break
		}
		out = append(out, fmt.Sprintf("%s (%s/10)", sk.Skill, formatScore(sk.Score)))
	}
	return out
}

func topTraits(traits []recommend.PersonalityTrait) []string {
	dominant := make([]recommend.PersonalityTrait, 0, len(traits))
	for _, t := range traits {
		if t.Score >= dominantTrait {
			dominant = append(dominant, t)
		}
	}
	sort.SliceStable(dominant, func(i, j int) bool { return dominant[i].Score > dominant[j].Score })

	out := make([]string, 0, maxTraits)
	for i, t := range dominant {
		if i == maxTraits {
			break
		}
		out = append(out, fmt.Sprintf("%s (%s%%)", t.Trait, formatScore(t.Score)))
	}
	return out
}

func formatScore(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}

func joinOr(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(items, ", ")
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

// BuildPrompt renders the counselling prompt for a summary.
func BuildPrompt(s Summary) string {
	var b strings.Builder
	b.WriteString("You are an expert career counselor analyzing nearest-neighbor career matching results.\n\n")

	b.WriteString("User Profile Summary:\n")
	fmt.Fprintf(&b, "- Top Skills: %s\n", joinOr(s.TopSkills, notIdentified))
	fmt.Fprintf(&b, "- Dominant Personality Traits: %s\n", joinOr(s.DominantTraits, notIdentified))
	fmt.Fprintf(&b, "- Experience Level: %s\n", orDefault(s.ExperienceLevel, notSpecified))
	fmt.Fprintf(&b, "- Preferred Industry: %s\n", orDefault(s.Industry, notSpecified))
	fmt.Fprintf(&b, "- Work Environment: %s\n\n", orDefault(s.WorkEnvironment, notSpecified))

	b.WriteString("Matching Results:\n")
	fmt.Fprintf(&b, "- Total Careers Analyzed: %d\n", s.TotalCandidates)
	fmt.Fprintf(&b, "- Average Similarity Score: %s%%\n", formatScore(s.AverageSimilarity))
	fmt.Fprintf(&b, "- K Value Used: %d\n", s.K)
	fmt.Fprintf(&b, "- Similar Profiles Found: %s\n", joinOr(s.SimilarProfiles, "None"))
	fmt.Fprintf(&b, "- Top Matched Careers: %s\n\n", joinOr(s.TopCareers, "None"))

	b.WriteString(responseFormat)
	return b.String()
}

const responseFormat = `Based on this analysis, respond with a single JSON object with these fields:

{
  "interpretation": "2-3 sentences on what the results reveal about the user's career fit",
  "patterns": ["3-4 patterns shared by similar profiles"],
  "careerPath": [
    {"role": "title", "timeframe": "0-2 years", "skills": "skills to focus on", "reasoning": "why"}
  ],
  "skillGaps": [
    {"name": "skill", "priority": "High|Medium|Low", "reason": "why"}
  ],
  "industryInsights": [
    {"name": "industry", "matchPercentage": 85, "reason": "why", "growthPotential": "High|Medium|Low"}
  ],
  "networkingTips": ["actionable networking tips"],
  "uniqueInsights": "something unexpected in the results",
  "successPredictors": ["factors that predict success"]
}

Keep it practical and tied to the results above rather than generic advice.
`

// Parse reads model output. It decodes the outermost JSON object found in
// the text and falls back to the trimmed text as Narrative.
func Parse(text string) (*Insights, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyOutput
	}

	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start >= 0 && end > start {
		var out Insights
		if err := json.Unmarshal([]byte(text[start:end+1]), &out); err == nil && !out.empty() {
			out.Structured = true
			out.Narrative = ""
			return &out, nil
		}
	}
	return &Insights{Narrative: text}, nil
}

func (in *Insights) empty() bool {
	return in.Interpretation == "" && in.UniqueInsights == "" &&
		len(in.Patterns) == 0 && len(in.CareerPath) == 0 && len(in.SkillGaps) == 0 &&
		len(in.IndustryInsights) == 0 && len(in.NetworkingTips) == 0 && len(in.SuccessPredictors) == 0
}

// Generate prompts gen with the summary and parses the answer.
func Generate(ctx context.Context, gen Generator, s Summary) (*Insights, error) {
	text, err := gen.Generate(ctx, BuildPrompt(s))
	if err != nil {
		return nil, fmt.Errorf("generate insights: %w", err)
	}
	return Parse(text)
}
