// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

package recommend

// Feature space layout. Indices are shared by user and career vectors.
var (
	// SkillDimensions are the skill names in vector order.
	SkillDimensions = [...]string{
		"Technical Aptitude",
		"Problem Solving",
		"Creativity",
		"Communication",
		"Data Analysis",
		"Project Management",
		"Leadership",
		"Adaptability",
	}

	// TraitDimensions are the personality trait names in vector order.
	TraitDimensions = [...]string{
		"Analytical Thinking",
		"Creativity",
		"Extraversion",
		"Leadership",
		"Adaptability",
	}
)

const (
	categoricalDimensions = 3

	// Dimension is the fixed feature vector length.
	Dimension = len(SkillDimensions) + len(TraitDimensions) + categoricalDimensions

	// TechnologyIndustry is the industry label encoded as 1.
	TechnologyIndustry = "Technology"

	// TeamOrientedEnvironment is the work environment label encoded as 1.
	TeamOrientedEnvironment = "Team-oriented"

	// Neutral defaults for skills and traits missing from a user profile.
	defaultUserSkill = 5.0
	defaultUserTrait = 50.0
)

// ExtractUserFeatures maps a profile into the shared feature space.
// Missing skills default to 5/10 and missing traits to 50/100.
func ExtractUserFeatures(p *UserProfile) []float64 {
	v := make([]float64, 0, Dimension)

	for _, name := range SkillDimensions {
		score := defaultUserSkill
		if s, ok := p.skillScore(name); ok {
			score = s
		}
		v = append(v, clamp01(score/10))
	}

	for _, name := range TraitDimensions {
		score := defaultUserTrait
		if s, ok := p.traitScore(name); ok {
			score = s
		}
		v = append(v, clamp01(score/100))
	}

	return appendCategorical(v, p.Preferences.Industry, p.ExperienceLevel, p.Preferences.WorkEnvironment)
}

// ExtractCareerFeatures maps a career into the shared feature space.
// Missing requirements default to 0. Any stored FeatureVector is ignored.
func ExtractCareerFeatures(c *CareerProfile) []float64 {
	v := make([]float64, 0, Dimension)

	for _, name := range SkillDimensions {
		v = append(v, clamp01(c.RequiredSkills[name]/10))
	}
	for _, name := range TraitDimensions {
		v = append(v, clamp01(c.PersonalityFit[name]/10))
	}

	return appendCategorical(v, c.Industry, c.ExperienceLevel, c.WorkEnvironment)
}

func appendCategorical(v []float64, industry, experience, environment string) []float64 {
	return append(v,
		indicator(industry == TechnologyIndustry),
		ExperienceOrdinal(experience),
		indicator(environment == TeamOrientedEnvironment),
	)
}

// ExperienceOrdinal encodes an experience level: "Entry Level" is 0,
// "Mid Level" is 0.5 and every other level is 1.
func ExperienceOrdinal(level string) float64 {
	switch level {
	case "Entry Level":
		return 0
	case "Mid Level":
		return 0.5
	default:
		return 1
	}
}

// ApplyWeights returns a copy of v scaled component-wise by weights.
// An empty weights slice returns v unchanged.
func ApplyWeights(v, weights []float64) ([]float64, error) {
	if len(weights) == 0 {
		return v, nil
	}
	if len(weights) != len(v) {
		return nil, ErrDimensionMismatch
	}
	out := make([]float64, len(v))
	for i := range v {
		out[i] = v[i] * weights[i]
	}
	return out, nil
}

// skillScore returns the first score recorded for the named skill.
func (p *UserProfile) skillScore(name string) (float64, bool) {
	for _, s := range p.SkillResults {
		if s.Skill == name {
			return s.Score, true
		}
	}
	return 0, false
}

// traitScore returns the first score recorded for the named trait.
func (p *UserProfile) traitScore(name string) (float64, bool) {
	for _, t := range p.PersonalityTraits {
		if t.Trait == name {
			return t.Score, true
		}
	}
	return 0, false
}

func indicator(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func clamp01(x float64) float64 {
	switch {
	case x < 0:
		return 0
	case x > 1:
		return 1
	default:
		return x
	}
}
