// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

package recommend

import "strings"

const (
	strongSkillThreshold = 7.0
	strongTraitThreshold = 70.0
	requiredFitThreshold = 7.0
	maxExplainedSkills   = 3
	maxExplainedTraits   = 2
	fallbackMatchReason  = "Good overall profile match"
)

// Explain returns human-readable reasons the career matched the profile.
// It reads the raw profile fields only and never returns an empty slice.
func Explain(p *UserProfile, c *CareerProfile) []string {
	reasons := make([]string, 0, 5)

	var skills []string
	for _, s := range p.SkillResults {
		if len(skills) == maxExplainedSkills {
			break
		}
		if s.Score >= strongSkillThreshold && c.RequiredSkills[s.Skill] >= requiredFitThreshold {
			skills = append(skills, strings.ToLower(s.Skill))
		}
	}
	if len(skills) > 0 {
		reasons = append(reasons, "Strong match in "+strings.Join(skills, ", "))
	}

	var traits []string
	for _, t := range p.PersonalityTraits {
		if len(traits) == maxExplainedTraits {
			break
		}
		if t.Score >= strongTraitThreshold && c.PersonalityFit[t.Trait] >= requiredFitThreshold {
			traits = append(traits, strings.ToLower(t.Trait))
		}
	}
	if len(traits) > 0 {
		reasons = append(reasons, "Personality aligns with "+strings.Join(traits, ", "))
	}

	if c.Industry != "" && p.Preferences.Industry == c.Industry {
		reasons = append(reasons, "Matches your preferred "+strings.ToLower(c.Industry)+" industry")
	}
	if c.WorkEnvironment != "" && p.Preferences.WorkEnvironment == c.WorkEnvironment {
		reasons = append(reasons, "Fits your "+strings.ToLower(c.WorkEnvironment)+" work style")
	}
	if c.ExperienceLevel != "" && p.ExperienceLevel == c.ExperienceLevel {
		reasons = append(reasons, "Appropriate for your "+strings.ToLower(c.ExperienceLevel)+" experience")
	}

	if len(reasons) == 0 {
		return []string{fallbackMatchReason}
	}
	return reasons
}
