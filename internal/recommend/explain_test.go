// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

package recommend

import (
	"reflect"
	"testing"
)

func TestExplain_AllRules(t *testing.T) {
	p := UserProfile{
		SkillResults: []SkillResult{
			{Skill: "Technical Aptitude", Score: 9},
			{Skill: "Problem Solving", Score: 8},
			{Skill: "Communication", Score: 6},
			{Skill: "Data Analysis", Score: 7},
			{Skill: "Leadership", Score: 10},
		},
		PersonalityTraits: []PersonalityTrait{
			{Trait: "Analytical Thinking", Score: 90},
			{Trait: "Creativity", Score: 70},
			{Trait: "Adaptability", Score: 95},
		},
		Preferences:     Preferences{Industry: "Technology", WorkEnvironment: "Remote"},
		ExperienceLevel: "Mid Level",
	}
	c := CareerProfile{
		RequiredSkills: map[string]float64{
			"Technical Aptitude": 9,
			"Problem Solving":    7,
			"Communication":      9,
			"Data Analysis":      8,
			"Leadership":         8,
		},
		PersonalityFit: map[string]float64{
			"Analytical Thinking": 8,
			"Creativity":          7,
			"Adaptability":        9,
		},
		Industry:        "Technology",
		WorkEnvironment: "Remote",
		ExperienceLevel: "Mid Level",
	}

	want := []string{
		"Strong match in technical aptitude, problem solving, data analysis",
		"Personality aligns with analytical thinking, creativity",
		"Matches your preferred technology industry",
		"Fits your remote work style",
		"Appropriate for your mid level experience",
	}
	if got := Explain(&p, &c); !reflect.DeepEqual(got, want) {
		t.Errorf("Explain() =\n%q\nwant\n%q", got, want)
	}
}

func TestExplain_Fallback(t *testing.T) {
	p := UserProfile{
		SkillResults:    []SkillResult{{Skill: "Creativity", Score: 10}},
		Preferences:     Preferences{Industry: "Finance"},
		ExperienceLevel: "Entry Level",
	}
	c := CareerProfile{
		RequiredSkills:  map[string]float64{"Creativity": 6},
		Industry:        "Healthcare",
		ExperienceLevel: "Senior Level",
	}
	got := Explain(&p, &c)
	if len(got) != 1 || got[0] != "Good overall profile match" {
		t.Errorf("Explain() = %q, want fallback", got)
	}

	if got := Explain(&UserProfile{}, &CareerProfile{}); len(got) == 0 {
		t.Error("Explain() on empty inputs returned no reasons")
	}
}

func TestExplain_IndependentOfDistance(t *testing.T) {
	// Identical vectors, yet nothing in the raw fields qualifies.
	p := UserProfile{
		SkillResults: []SkillResult{{Skill: "Technical Aptitude", Score: 5}},
	}
	c := CareerProfile{RequiredSkills: map[string]float64{"Technical Aptitude": 5}}
	got := Explain(&p, &c)
	if len(got) != 1 || got[0] != "Good overall profile match" {
		t.Errorf("Explain() = %q, want fallback only", got)
	}
}
