// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

package validation

import (
	"strings"
	"testing"

	"github.com/tomtom215/careermatch/internal/recommend"
)

func validProfile() recommend.UserProfile {
	return recommend.UserProfile{
		UserID: "user-1",
		SkillResults: []recommend.SkillResult{
			{Skill: "Technical Aptitude", Score: 8, Category: "Technical"},
			{Skill: "Communication", Score: 0},
		},
		PersonalityTraits: []recommend.PersonalityTrait{
			{Trait: "Analytical Thinking", Score: 85},
			{Trait: "Extraversion", Score: 100},
		},
		Preferences:     recommend.Preferences{Industry: "Technology", WorkEnvironment: "Remote"},
		ExperienceLevel: "Mid Level",
		CareerGoals:     []string{"Lead a team"},
	}
}

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 != v2 {
		t.Error("GetValidator() returned different instances")
	}
	if v1 == nil {
		t.Fatal("GetValidator() returned nil")
	}
}

func TestValidateStruct_ValidProfile(t *testing.T) {
	p := validProfile()
	if err := ValidateStruct(&p); err != nil {
		t.Errorf("ValidateStruct(valid) = %v, want nil", err)
	}

	// An empty assessment is valid; defaults fill every feature.
	empty := recommend.UserProfile{}
	if err := ValidateStruct(&empty); err != nil {
		t.Errorf("ValidateStruct(empty) = %v, want nil", err)
	}
}

func TestValidateStruct_FieldErrors(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(p *recommend.UserProfile)
		wantField string
		wantTag   string
	}{
		{
			name:      "skill score above range",
			mutate:    func(p *recommend.UserProfile) { p.SkillResults[0].Score = 11 },
			wantField: "skillResults[0].score",
			wantTag:   "lte",
		},
		{
			name:      "negative trait score",
			mutate:    func(p *recommend.UserProfile) { p.PersonalityTraits[1].Score = -1 },
			wantField: "personalityTraits[1].score",
			wantTag:   "gte",
		},
		{
			name:      "missing trait name",
			mutate:    func(p *recommend.UserProfile) { p.PersonalityTraits[0].Trait = "" },
			wantField: "personalityTraits[0].trait",
			wantTag:   "required",
		},
		{
			name:      "blank skill name",
			mutate:    func(p *recommend.UserProfile) { p.SkillResults[1].Skill = "   " },
			wantField: "skillResults[1].skill",
			wantTag:   "notblank",
		},
		{
			name:      "long experience level",
			mutate:    func(p *recommend.UserProfile) { p.ExperienceLevel = strings.Repeat("x", 51) },
			wantField: "experienceLevel",
			wantTag:   "max",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProfile()
			tt.mutate(&p)

			verr := ValidateStruct(&p)
			if verr == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			errs := verr.Errors()
			if len(errs) != 1 {
				t.Fatalf("ValidateStruct() returned %d errors, want 1: %v", len(errs), verr)
			}
			if errs[0].Field() != tt.wantField {
				t.Errorf("Field() = %q, want %q", errs[0].Field(), tt.wantField)
			}
			if errs[0].Tag() != tt.wantTag {
				t.Errorf("Tag() = %q, want %q", errs[0].Tag(), tt.wantTag)
			}
			if !strings.HasPrefix(errs[0].Error(), tt.wantField) {
				t.Errorf("Error() = %q, want prefix %q", errs[0].Error(), tt.wantField)
			}
		})
	}
}

func TestValidateStruct_NestedRequestPath(t *testing.T) {
	req := recommend.Request{Profile: validProfile()}
	req.Profile.SkillResults[0].Score = 12

	verr := ValidateStruct(&req)
	if verr == nil {
		t.Fatal("ValidateStruct() = nil, want error")
	}
	if got := verr.Errors()[0].Field(); got != "userProfile.skillResults[0].score" {
		t.Errorf("Field() = %q, want userProfile.skillResults[0].score", got)
	}
}

func TestValidateStruct_Messages(t *testing.T) {
	p := validProfile()
	p.SkillResults[0].Score = 11
	p.SkillResults[1].Skill = " "

	verr := ValidateStruct(&p)
	if verr == nil {
		t.Fatal("ValidateStruct() = nil, want error")
	}

	msg := verr.Error()
	for _, want := range []string{
		"skillResults[0].score must be less than or equal to 10",
		"skillResults[1].skill must not be blank",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, missing %q", msg, want)
		}
	}
}

func TestToAPIError(t *testing.T) {
	t.Run("single error", func(t *testing.T) {
		p := validProfile()
		p.PersonalityTraits[0].Score = 101

		apiErr := ValidateStruct(&p).ToAPIError()
		if apiErr.Code != "VALIDATION_ERROR" {
			t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
		}
		if apiErr.Message != "personalityTraits[0].score must be less than or equal to 100" {
			t.Errorf("Message = %q", apiErr.Message)
		}
		if apiErr.Details["field"] != "personalityTraits[0].score" || apiErr.Details["tag"] != "lte" {
			t.Errorf("Details = %v", apiErr.Details)
		}
	})

	t.Run("multiple errors", func(t *testing.T) {
		p := validProfile()
		p.PersonalityTraits[0].Score = 101
		p.SkillResults[0].Score = -2

		apiErr := ValidateStruct(&p).ToAPIError()
		if apiErr.Code != "VALIDATION_ERROR" {
			t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
		}
		fields, ok := apiErr.Details["fields"].([]map[string]interface{})
		if !ok || len(fields) != 2 {
			t.Fatalf("Details[fields] = %v, want 2 entries", apiErr.Details["fields"])
		}
		if !strings.Contains(apiErr.Message, "; ") {
			t.Errorf("Message = %q, want errors joined by \"; \"", apiErr.Message)
		}
	})

	t.Run("empty", func(t *testing.T) {
		apiErr := (&RequestValidationError{}).ToAPIError()
		if apiErr.Message != "Validation failed" || apiErr.Details != nil {
			t.Errorf("ToAPIError(empty) = %+v", apiErr)
		}
	})
}

func TestTranslateMinMax_Collections(t *testing.T) {
	p := validProfile()
	p.CareerGoals = make([]string, 21)
	for i := range p.CareerGoals {
		p.CareerGoals[i] = "goal"
	}

	verr := ValidateStruct(&p)
	if verr == nil {
		t.Fatal("ValidateStruct() = nil, want error")
	}
	if got := verr.Errors()[0].Error(); got != "careerGoals must be at most 20" {
		t.Errorf("Error() = %q, want %q", got, "careerGoals must be at most 20")
	}
}
