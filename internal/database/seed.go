// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

package database

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tomtom215/careermatch/internal/logging"
	"github.com/tomtom215/careermatch/internal/recommend"
)

// seedFile is the YAML layout of a catalog seed file.
type seedFile struct {
	Careers []seedCareer `yaml:"careers"`
}

type seedCareer struct {
	ID              string             `yaml:"id"`
	Title           string             `yaml:"title"`
	Description     string             `yaml:"description"`
	Industry        string             `yaml:"industry"`
	ExperienceLevel string             `yaml:"experienceLevel"`
	WorkEnvironment string             `yaml:"workEnvironment"`
	SalaryRange     string             `yaml:"salaryRange"`
	GrowthOutlook   string             `yaml:"growthOutlook"`
	RequiredSkills  map[string]float64 `yaml:"requiredSkills"`
	PersonalityFit  map[string]float64 `yaml:"personalityFit"`
	Active          *bool              `yaml:"active"`
}

// LoadSeedFile parses a YAML catalog seed file. Unknown fields are rejected.
func LoadSeedFile(path string) ([]recommend.CareerProfile, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f seedFile
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}

	careers := make([]recommend.CareerProfile, 0, len(f.Careers))
	seen := make(map[string]int, len(f.Careers))
	for i, sc := range f.Careers {
		c := recommend.CareerProfile{
			ID:              sc.ID,
			Title:           sc.Title,
			Description:     sc.Description,
			Industry:        sc.Industry,
			ExperienceLevel: sc.ExperienceLevel,
			WorkEnvironment: sc.WorkEnvironment,
			SalaryRange:     sc.SalaryRange,
			GrowthOutlook:   sc.GrowthOutlook,
			RequiredSkills:  nonNilMap(sc.RequiredSkills),
			PersonalityFit:  nonNilMap(sc.PersonalityFit),
			IsActive:        sc.Active == nil || *sc.Active,
		}
		if c.ID == "" {
			c.ID = recommend.CareerID(c.Title)
		}
		if c.ID == "" {
			return nil, fmt.Errorf("%w: seed entry %d has no title", ErrInvalidCareer, i)
		}
		if prev, dup := seen[c.ID]; dup {
			return nil, fmt.Errorf("%w: seed entries %d and %d share id %q", ErrInvalidCareer, prev, i, c.ID)
		}
		seen[c.ID] = i
		careers = append(careers, c)
	}
	return careers, nil
}

// SeedFromFile upserts every career in the seed file and returns how many
// were written. Vectors are precomputed so a freshly seeded catalog needs
// no write-back on the first request. The catalog change callback fires
// once, after the last career, even when a write fails part way.
func (db *DB) SeedFromFile(ctx context.Context, path string) (int, error) {
	careers, err := LoadSeedFile(path)
	if err != nil {
		return 0, err
	}

	for i := range careers {
		c := &careers[i]
		c.FeatureVector = recommend.ExtractCareerFeatures(c)
		if err := db.upsertCareer(ctx, c); err != nil {
			if i > 0 {
				db.notifyCatalogChanged(ctx)
			}
			return i, err
		}
	}
	if len(careers) > 0 {
		db.notifyCatalogChanged(ctx)
	}

	logging.Info().Str("path", path).Int("careers", len(careers)).Msg("Career catalog seeded")
	return len(careers), nil
}
