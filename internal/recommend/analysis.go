// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

package recommend

import (
	"fmt"
	"math"
	"sort"
	"time"
)

const (
	maxTopMatches       = 3
	weakSkillThreshold  = 5.0
	lowTraitThreshold   = 40.0
	profileSummaryWidth = 3
)

// Summarize builds the AnalysisSummary for a result set.
// Top matches come from the user's own profile, not from the careers.
func Summarize(p *UserProfile, results []NeighborResult, poolSize int, elapsed time.Duration) AnalysisSummary {
	var avg float64
	if len(results) > 0 {
		var sum float64
		for i := range results {
			sum += results[i].Similarity
		}
		avg = math.Round(sum / float64(len(results)))
	}

	skills := make([]scored, 0, len(p.SkillResults))
	for _, s := range p.SkillResults {
		if s.Score >= strongSkillThreshold {
			skills = append(skills, scored{name: s.Skill, score: s.Score})
		}
	}
	traits := make([]scored, 0, len(p.PersonalityTraits))
	for _, t := range p.PersonalityTraits {
		if t.Score >= strongTraitThreshold {
			traits = append(traits, scored{name: t.Trait, score: t.Score})
		}
	}

	return AnalysisSummary{
		TotalCandidates:       poolSize,
		AverageSimilarity:     avg,
		TopSkillMatches:       topNames(skills, maxTopMatches),
		TopPersonalityMatches: topNames(traits, maxTopMatches),
		ProcessingTimeMs:      elapsed.Milliseconds(),
	}
}

type scored struct {
	name  string
	score float64
}

// topNames dedupes by name (first position, last score), sorts by score
// descending and returns up to n names. The result is never nil.
func topNames(items []scored, n int) []string {
	pos := make(map[string]int, len(items))
	unique := make([]scored, 0, len(items))
	for _, it := range items {
		if i, ok := pos[it.name]; ok {
			unique[i].score = it.score
			continue
		}
		pos[it.name] = len(unique)
		unique = append(unique, it)
	}

	sort.SliceStable(unique, func(i, j int) bool { return unique[i].score > unique[j].score })

	if len(unique) > n {
		unique = unique[:n]
	}
	names := make([]string, len(unique))
	for i, it := range unique {
		names[i] = it.name
	}
	return names
}

// ProfileAnalysis highlights strengths and growth areas of a profile.
type ProfileAnalysis struct {
	StrongestSkills         []SkillResult      `json:"strongestSkills"`
	WeakestSkills           []SkillResult      `json:"weakestSkills"`
	DominantTraits          []PersonalityTrait `json:"dominantPersonalityTraits"`
	RecommendedImprovements []string           `json:"recommendedImprovements"`
}

// AnalyzeProfile ranks the profile's skills and traits and suggests
// improvements for weak skills and low extraversion or leadership.
func AnalyzeProfile(p *UserProfile) ProfileAnalysis {
	skills := append([]SkillResult(nil), p.SkillResults...)
	sort.SliceStable(skills, func(i, j int) bool { return skills[i].Score > skills[j].Score })

	traits := append([]PersonalityTrait(nil), p.PersonalityTraits...)
	sort.SliceStable(traits, func(i, j int) bool { return traits[i].Score > traits[j].Score })

	out := ProfileAnalysis{
		StrongestSkills:         head(skills, profileSummaryWidth),
		DominantTraits:          head(traits, profileSummaryWidth),
		RecommendedImprovements: []string{},
	}

	// Weakest first.
	tail := skills[max(0, len(skills)-profileSummaryWidth):]
	out.WeakestSkills = make([]SkillResult, 0, len(tail))
	for i := len(tail) - 1; i >= 0; i-- {
		out.WeakestSkills = append(out.WeakestSkills, tail[i])
	}

	for _, s := range out.WeakestSkills {
		if s.Score < weakSkillThreshold {
			out.RecommendedImprovements = append(out.RecommendedImprovements,
				fmt.Sprintf("Consider improving %s through online courses or practice", s.Skill))
		}
	}
	if score, ok := p.traitScore("Extraversion"); ok && score < lowTraitThreshold {
		out.RecommendedImprovements = append(out.RecommendedImprovements,
			"Consider developing networking and communication skills")
	}
	if score, ok := p.traitScore("Leadership"); ok && score < lowTraitThreshold {
		out.RecommendedImprovements = append(out.RecommendedImprovements,
			"Leadership development could open up management opportunities")
	}
	return out
}

func head[T any](s []T, n int) []T {
	if len(s) > n {
		s = s[:n]
	}
	return append(make([]T, 0, len(s)), s...)
}

// FindSimilarProfiles returns up to k profiles from others closest to p in
// feature space, nearest first. Ties keep input order.
func FindSimilarProfiles(p *UserProfile, others []UserProfile, k int) ([]UserProfile, error) {
	if k <= 0 || len(others) == 0 {
		return []UserProfile{}, nil
	}

	query := ExtractUserFeatures(p)
	neighbors := make([]neighbor, len(others))
	for i := range others {
		d, err := EuclideanDistance(query, ExtractUserFeatures(&others[i]))
		if err != nil {
			return nil, err
		}
		neighbors[i] = neighbor{index: i, distance: d}
	}
	sort.SliceStable(neighbors, func(i, j int) bool { return neighbors[i].distance < neighbors[j].distance })

	k = min(k, len(neighbors))
	out := make([]UserProfile, k)
	for i := range out {
		out[i] = others[neighbors[i].index]
	}
	return out, nil
}
