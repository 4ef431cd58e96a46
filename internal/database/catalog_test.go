// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

package database

import (
	"context"
	"errors"
	"os"
	"slices"
	"testing"

	"github.com/tomtom215/careermatch/internal/recommend"
)

func TestListActiveCareers(t *testing.T) {
	db := setupTestDB(t)
	seedTestDB(t, db)

	careers, err := db.ListActiveCareers(context.Background())
	if err != nil {
		t.Fatalf("ListActiveCareers() error = %v", err)
	}

	wantIDs := []string{
		"data-scientist",
		"graphic-designer",
		"registered-nurse",
		"sales-manager",
		"software-engineer",
		"ux-ui-designer",
	}
	gotIDs := make([]string, len(careers))
	for i, c := range careers {
		gotIDs[i] = c.ID
	}
	if !slices.Equal(gotIDs, wantIDs) {
		t.Errorf("ListActiveCareers() ids = %v, want %v", gotIDs, wantIDs)
	}

	for _, c := range careers {
		if !c.IsActive {
			t.Errorf("career %s IsActive = false", c.ID)
		}
		if want := recommend.ExtractCareerFeatures(&c); !slices.Equal(c.FeatureVector, want) {
			t.Errorf("career %s FeatureVector = %v, want %v", c.ID, c.FeatureVector, want)
		}
	}
}

func TestListActiveCareers_Empty(t *testing.T) {
	db := setupTestDB(t)

	careers, err := db.ListActiveCareers(context.Background())
	if err != nil {
		t.Fatalf("ListActiveCareers() error = %v", err)
	}
	if careers == nil || len(careers) != 0 {
		t.Errorf("ListActiveCareers() = %v, want empty non-nil slice", careers)
	}
}

func TestGetCareer(t *testing.T) {
	db := setupTestDB(t)
	seedTestDB(t, db)
	ctx := context.Background()

	c, err := db.GetCareer(ctx, "software-engineer")
	if err != nil {
		t.Fatalf("GetCareer() error = %v", err)
	}
	if c.Title != "Software Engineer" || c.Industry != "Technology" || c.SalaryRange != "$70,000 - $120,000" {
		t.Errorf("GetCareer() = %+v", c)
	}
	if c.RequiredSkills["Technical Aptitude"] != 9 {
		t.Errorf("RequiredSkills[Technical Aptitude] = %v, want 9", c.RequiredSkills["Technical Aptitude"])
	}

	if _, err := db.GetCareer(ctx, "mainframe-operator"); !errors.Is(err, ErrCareerNotFound) {
		t.Errorf("GetCareer(inactive) error = %v, want ErrCareerNotFound", err)
	}
	if _, err := db.GetCareer(ctx, "astronaut"); !errors.Is(err, ErrCareerNotFound) {
		t.Errorf("GetCareer(missing) error = %v, want ErrCareerNotFound", err)
	}
}

func TestUpsertCareer_EditInvalidatesVector(t *testing.T) {
	db := setupTestDB(t)
	seedTestDB(t, db)
	ctx := context.Background()

	c, err := db.GetCareer(ctx, "data-scientist")
	if err != nil {
		t.Fatalf("GetCareer() error = %v", err)
	}
	if len(c.FeatureVector) != recommend.Dimension {
		t.Fatalf("seeded vector length = %d, want %d", len(c.FeatureVector), recommend.Dimension)
	}

	// Unchanged attributes keep the stored vector.
	if err := db.UpsertCareer(ctx, &c); err != nil {
		t.Fatalf("UpsertCareer(unchanged) error = %v", err)
	}
	got, _ := db.GetCareer(ctx, "data-scientist")
	if len(got.FeatureVector) != recommend.Dimension {
		t.Errorf("unchanged upsert dropped the vector")
	}

	// Editing a requirement makes the stored vector stale.
	c.RequiredSkills["Leadership"] = 8
	if err := db.UpsertCareer(ctx, &c); err != nil {
		t.Fatalf("UpsertCareer(edited) error = %v", err)
	}
	got, _ = db.GetCareer(ctx, "data-scientist")
	if got.FeatureVector != nil {
		t.Errorf("edited upsert kept vector %v, want nil", got.FeatureVector)
	}
	if got.RequiredSkills["Leadership"] != 8 {
		t.Errorf("RequiredSkills[Leadership] = %v, want 8", got.RequiredSkills["Leadership"])
	}
}

func TestUpsertCareer_RequiresTitle(t *testing.T) {
	db := setupTestDB(t)

	err := db.UpsertCareer(context.Background(), &recommend.CareerProfile{Title: "  "})
	if !errors.Is(err, ErrInvalidCareer) {
		t.Errorf("UpsertCareer(blank title) error = %v, want ErrInvalidCareer", err)
	}
}

func TestAddCareer(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	id, err := db.AddCareer(ctx, recommend.CareerProfile{
		Title:          "Cloud Architect",
		Industry:       "Technology",
		RequiredSkills: map[string]float64{"Technical Aptitude": 10},
	})
	if err != nil {
		t.Fatalf("AddCareer() error = %v", err)
	}
	if id != "cloud-architect" {
		t.Errorf("AddCareer() id = %q, want cloud-architect", id)
	}

	c, err := db.GetCareer(ctx, id)
	if err != nil {
		t.Fatalf("GetCareer() error = %v", err)
	}
	if !c.IsActive {
		t.Error("added career is not active")
	}
	if c.FeatureVector != nil {
		t.Errorf("added career FeatureVector = %v, want nil until computed", c.FeatureVector)
	}
	if c.PersonalityFit == nil {
		t.Error("PersonalityFit = nil, want empty map")
	}
}

func TestDeactivateCareer(t *testing.T) {
	db := setupTestDB(t)
	seedTestDB(t, db)
	ctx := context.Background()

	if err := db.DeactivateCareer(ctx, "sales-manager"); err != nil {
		t.Fatalf("DeactivateCareer() error = %v", err)
	}
	careers, _ := db.ListActiveCareers(ctx)
	for _, c := range careers {
		if c.ID == "sales-manager" {
			t.Error("deactivated career still listed")
		}
	}

	if err := db.DeactivateCareer(ctx, "sales-manager"); !errors.Is(err, ErrCareerNotFound) {
		t.Errorf("second DeactivateCareer() error = %v, want ErrCareerNotFound", err)
	}

	stats, err := db.CatalogStats(ctx)
	if err != nil {
		t.Fatalf("CatalogStats() error = %v", err)
	}
	if stats.TotalCareers != 7 {
		t.Errorf("TotalCareers = %d, want 7 (soft delete keeps rows)", stats.TotalCareers)
	}
}

func TestFeatureVectorWriteBack(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	// Thirds do not survive a short decimal rendering and must round-trip exactly.
	id, err := db.AddCareer(ctx, recommend.CareerProfile{
		Title:          "Actuary",
		Industry:       "Finance",
		RequiredSkills: map[string]float64{"Data Analysis": 10.0 / 3, "Problem Solving": 20.0 / 3},
		PersonalityFit: map[string]float64{"Analytical Thinking": 25.0 / 3},
	})
	if err != nil {
		t.Fatalf("AddCareer() error = %v", err)
	}
	c, err := db.GetCareer(ctx, id)
	if err != nil {
		t.Fatalf("GetCareer() error = %v", err)
	}

	vector := recommend.ExtractCareerFeatures(&c)
	if err := db.UpdateFeatureVector(ctx, id, vector); err != nil {
		t.Fatalf("UpdateFeatureVector() error = %v", err)
	}
	c, _ = db.GetCareer(ctx, id)
	if !slices.Equal(c.FeatureVector, vector) {
		t.Errorf("FeatureVector = %v, want %v", c.FeatureVector, vector)
	}

	// A vector the stored attributes do not extract to is never written.
	other := slices.Clone(vector)
	other[0] = 0.5
	if err := db.UpdateFeatureVector(ctx, id, other); err != nil {
		t.Fatalf("UpdateFeatureVector(other) error = %v", err)
	}
	c, _ = db.GetCareer(ctx, id)
	if !slices.Equal(c.FeatureVector, vector) {
		t.Errorf("FeatureVector = %v after mismatched write, want %v", c.FeatureVector, vector)
	}

	if err := db.UpdateFeatureVector(ctx, id, vector[:3]); !errors.Is(err, recommend.ErrDimensionMismatch) {
		t.Errorf("UpdateFeatureVector(short) error = %v, want ErrDimensionMismatch", err)
	}
	if err := db.UpdateFeatureVector(ctx, "missing", vector); !errors.Is(err, ErrCareerNotFound) {
		t.Errorf("UpdateFeatureVector(missing) error = %v, want ErrCareerNotFound", err)
	}
}

func TestBulkUpdateFeatureVectors(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	careers := []recommend.CareerProfile{
		{Title: "Archivist", RequiredSkills: map[string]float64{"Data Analysis": 7}},
		{Title: "Baker", RequiredSkills: map[string]float64{"Creativity": 6}},
		{Title: "Carpenter", RequiredSkills: map[string]float64{"Technical Aptitude": 8}},
	}
	for _, c := range careers {
		if _, err := db.AddCareer(ctx, c); err != nil {
			t.Fatalf("AddCareer(%s) error = %v", c.Title, err)
		}
	}

	stored, err := db.ListActiveCareers(ctx)
	if err != nil {
		t.Fatalf("ListActiveCareers() error = %v", err)
	}
	updates := make([]recommend.VectorUpdate, 0, len(stored)+1)
	for i := range stored {
		updates = append(updates, recommend.VectorUpdate{
			CareerID: stored[i].ID,
			Vector:   recommend.ExtractCareerFeatures(&stored[i]),
		})
	}
	// A career removed since it was read is skipped, not an error.
	updates = append(updates, recommend.VectorUpdate{CareerID: "gone", Vector: make([]float64, recommend.Dimension)})

	if err := db.BulkUpdateFeatureVectors(ctx, updates); err != nil {
		t.Fatalf("BulkUpdateFeatureVectors() error = %v", err)
	}

	got, _ := db.ListActiveCareers(ctx)
	for i, c := range got {
		if !slices.Equal(c.FeatureVector, updates[i].Vector) {
			t.Errorf("career %s FeatureVector = %v, want %v", c.ID, c.FeatureVector, updates[i].Vector)
		}
	}

	bad := []recommend.VectorUpdate{{CareerID: updates[0].CareerID, Vector: []float64{1}}}
	if err := db.BulkUpdateFeatureVectors(ctx, bad); !errors.Is(err, recommend.ErrDimensionMismatch) {
		t.Errorf("BulkUpdateFeatureVectors(short) error = %v, want ErrDimensionMismatch", err)
	}
}

func TestFeatureVectorWriteBack_CareerEditedAfterRead(t *testing.T) {
	db := setupTestDB(t)
	seedTestDB(t, db)
	ctx := context.Background()

	// The engine reads a career that has no vector yet...
	read, err := db.GetCareer(ctx, "data-scientist")
	if err != nil {
		t.Fatalf("GetCareer() error = %v", err)
	}
	read.FeatureVector = nil
	if err := db.UpsertCareer(ctx, &read); err != nil {
		t.Fatalf("UpsertCareer(clear vector) error = %v", err)
	}
	computed := recommend.ExtractCareerFeatures(&read)

	// ...and the career is edited before the write-back lands.
	edited, err := db.GetCareer(ctx, "data-scientist")
	if err != nil {
		t.Fatalf("GetCareer() error = %v", err)
	}
	edited.RequiredSkills["Leadership"] = 10
	if err := db.UpsertCareer(ctx, &edited); err != nil {
		t.Fatalf("UpsertCareer(edit) error = %v", err)
	}

	update := []recommend.VectorUpdate{{CareerID: "data-scientist", Vector: computed}}
	if err := db.BulkUpdateFeatureVectors(ctx, update); err != nil {
		t.Fatalf("BulkUpdateFeatureVectors() error = %v", err)
	}
	if err := db.UpdateFeatureVector(ctx, "data-scientist", computed); err != nil {
		t.Fatalf("UpdateFeatureVector() error = %v", err)
	}

	got, err := db.GetCareer(ctx, "data-scientist")
	if err != nil {
		t.Fatalf("GetCareer() error = %v", err)
	}
	if got.FeatureVector != nil {
		t.Fatalf("vector computed before the edit was stored: %v", got.FeatureVector)
	}

	// A vector computed from the edited attributes is accepted.
	fresh := recommend.ExtractCareerFeatures(&got)
	if err := db.UpdateFeatureVector(ctx, "data-scientist", fresh); err != nil {
		t.Fatalf("UpdateFeatureVector(fresh) error = %v", err)
	}
	got, _ = db.GetCareer(ctx, "data-scientist")
	if !slices.Equal(got.FeatureVector, fresh) {
		t.Errorf("FeatureVector = %v, want %v", got.FeatureVector, fresh)
	}
}

func TestSetOnCatalogChanged(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	calls := 0
	db.SetOnCatalogChanged(func(context.Context) { calls++ })

	seedTestDB(t, db)
	if calls != 1 {
		t.Errorf("calls after seed = %d, want 1", calls)
	}

	id, err := db.AddCareer(ctx, recommend.CareerProfile{Title: "Geologist"})
	if err != nil {
		t.Fatalf("AddCareer() error = %v", err)
	}
	if err := db.DeactivateCareer(ctx, "sales-manager"); err != nil {
		t.Fatalf("DeactivateCareer() error = %v", err)
	}
	if calls != 3 {
		t.Errorf("calls after add and deactivate = %d, want 3", calls)
	}

	// Failed edits and vector write-backs do not change results.
	if err := db.DeactivateCareer(ctx, "sales-manager"); !errors.Is(err, ErrCareerNotFound) {
		t.Errorf("second DeactivateCareer() error = %v, want ErrCareerNotFound", err)
	}
	if err := db.UpsertCareer(ctx, &recommend.CareerProfile{Title: " "}); !errors.Is(err, ErrInvalidCareer) {
		t.Errorf("UpsertCareer(blank title) error = %v, want ErrInvalidCareer", err)
	}
	c, err := db.GetCareer(ctx, id)
	if err != nil {
		t.Fatalf("GetCareer() error = %v", err)
	}
	if err := db.UpdateFeatureVector(ctx, id, recommend.ExtractCareerFeatures(&c)); err != nil {
		t.Fatalf("UpdateFeatureVector() error = %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestCatalogStats(t *testing.T) {
	db := setupTestDB(t)
	seedTestDB(t, db)

	stats, err := db.CatalogStats(context.Background())
	if err != nil {
		t.Fatalf("CatalogStats() error = %v", err)
	}
	if stats.TotalCareers != 7 || stats.ActiveCareers != 6 {
		t.Errorf("CatalogStats() total/active = %d/%d, want 7/6", stats.TotalCareers, stats.ActiveCareers)
	}
	if stats.ByIndustry["Technology"] != 3 {
		t.Errorf("ByIndustry[Technology] = %d, want 3", stats.ByIndustry["Technology"])
	}
	if stats.ByExperienceLevel["Entry Level"] != 2 {
		t.Errorf("ByExperienceLevel[Entry Level] = %d, want 2", stats.ByExperienceLevel["Entry Level"])
	}
}

func TestCatalogQueries(t *testing.T) {
	db := setupTestDB(t)
	seedTestDB(t, db)
	ctx := context.Background()

	tech, err := db.ListCareersByIndustry(ctx, "Technology")
	if err != nil {
		t.Fatalf("ListCareersByIndustry() error = %v", err)
	}
	if len(tech) != 3 {
		t.Errorf("ListCareersByIndustry(Technology) = %d careers, want 3", len(tech))
	}

	entry, err := db.ListCareersByExperienceLevel(ctx, "Entry Level")
	if err != nil {
		t.Fatalf("ListCareersByExperienceLevel() error = %v", err)
	}
	if len(entry) != 2 {
		t.Errorf("ListCareersByExperienceLevel(Entry Level) = %d careers, want 2", len(entry))
	}

	industries, err := db.DistinctIndustries(ctx)
	if err != nil {
		t.Fatalf("DistinctIndustries() error = %v", err)
	}
	if want := []string{"Business", "Healthcare", "Media", "Technology"}; !slices.Equal(industries, want) {
		t.Errorf("DistinctIndustries() = %v, want %v", industries, want)
	}

	levels, err := db.DistinctExperienceLevels(ctx)
	if err != nil {
		t.Fatalf("DistinctExperienceLevels() error = %v", err)
	}
	if want := []string{"Entry Level", "Mid Level", "Senior Level"}; !slices.Equal(levels, want) {
		t.Errorf("DistinctExperienceLevels() = %v, want %v", levels, want)
	}
}

func TestSearchCareersBySkills(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	add := func(title string, skills ...string) {
		t.Helper()
		req := map[string]float64{}
		for _, s := range skills {
			req[s] = 5
		}
		if _, err := db.AddCareer(ctx, recommend.CareerProfile{Title: title, RequiredSkills: req}); err != nil {
			t.Fatalf("AddCareer(%s) error = %v", title, err)
		}
	}
	add("Analyst", "Data Analysis", "Communication")
	add("Builder", "Technical Aptitude")
	add("Coordinator", "Project Management", "Communication", "Leadership")

	got, err := db.SearchCareersBySkills(ctx, []string{"Communication", "Leadership", "Data Analysis"}, 2)
	if err != nil {
		t.Fatalf("SearchCareersBySkills() error = %v", err)
	}
	ids := make([]string, len(got))
	for i, c := range got {
		ids[i] = c.ID
	}
	// Both match two skills; ties keep title order.
	if want := []string{"analyst", "coordinator"}; !slices.Equal(ids, want) {
		t.Errorf("SearchCareersBySkills() = %v, want %v", ids, want)
	}
}

func TestLoadSeedFile_Errors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		t.Helper()
		path := dir + "/" + name
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		return path
	}

	tests := []struct {
		name string
		body string
	}{
		{"unknown field", "careers:\n  - title: Baker\n    salary: 10\n"},
		{"duplicate id", "careers:\n  - title: Baker\n  - title: baker\n"},
		{"missing title", "careers:\n  - industry: Food\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadSeedFile(write(tt.name+".yaml", tt.body)); err == nil {
				t.Errorf("LoadSeedFile(%s) error = nil, want error", tt.name)
			}
		})
	}

	if _, err := LoadSeedFile(dir + "/missing.yaml"); err == nil {
		t.Error("LoadSeedFile(missing) error = nil, want error")
	}
}

func TestEncodeDecodeVector(t *testing.T) {
	v := []float64{0, 0.1, 1.0 / 3, 1, 0.5}
	got, err := decodeVector(encodeVector(v))
	if err != nil {
		t.Fatalf("decodeVector() error = %v", err)
	}
	if !slices.Equal(got, v) {
		t.Errorf("decodeVector(encodeVector(v)) = %v, want %v", got, v)
	}

	if _, err := decodeVector("0.1,abc"); err == nil {
		t.Error("decodeVector(malformed) error = nil, want error")
	}
}
