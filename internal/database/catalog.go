// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/careermatch/internal/logging"
	"github.com/tomtom215/careermatch/internal/metrics"
	"github.com/tomtom215/careermatch/internal/recommend"
)

var (
	_ recommend.CatalogStore      = (*DB)(nil)
	_ recommend.BatchVectorWriter = (*DB)(nil)
)

const careerColumns = `id, title, description, industry, experience_level, work_environment,
	average_salary, growth_outlook, required_skills_json, personality_fit_json,
	features_vector, is_active`

// CatalogStats summarizes the career catalog.
type CatalogStats struct {
	TotalCareers      int64            `json:"totalCareers"`
	ActiveCareers     int64            `json:"activeCareers"`
	ByIndustry        map[string]int64 `json:"byIndustry"`
	ByExperienceLevel map[string]int64 `json:"byExperienceLevel"`
}

// SetOnCatalogChanged sets the callback invoked after a career is added,
// edited or deactivated, and once after a seed file is loaded. It runs
// synchronously on the writer's goroutine.
func (db *DB) SetOnCatalogChanged(callback func(ctx context.Context)) {
	db.onCatalogChangedMu.Lock()
	defer db.onCatalogChangedMu.Unlock()
	db.onCatalogChanged = callback
}

func (db *DB) notifyCatalogChanged(ctx context.Context) {
	db.onCatalogChangedMu.RLock()
	callback := db.onCatalogChanged
	db.onCatalogChangedMu.RUnlock()

	if callback != nil {
		callback(ctx)
	}
}

// ListActiveCareers returns every active career ordered by title. Careers
// whose vector has not been computed yet are included with a nil vector.
func (db *DB) ListActiveCareers(ctx context.Context) ([]recommend.CareerProfile, error) {
	return db.listCareers(ctx, "list_active", "is_active")
}

// ListCareersByIndustry returns active careers in one industry.
func (db *DB) ListCareersByIndustry(ctx context.Context, industry string) ([]recommend.CareerProfile, error) {
	return db.listCareers(ctx, "list_by_industry", "is_active AND industry = ?", industry)
}

// ListCareersByExperienceLevel returns active careers at one experience level.
func (db *DB) ListCareersByExperienceLevel(ctx context.Context, level string) ([]recommend.CareerProfile, error) {
	return db.listCareers(ctx, "list_by_experience", "is_active AND experience_level = ?", level)
}

func (db *DB) listCareers(ctx context.Context, op, where string, args ...any) (careers []recommend.CareerProfile, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery(op, "careers", time.Since(start), err) }()

	//nolint:gosec // where clauses are package constants
	query := "SELECT " + careerColumns + " FROM careers WHERE " + where + " ORDER BY title, id"
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query careers: %w", err)
	}
	defer rows.Close()

	careers = []recommend.CareerProfile{}
	for rows.Next() {
		c, err := scanCareer(rows)
		if err != nil {
			return nil, err
		}
		careers = append(careers, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate careers: %w", err)
	}
	return careers, nil
}

// GetCareer returns one active career or ErrCareerNotFound.
func (db *DB) GetCareer(ctx context.Context, id string) (c recommend.CareerProfile, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("get", "careers", time.Since(start), err) }()

	row := db.conn.QueryRowContext(ctx,
		"SELECT "+careerColumns+" FROM careers WHERE id = ? AND is_active", id)
	c, err = scanCareer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return recommend.CareerProfile{}, fmt.Errorf("%w: %s", ErrCareerNotFound, id)
	}
	return c, err
}

// UpsertCareer inserts or replaces a career. An empty ID is derived from the
// title. The stored feature vector is kept only when it matches the career's
// current attributes, so any edit invalidates it and the engine recomputes
// it on the next request.
func (db *DB) UpsertCareer(ctx context.Context, c *recommend.CareerProfile) error {
	if err := db.upsertCareer(ctx, c); err != nil {
		return err
	}
	db.notifyCatalogChanged(ctx)
	return nil
}

func (db *DB) upsertCareer(ctx context.Context, c *recommend.CareerProfile) (err error) {
	if c.ID == "" {
		c.ID = recommend.CareerID(c.Title)
	}
	if c.ID == "" || strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidCareer)
	}

	skills, err := json.Marshal(nonNilMap(c.RequiredSkills))
	if err != nil {
		return fmt.Errorf("marshal required skills: %w", err)
	}
	fit, err := json.Marshal(nonNilMap(c.PersonalityFit))
	if err != nil {
		return fmt.Errorf("marshal personality fit: %w", err)
	}

	var vector sql.NullString
	if len(c.FeatureVector) > 0 && slices.Equal(c.FeatureVector, recommend.ExtractCareerFeatures(c)) {
		vector = sql.NullString{String: encodeVector(c.FeatureVector), Valid: true}
	} else {
		c.FeatureVector = nil
	}

	start := time.Now()
	defer func() { metrics.RecordDBQuery("upsert", "careers", time.Since(start), err) }()

	now := db.now().UTC()
	_, err = db.conn.ExecContext(ctx, `
		INSERT INTO careers (
			id, title, description, industry, experience_level, work_environment,
			average_salary, growth_outlook, required_skills_json, personality_fit_json,
			features_vector, is_active, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			industry = excluded.industry,
			experience_level = excluded.experience_level,
			work_environment = excluded.work_environment,
			average_salary = excluded.average_salary,
			growth_outlook = excluded.growth_outlook,
			required_skills_json = excluded.required_skills_json,
			personality_fit_json = excluded.personality_fit_json,
			features_vector = excluded.features_vector,
			is_active = excluded.is_active,
			updated_at = excluded.updated_at`,
		c.ID, c.Title, c.Description, c.Industry, c.ExperienceLevel, c.WorkEnvironment,
		c.SalaryRange, c.GrowthOutlook, string(skills), string(fit),
		vector, c.IsActive, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert career %s: %w", c.ID, err)
	}
	return nil
}

// AddCareer stores a new active career with an ID derived from its title
// and returns that ID.
func (db *DB) AddCareer(ctx context.Context, c recommend.CareerProfile) (string, error) {
	c.ID = recommend.CareerID(c.Title)
	c.IsActive = true
	if err := db.UpsertCareer(ctx, &c); err != nil {
		return "", err
	}
	return c.ID, nil
}

// DeactivateCareer soft-deletes a career. Its rows stay for audit history.
func (db *DB) DeactivateCareer(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("deactivate", "careers", time.Since(start), err) }()

	res, err := db.conn.ExecContext(ctx,
		"UPDATE careers SET is_active = false, updated_at = ? WHERE id = ? AND is_active",
		db.now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to deactivate career %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to deactivate career %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrCareerNotFound, id)
	}
	db.notifyCatalogChanged(ctx)
	return nil
}

// UpdateFeatureVector persists a computed vector for one career. The write
// is skipped when the career was edited after the vector was computed; see
// writeVectorIfCurrent.
func (db *DB) UpdateFeatureVector(ctx context.Context, careerID string, vector []float64) (err error) {
	if len(vector) != recommend.Dimension {
		return fmt.Errorf("career %s: %w", careerID, recommend.ErrDimensionMismatch)
	}

	start := time.Now()
	defer func() { metrics.RecordDBQuery("update_vector", "careers", time.Since(start), err) }()

	now := db.now().UTC()
	return db.withTx(ctx, func(tx *sql.Tx) error {
		_, err := writeVectorIfCurrent(ctx, tx, recommend.VectorUpdate{CareerID: careerID, Vector: vector}, now)
		return err
	})
}

// BulkUpdateFeatureVectors persists many vectors in one transaction.
// Either all writes are applied or none. Updates for careers that no longer
// exist or were edited since the vector was computed are skipped.
func (db *DB) BulkUpdateFeatureVectors(ctx context.Context, updates []recommend.VectorUpdate) (err error) {
	if len(updates) == 0 {
		return nil
	}
	for _, u := range updates {
		if len(u.Vector) != recommend.Dimension {
			return fmt.Errorf("career %s: %w", u.CareerID, recommend.ErrDimensionMismatch)
		}
	}

	start := time.Now()
	defer func() { metrics.RecordDBQuery("bulk_update_vectors", "careers", time.Since(start), err) }()

	now := db.now().UTC()
	skipped := 0
	err = db.withTx(ctx, func(tx *sql.Tx) error {
		for _, u := range updates {
			written, err := writeVectorIfCurrent(ctx, tx, u, now)
			if errors.Is(err, ErrCareerNotFound) {
				skipped++
				continue
			}
			if err != nil {
				return err
			}
			if !written {
				skipped++
			}
		}
		return nil
	})
	if err == nil && skipped > 0 {
		logging.Debug().Int("skipped", skipped).Int("vectors", len(updates)).
			Msg("Skipped feature vectors for careers changed since computation")
	}
	return err
}

// writeVectorIfCurrent stores vector only when it is still what the career's
// stored attributes extract to. A concurrent edit clears the column and
// commits new attributes; a vector computed from the old attributes must not
// overwrite that, so it is dropped and recomputed on the next request.
func writeVectorIfCurrent(ctx context.Context, tx *sql.Tx, u recommend.VectorUpdate, now time.Time) (bool, error) {
	current, err := scanCareer(tx.QueryRowContext(ctx,
		"SELECT "+careerColumns+" FROM careers WHERE id = ?", u.CareerID))
	if errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("%w: %s", ErrCareerNotFound, u.CareerID)
	}
	if err != nil {
		return false, err
	}
	if !slices.Equal(recommend.ExtractCareerFeatures(&current), u.Vector) {
		return false, nil
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE careers SET features_vector = ?, updated_at = ? WHERE id = ?",
		encodeVector(u.Vector), now, u.CareerID); err != nil {
		return false, fmt.Errorf("update feature vector for %s: %w", u.CareerID, err)
	}
	return true, nil
}

// SearchCareersBySkills returns active careers that list at least
// minMatches of the given skills, most matches first, then by title.
func (db *DB) SearchCareersBySkills(ctx context.Context, skills []string, minMatches int) ([]recommend.CareerProfile, error) {
	careers, err := db.ListActiveCareers(ctx)
	if err != nil {
		return nil, err
	}

	type match struct {
		career recommend.CareerProfile
		count  int
	}
	matches := make([]match, 0, len(careers))
	for _, c := range careers {
		n := 0
		for _, s := range skills {
			if _, ok := c.RequiredSkills[s]; ok {
				n++
			}
		}
		if n > 0 && n >= minMatches {
			matches = append(matches, match{career: c, count: n})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].count > matches[j].count })

	out := make([]recommend.CareerProfile, len(matches))
	for i, m := range matches {
		out[i] = m.career
	}
	return out, nil
}

// DistinctIndustries returns the industries of active careers, sorted.
func (db *DB) DistinctIndustries(ctx context.Context) ([]string, error) {
	return db.distinctColumn(ctx, "industry")
}

// DistinctExperienceLevels returns the experience levels of active careers, sorted.
func (db *DB) DistinctExperienceLevels(ctx context.Context) ([]string, error) {
	return db.distinctColumn(ctx, "experience_level")
}

func (db *DB) distinctColumn(ctx context.Context, column string) (values []string, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("distinct_"+column, "careers", time.Since(start), err) }()

	//nolint:gosec // column is one of two package constants
	rows, err := db.conn.QueryContext(ctx,
		"SELECT DISTINCT "+column+" FROM careers WHERE is_active ORDER BY "+column)
	if err != nil {
		return nil, fmt.Errorf("failed to query distinct %s: %w", column, err)
	}
	defer rows.Close()

	values = []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", column, err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// CatalogStats returns catalog counts for monitoring.
func (db *DB) CatalogStats(ctx context.Context) (stats CatalogStats, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("stats", "careers", time.Since(start), err) }()

	err = db.conn.QueryRowContext(ctx,
		"SELECT COUNT(*), COUNT(*) FILTER (WHERE is_active) FROM careers").
		Scan(&stats.TotalCareers, &stats.ActiveCareers)
	if err != nil {
		return CatalogStats{}, fmt.Errorf("failed to count careers: %w", err)
	}

	if stats.ByIndustry, err = db.countActiveBy(ctx, "industry"); err != nil {
		return CatalogStats{}, err
	}
	if stats.ByExperienceLevel, err = db.countActiveBy(ctx, "experience_level"); err != nil {
		return CatalogStats{}, err
	}
	return stats, nil
}

func (db *DB) countActiveBy(ctx context.Context, column string) (map[string]int64, error) {
	//nolint:gosec // column is one of two package constants
	rows, err := db.conn.QueryContext(ctx,
		"SELECT "+column+", COUNT(*) FROM careers WHERE is_active GROUP BY "+column)
	if err != nil {
		return nil, fmt.Errorf("failed to group careers by %s: %w", column, err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var key string
		var n int64
		if err := rows.Scan(&key, &n); err != nil {
			return nil, fmt.Errorf("failed to scan %s count: %w", column, err)
		}
		counts[key] = n
	}
	return counts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCareer(row rowScanner) (recommend.CareerProfile, error) {
	var (
		c           recommend.CareerProfile
		skills, fit string
		vector      sql.NullString
		isActive    bool
	)
	err := row.Scan(&c.ID, &c.Title, &c.Description, &c.Industry, &c.ExperienceLevel,
		&c.WorkEnvironment, &c.SalaryRange, &c.GrowthOutlook, &skills, &fit, &vector, &isActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c, err
		}
		return c, fmt.Errorf("failed to scan career: %w", err)
	}
	c.IsActive = isActive

	if err := json.Unmarshal([]byte(skills), &c.RequiredSkills); err != nil {
		return c, fmt.Errorf("career %s: invalid required_skills_json: %w", c.ID, err)
	}
	if err := json.Unmarshal([]byte(fit), &c.PersonalityFit); err != nil {
		return c, fmt.Errorf("career %s: invalid personality_fit_json: %w", c.ID, err)
	}
	c.RequiredSkills = nonNilMap(c.RequiredSkills)
	c.PersonalityFit = nonNilMap(c.PersonalityFit)

	if vector.Valid && vector.String != "" {
		v, err := decodeVector(vector.String)
		if err != nil {
			// Unreadable vectors are recomputed by the engine and overwritten.
			logging.Warn().Err(err).Str("career_id", c.ID).Msg("Ignoring malformed feature vector")
		} else {
			c.FeatureVector = v
		}
	}
	return c, nil
}

// encodeVector renders a vector as comma-separated shortest round-trip floats.
func encodeVector(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.FormatFloat(x, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

func decodeVector(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	v := make([]float64, len(parts))
	for i, p := range parts {
		x, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("component %d: %w", i, err)
		}
		v[i] = x
	}
	return v, nil
}

func nonNilMap(m map[string]float64) map[string]float64 {
	if m == nil {
		return map[string]float64{}
	}
	return m
}
