// --- gradpath-server/progress/aggregator.go ---
package progress

import (
	"gradpath-server/models"
)

// Options tunes the aggregation. Zero values get sensible institution defaults.
type Options struct {
	// IncludeInProgress counts in-progress hours into the per-category totals
	// and deficits. TotalHours never includes them; they are reported separately.
	IncludeInProgress bool
	// HoursPerCredit converts qualifying hours into credits. Default 15.
	HoursPerCredit int
	// OverflowCategories are the flexible elective buckets whose excess hours
	// spill into the free-elective bucket once their own requirement is met.
	OverflowCategories []models.Category
}

// DefaultOverflowCategories is the institution's flexible elective set.
var DefaultOverflowCategories = []models.Category{
	models.CategoryMajorElective,
	models.CategoryHumanities,
	models.CategoryExtension,
	models.CategoryArts,
}

// Aggregate computes progress metrics for a record list under one program's
// requirement table. It never mutates its inputs. A missing or empty table is
// handled as all-zero requirements, never as an error.
func Aggregate(records []models.CourseRecord, reqs models.RequirementTable, opts Options) models.AggregateMetrics {
	if opts.HoursPerCredit <= 0 {
		opts.HoursPerCredit = 15
	}
	if opts.OverflowCategories == nil {
		opts.OverflowCategories = DefaultOverflowCategories
	}

	raw := make(map[models.Category]int)
	var (
		totalHours      int
		inProgressHours int
		weightedSum     float64
		weightTotal     float64
		creditHours     int
		attempted       int
		attemptedHours  int
	)
	for _, rec := range records {
		switch rec.Status {
		case models.StatusApproved:
			raw[rec.Category] += rec.Hours
			totalHours += rec.Hours
			if rec.Category != models.CategoryComplementary {
				creditHours += rec.Hours
			}
		case models.StatusInProgress:
			inProgressHours += rec.Hours
			if opts.IncludeInProgress {
				raw[rec.Category] += rec.Hours
			}
		}

		// Weighted coefficient: waived, withdrawn and activity records never
		// participate, whatever their hour treatment above.
		if !rec.Waived && !rec.Withdrawn && rec.Category != models.CategoryComplementary && rec.Grade != nil && rec.Hours > 0 {
			weightedSum += float64(rec.Hours) * *rec.Grade
			weightTotal += float64(rec.Hours)
		}

		// Average-course-size sample: every historically hour-bearing attempt.
		if !rec.Withdrawn && rec.Category != models.CategoryComplementary && rec.Hours > 0 {
			switch rec.Status {
			case models.StatusApproved, models.StatusFailed, models.StatusInProgress:
				attempted++
				attemptedHours += rec.Hours
			}
		}
	}

	redistributed, overflow := redistribute(raw, reqs, opts.OverflowCategories)

	deficits := make(map[models.Category]int)
	totalDeficit := 0
	for cat, required := range reqs.Categories {
		deficit := required - redistributed[cat]
		if deficit < 0 {
			deficit = 0
		}
		deficits[cat] = deficit
		totalDeficit += deficit
	}

	coefficient := 0.0
	if weightTotal > 0 {
		coefficient = weightedSum / weightTotal
	}

	return models.AggregateMetrics{
		HoursByCategory:    redistributed,
		RawHoursByCategory: raw,
		Coefficient:        coefficient,
		Credits:            float64(creditHours) / float64(opts.HoursPerCredit),
		TotalHours:         totalHours,
		InProgressHours:    inProgressHours,
		Deficits:           deficits,
		TotalDeficit:       totalDeficit,
		OverflowHours:      overflow,
		AttemptedCourses:   attempted,
		AttemptedHours:     attemptedHours,
	}
}

// redistribute caps each flexible elective bucket at its own requirement and
// moves the excess into the free-elective bucket. Hours are moved, never created
// or destroyed; the complementary-activity bucket is never touched.
func redistribute(raw map[models.Category]int, reqs models.RequirementTable, flexible []models.Category) (map[models.Category]int, int) {
	out := make(map[models.Category]int, len(raw))
	for cat, hours := range raw {
		out[cat] = hours
	}
	overflow := 0
	for _, cat := range flexible {
		if cat == models.CategoryComplementary || cat == models.CategoryFree {
			continue
		}
		excess := out[cat] - reqs.Required(cat)
		if excess > 0 {
			out[cat] -= excess
			out[models.CategoryFree] += excess
			overflow += excess
		}
	}
	return out, overflow
}
