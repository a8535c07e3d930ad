// --- gradpath-server/simulate/engine.go ---
package simulate

import (
	"errors"

	"gradpath-server/forecast"
	"gradpath-server/models"
	"gradpath-server/progress"
)

// Rejections for hypothetical adds. Both leave the staged list unchanged.
var (
	ErrAlreadyCompleted = errors.New("course already completed in the real record")
	ErrAlreadyPlanned   = errors.New("course already staged in this simulation")
)

// Engine overlays a hypothetical course list on a caller-owned real record list
// and recomputes progress as if the hypotheticals were taken and passed. The
// real list is read-only here: every computation runs over fresh copies, so no
// operation can alter a caller record. Nothing is persisted; the engine dies
// with its session.
type Engine struct {
	program      string
	real         []models.CourseRecord
	hypothetical []models.CourseRecord
	reqs         models.RequirementTable
	aggOpts      progress.Options
	fcCfg        forecast.Config
}

// New creates an engine over the caller's real records. The slice header is
// copied but the records are never written through.
func New(program string, real []models.CourseRecord, reqs models.RequirementTable, aggOpts progress.Options, fcCfg forecast.Config) *Engine {
	return &Engine{
		program: program,
		real:    real,
		reqs:    reqs,
		aggOpts: aggOpts,
		fcCfg:   fcCfg,
	}
}

// Program returns the program this simulation runs under.
func (e *Engine) Program() string {
	return e.program
}

// AddHypothetical stages a course. A non-empty code that matches an approved
// real record or an already staged hypothetical is rejected.
func (e *Engine) AddHypothetical(rec models.CourseRecord) error {
	if rec.Code != "" {
		for _, r := range e.real {
			if r.Code == rec.Code && r.Status == models.StatusApproved {
				return ErrAlreadyCompleted
			}
		}
		for _, h := range e.hypothetical {
			if h.Code == rec.Code {
				return ErrAlreadyPlanned
			}
		}
	}
	e.hypothetical = append(e.hypothetical, asPassed(rec))
	return nil
}

// RemoveHypothetical unstages the first hypothetical with the given code,
// reporting whether one was found.
func (e *Engine) RemoveHypothetical(code string) bool {
	for i, h := range e.hypothetical {
		if h.Code == code {
			e.hypothetical = append(e.hypothetical[:i], e.hypothetical[i+1:]...)
			return true
		}
	}
	return false
}

// Clear discards every staged hypothetical.
func (e *Engine) Clear() {
	e.hypothetical = nil
}

// Hypotheticals returns a copy of the staged list.
func (e *Engine) Hypotheticals() []models.CourseRecord {
	out := make([]models.CourseRecord, len(e.hypothetical))
	copy(out, e.hypothetical)
	return out
}

// ComputeImpact aggregates and forecasts twice — real records alone, then real
// plus hypotheticals — and returns the before/after/delta view.
func (e *Engine) ComputeImpact() models.ImpactReport {
	before := e.report(e.real)

	combined := make([]models.CourseRecord, 0, len(e.real)+len(e.hypothetical))
	combined = append(combined, e.real...)
	combined = append(combined, e.hypothetical...)
	after := e.report(combined)

	return models.ImpactReport{
		Before: before,
		After:  after,
		Delta: models.ImpactDelta{
			Coefficient:        after.Metrics.Coefficient - before.Metrics.Coefficient,
			CompletedHours:     after.Metrics.TotalHours - before.Metrics.TotalHours,
			Credits:            after.Metrics.Credits - before.Metrics.Credits,
			HoursMissing:       after.Projection.HoursMissing - before.Projection.HoursMissing,
			SemestersRemaining: after.Projection.SemestersRemaining - before.Projection.SemestersRemaining,
			CanGraduateNow:     after.Projection.CanGraduateNow && !before.Projection.CanGraduateNow,
		},
	}
}

func (e *Engine) report(records []models.CourseRecord) models.ProgressReport {
	metrics := progress.Aggregate(records, e.reqs, e.aggOpts)
	return models.ProgressReport{
		Metrics:    metrics,
		Projection: forecast.Estimate(metrics, e.reqs, e.fcCfg),
	}
}

// asPassed normalizes a hypothetical record to "taken and passed", the premise
// of the what-if. The user's grade is kept for realism but the record is
// unconditionally approved.
func asPassed(rec models.CourseRecord) models.CourseRecord {
	rec.Status = models.StatusApproved
	rec.Withdrawn = false
	rec.Waived = false
	rec.InProgress = false
	return rec
}
