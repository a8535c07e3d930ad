package forecast

import (
	"testing"

	"gradpath-server/models"
)

func table(total int) models.RequirementTable {
	return models.RequirementTable{TotalHours: total}
}

func TestGraduationBoundary(t *testing.T) {
	tests := []struct {
		name            string
		completed       int
		inProgress      int
		total           int
		canGraduateNow  bool
	}{
		{"completed alone meets total", 960, 0, 960, true},
		{"completed plus in-progress meets total", 600, 360, 960, true},
		{"over total", 1000, 0, 960, true},
		{"one hour short", 959, 0, 960, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := models.AggregateMetrics{
				TotalHours:       tt.completed,
				InProgressHours:  tt.inProgress,
				AttemptedCourses: 10,
				AttemptedHours:   600,
			}
			p := Estimate(m, table(tt.total), Config{})
			if p.CanGraduateNow != tt.canGraduateNow {
				t.Errorf("CanGraduateNow = %v, want %v", p.CanGraduateNow, tt.canGraduateNow)
			}
			if tt.canGraduateNow && p.SemestersRemaining != 0 {
				t.Errorf("SemestersRemaining = %d, want 0 when graduating", p.SemestersRemaining)
			}
		})
	}
}

func TestInsufficientHistory(t *testing.T) {
	m := models.AggregateMetrics{TotalHours: 100}
	p := Estimate(m, table(960), Config{})
	if !p.InsufficientData {
		t.Fatalf("expected insufficient-data projection, got %+v", p)
	}
	if p.CanGraduateNow || p.SemestersRemaining != 0 {
		t.Errorf("degraded projection must not invent an estimate: %+v", p)
	}
	if p.HoursMissing != 860 {
		t.Errorf("HoursMissing = %d, want 860", p.HoursMissing)
	}
}

func TestSemesterEstimate(t *testing.T) {
	// 600 completed of 960; 10 past courses of 60h each, so a 6-course semester
	// covers 360h and the 360 missing hours fit in exactly one semester.
	m := models.AggregateMetrics{
		TotalHours:       600,
		AttemptedCourses: 10,
		AttemptedHours:   600,
	}
	p := Estimate(m, table(960), Config{})
	if p.SemestersRemaining != 1 {
		t.Errorf("SemestersRemaining = %d, want 1", p.SemestersRemaining)
	}
	if p.CoursesNeeded == nil || *p.CoursesNeeded != 6 {
		t.Errorf("CoursesNeeded = %v, want 6", p.CoursesNeeded)
	}
	if p.HoursMissing != 360 {
		t.Errorf("HoursMissing = %d, want 360", p.HoursMissing)
	}
}

func TestLongProjectionHasNoCourseCount(t *testing.T) {
	// 1800h missing at 360h/semester is five semesters out; course-level
	// precision only appears in the last two.
	m := models.AggregateMetrics{
		TotalHours:       600,
		AttemptedCourses: 10,
		AttemptedHours:   600,
	}
	p := Estimate(m, table(2400), Config{})
	if p.SemestersRemaining != 5 {
		t.Errorf("SemestersRemaining = %d, want 5", p.SemestersRemaining)
	}
	if p.CoursesNeeded != nil {
		t.Errorf("CoursesNeeded = %v, want nil beyond two semesters", *p.CoursesNeeded)
	}
}

func TestTwoSemesterRefinement(t *testing.T) {
	// 720h missing, 360h/semester: two semesters, next one needs 6 courses.
	m := models.AggregateMetrics{
		TotalHours:       240,
		AttemptedCourses: 4,
		AttemptedHours:   240,
	}
	p := Estimate(m, table(960), Config{})
	if p.SemestersRemaining != 2 {
		t.Errorf("SemestersRemaining = %d, want 2", p.SemestersRemaining)
	}
	if p.CoursesNeeded == nil || *p.CoursesNeeded != 6 {
		t.Errorf("CoursesNeeded = %v, want 6", p.CoursesNeeded)
	}
}

func TestDefaultTotalWhenTableMissing(t *testing.T) {
	m := models.AggregateMetrics{
		TotalHours:       600,
		AttemptedCourses: 10,
		AttemptedHours:   600,
	}
	p := Estimate(m, models.RequirementTable{}, Config{DefaultTotalHours: 960})
	if p.HoursMissing != 360 {
		t.Errorf("HoursMissing = %d, want 360 from default total", p.HoursMissing)
	}
}
