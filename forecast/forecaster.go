// --- gradpath-server/forecast/forecaster.go ---
package forecast

import (
	"fmt"
	"math"

	"gradpath-server/models"
	"gradpath-server/utils"
)

// Config holds the courseload assumptions behind the projection. These are
// tuned per institution, so they arrive from configuration.
type Config struct {
	// CoursesPerSemester is the assumed full courseload. Default 6.
	CoursesPerSemester int
	// DefaultTotalHours stands in when a program has no requirement table.
	DefaultTotalHours int
}

// Estimate projects remaining time to graduation from aggregated metrics. The
// output is an approximation built on the student's own course-size history; it
// never claims certainty.
//
// Completed plus in-progress hours meeting the program total means the student
// can graduate this term, unconditionally. Otherwise the remaining hours are
// converted to semesters through the average size of the student's past
// hour-bearing courses; with no such history the projection degrades to an
// insufficient-data answer rather than an error.
func Estimate(m models.AggregateMetrics, reqs models.RequirementTable, cfg Config) models.Projection {
	if cfg.CoursesPerSemester <= 0 {
		cfg.CoursesPerSemester = 6
	}
	totalHours := reqs.TotalHours
	if totalHours <= 0 {
		totalHours = cfg.DefaultTotalHours
	}

	done := m.TotalHours + m.InProgressHours
	remaining := totalHours - done
	if remaining <= 0 {
		return models.Projection{
			Summary:        "All required hours are completed or underway — graduation is possible this term.",
			CanGraduateNow: true,
		}
	}

	if m.AttemptedCourses == 0 {
		return models.Projection{
			Summary:          "Not enough course history to estimate remaining semesters.",
			HoursMissing:     remaining,
			InsufficientData: true,
		}
	}

	avgCourseHours := float64(m.AttemptedHours) / float64(m.AttemptedCourses)
	hoursPerSemester := avgCourseHours * float64(cfg.CoursesPerSemester)
	semesters := int(math.Ceil(float64(remaining) / hoursPerSemester))
	if semesters < 1 {
		semesters = 1
	}

	proj := models.Projection{
		SemestersRemaining: semesters,
		HoursMissing:       remaining,
		Summary: fmt.Sprintf(
			"Approximately %d hour(s) missing; at around %d course(s) per semester, roughly %d semester(s) remain.",
			remaining, cfg.CoursesPerSemester, semesters),
	}

	// Near the end a course count is more useful than a semester count: report
	// how many courses the very next semester needs.
	if semesters <= 2 {
		share := float64(remaining) / float64(semesters)
		courses := int(math.Ceil(share / avgCourseHours))
		proj.CoursesNeeded = utils.IntPtr(courses)
		proj.Summary = fmt.Sprintf(
			"Approximately %d hour(s) missing; around %d course(s) needed next semester, roughly %d semester(s) remain.",
			remaining, courses, semesters)
	}
	return proj
}
