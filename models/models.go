package models

// Category is a degree-requirement bucket ("natureza") a course counts toward.
type Category string

const (
	CategoryMandatory     Category = "mandatory"
	CategoryMajorElective Category = "major_elective"
	CategoryHumanities    Category = "humanities_elective"
	CategoryExtension     Category = "extension_elective"
	CategoryArts          Category = "arts_elective"
	CategoryFree          Category = "free_elective"
	CategoryComplementary Category = "complementary_activity"
	CategoryOther         Category = "other_elective"
)

// Categories lists every known category, in display order.
var Categories = []Category{
	CategoryMandatory,
	CategoryMajorElective,
	CategoryHumanities,
	CategoryExtension,
	CategoryArts,
	CategoryFree,
	CategoryComplementary,
	CategoryOther,
}

// Status is the outcome of one course attempt. StatusUnknown marks records whose
// raw status token was not recognized; they carry no flags and are skipped by
// every aggregation rule.
type Status string

const (
	StatusApproved   Status = "approved"
	StatusFailed     Status = "failed"
	StatusWithdrawn  Status = "withdrawn"
	StatusInProgress Status = "in_progress"
	StatusUnknown    Status = ""
)

// PassingGrade is the minimum grade for approval on the 0-10 scale.
const PassingGrade = 5.0

// CourseRecord is one academic-term attempt at a course.
type CourseRecord struct {
	Term       string   `json:"term"` // "YYYY.S", S in {1,2}
	Code       string   `json:"code,omitempty"`
	Title      string   `json:"title"`
	Category   Category `json:"category"`
	Hours      int      `json:"hours"`
	Grade      *float64 `json:"grade"` // nil when no grade applies (in progress, waived, activity)
	Status     Status   `json:"status"`
	Withdrawn  bool     `json:"withdrawn,omitempty"`
	Waived     bool     `json:"waived,omitempty"`
	InProgress bool     `json:"in_progress,omitempty"`
}

// DeriveStatus computes the status a record must carry given its grade, flags and
// category. At most one flag may be true; flags win over the grade comparison, and
// complementary activities never go through a grade comparison at all.
func DeriveStatus(grade *float64, withdrawn, waived, inProgress bool, category Category) Status {
	switch {
	case withdrawn:
		return StatusWithdrawn
	case waived:
		return StatusApproved
	case inProgress:
		return StatusInProgress
	case category == CategoryComplementary:
		return StatusApproved
	case grade == nil:
		return StatusUnknown
	case *grade >= PassingGrade:
		return StatusApproved
	}
	return StatusFailed
}

// CatalogEntry is one course descriptor from the reference catalog.
type CatalogEntry struct {
	Code     string   `json:"code"`
	Title    string   `json:"title"`
	Category Category `json:"category"`
	Hours    int      `json:"hours"`
}

// RequirementTable holds one program's per-category hour requirements plus its
// total-hour graduation threshold. TotalHours may exceed the sum of category
// requirements; the difference is free overflow.
type RequirementTable struct {
	Program    string           `json:"program" yaml:"-"`
	TotalHours int              `json:"total_hours" yaml:"total_hours"`
	Categories map[Category]int `json:"categories" yaml:"categories"`
}

// Required returns the hour requirement for a category, 0 when the table or the
// category entry is missing.
func (rt RequirementTable) Required(cat Category) int {
	if rt.Categories == nil {
		return 0
	}
	return rt.Categories[cat]
}

// ParseResult is the transcript parser's output: records in text-scan order plus
// human-readable advisories the caller must surface to the user.
type ParseResult struct {
	Records    []CourseRecord `json:"records"`
	Advisories []string       `json:"advisories"`
}

// AggregateMetrics is the progress aggregator's output. TotalHours always excludes
// in-progress work; InProgressHours is reported separately so the forecaster can
// add it without double counting.
type AggregateMetrics struct {
	HoursByCategory    map[Category]int `json:"hours_by_category"`     // after overflow redistribution
	RawHoursByCategory map[Category]int `json:"raw_hours_by_category"` // before redistribution
	Coefficient        float64          `json:"coefficient"`
	Credits            float64          `json:"credits"`
	TotalHours         int              `json:"total_hours"`
	InProgressHours    int              `json:"in_progress_hours"`
	Deficits           map[Category]int `json:"deficits"`
	TotalDeficit       int              `json:"total_deficit"`
	OverflowHours      int              `json:"overflow_hours"`
	// AttemptedCourses/AttemptedHours describe the historically hour-bearing
	// attempts (approved, failed, in progress, waived with hours) the forecaster
	// uses to estimate an average course size.
	AttemptedCourses int `json:"attempted_courses"`
	AttemptedHours   int `json:"attempted_hours"`
}

// Projection is the graduation forecaster's output. It is an approximation, never
// a guarantee.
type Projection struct {
	Summary            string `json:"summary"`
	SemestersRemaining int    `json:"semesters_remaining"`
	CoursesNeeded      *int   `json:"courses_needed,omitempty"` // only within the last two projected semesters
	CanGraduateNow     bool   `json:"can_graduate_now"`
	HoursMissing       int    `json:"hours_missing"`
	InsufficientData   bool   `json:"insufficient_data,omitempty"`
}

// ProgressReport pairs the aggregated metrics with their projection.
type ProgressReport struct {
	Metrics    AggregateMetrics `json:"metrics"`
	Projection Projection       `json:"projection"`
}

// ImpactDelta holds after-minus-before differences for the simulated metrics.
// CanGraduateNow is true when the simulation flips the student into graduating
// range this term.
type ImpactDelta struct {
	Coefficient        float64 `json:"coefficient"`
	CompletedHours     int     `json:"completed_hours"`
	Credits            float64 `json:"credits"`
	HoursMissing       int     `json:"hours_missing"`
	SemestersRemaining int     `json:"semesters_remaining"`
	CanGraduateNow     bool    `json:"can_graduate_now"`
}

// ImpactReport is the what-if simulation's before/after/delta view.
type ImpactReport struct {
	Before ProgressReport `json:"before"`
	After  ProgressReport `json:"after"`
	Delta  ImpactDelta    `json:"delta"`
}
