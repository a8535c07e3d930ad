package models

// ProgressRequest asks for metrics and a projection over an already-parsed record
// list under a given program's requirement table.
type ProgressRequest struct {
	Program           string         `json:"program" binding:"required"`
	Records           []CourseRecord `json:"records" binding:"required"`
	IncludeInProgress bool           `json:"include_in_progress"`
}

// SimulationCreateRequest opens a what-if session over the caller's real records.
type SimulationCreateRequest struct {
	Program string         `json:"program" binding:"required"`
	Records []CourseRecord `json:"records"`
}

// SimulationCreateResponse returns the session handle.
type SimulationCreateResponse struct {
	SessionID string `json:"session_id"`
	Program   string `json:"program"`
}

// AddCourseRequest stages one hypothetical course in a simulation session.
type AddCourseRequest struct {
	Code     string   `json:"code"`
	Title    string   `json:"title" binding:"required"`
	Category Category `json:"category" binding:"required"`
	Hours    int      `json:"hours" binding:"required"`
	Grade    *float64 `json:"grade"`
}
