// --- gradpath-server/handlers/simulation_handlers.go ---
package handlers

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gradpath-server/catalog"
	"gradpath-server/config"
	"gradpath-server/models"
	"gradpath-server/simulate"
)

// SessionStore holds live what-if sessions in memory. Sessions are discarded on
// close and never persisted.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*simulate.Engine
}

// NewSessionStore creates an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*simulate.Engine)}
}

func (s *SessionStore) put(id string, engine *simulate.Engine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = engine
}

func (s *SessionStore) get(id string) (*simulate.Engine, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	engine, ok := s.sessions[id]
	return engine, ok
}

func (s *SessionStore) remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	return ok
}

// CreateSimulation opens a what-if session over the caller's real records.
// POST /api/v1/simulations
func CreateSimulation(store *catalog.Store, cfg *config.Config, sessions *SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.SimulationCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
		engine := simulate.New(
			req.Program,
			req.Records,
			requirementsFor(store, req.Program),
			aggOptions(cfg, false),
			forecastConfig(cfg),
		)
		id := uuid.NewString()
		sessions.put(id, engine)
		c.JSON(http.StatusCreated, models.SimulationCreateResponse{SessionID: id, Program: req.Program})
	}
}

// AddSimulationCourse stages one hypothetical course in a session.
// POST /api/v1/simulations/:session_id/courses
func AddSimulationCourse(sessions *SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		engine, ok := sessions.get(c.Param("session_id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Simulation session not found"})
			return
		}
		var req models.AddCourseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
		rec := models.CourseRecord{
			Code:     req.Code,
			Title:    req.Title,
			Category: req.Category,
			Hours:    req.Hours,
			Grade:    req.Grade,
		}
		if err := engine.AddHypothetical(rec); err != nil {
			status := http.StatusConflict
			if !errors.Is(err, simulate.ErrAlreadyCompleted) && !errors.Is(err, simulate.ErrAlreadyPlanned) {
				status = http.StatusBadRequest
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"hypotheticals": engine.Hypotheticals()})
	}
}

// RemoveSimulationCourse unstages one hypothetical by course code.
// DELETE /api/v1/simulations/:session_id/courses/:code
func RemoveSimulationCourse(sessions *SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		engine, ok := sessions.get(c.Param("session_id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Simulation session not found"})
			return
		}
		if !engine.RemoveHypothetical(c.Param("code")) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No staged course with that code"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"hypotheticals": engine.Hypotheticals()})
	}
}

// ClearSimulationCourses unstages every hypothetical in a session.
// DELETE /api/v1/simulations/:session_id/courses
func ClearSimulationCourses(sessions *SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		engine, ok := sessions.get(c.Param("session_id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Simulation session not found"})
			return
		}
		engine.Clear()
		c.JSON(http.StatusOK, gin.H{"hypotheticals": engine.Hypotheticals()})
	}
}

// GetSimulationImpact recomputes progress with and without the staged courses.
// GET /api/v1/simulations/:session_id/impact
func GetSimulationImpact(sessions *SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		engine, ok := sessions.get(c.Param("session_id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Simulation session not found"})
			return
		}
		c.JSON(http.StatusOK, engine.ComputeImpact())
	}
}

// CloseSimulation discards a session and everything staged in it.
// DELETE /api/v1/simulations/:session_id
func CloseSimulation(sessions *SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !sessions.remove(c.Param("session_id")) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Simulation session not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
