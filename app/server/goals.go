package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"

	"github.com/gurza/mandala/app/store"
	"github.com/gurza/mandala/lib/mandala/conflict"
)

// ChartView is a chart with its full goal tree.
type ChartView struct {
	Chart store.Chart  `json:"chart"`
	Goals []store.Goal `json:"goals"`
}

// chartCreateRequest is the JSON body for POST /api/charts.
type chartCreateRequest struct {
	Title string `json:"title" validate:"required,max=100"`
}

// goalRequest is the JSON body for creating and updating goals.
type goalRequest struct {
	ChartID     string     `json:"chart_id" validate:"required"`
	ParentID    string     `json:"parent_id"`
	Kind        string     `json:"kind" validate:"required,oneof=chart subgoal action task"`
	Position    int        `json:"position" validate:"gte=0,lte=7"`
	Title       string     `json:"title" validate:"required,max=100"`
	Description string     `json:"description" validate:"max=1000"`
	Background  string     `json:"background" validate:"max=1000"`
	Constraints string     `json:"constraints" validate:"max=1000"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	TaskKind    string     `json:"task_kind" validate:"omitempty,oneof=execution habit"`
	Progress    int        `json:"progress" validate:"gte=0,lte=100"`

	// update only: optimistic concurrency token (updated_at as unix nanos)
	// and the escape hatch to overwrite regardless of version
	ExpectedVersion int64 `json:"expected_version,omitempty"`
	Force           bool  `json:"force,omitempty"`
}

// conflictResponse is the 409 payload when an update loses the version race.
// Fields is the field-level diff between the rejected update and the server
// row, ready for the conflict dialog.
type conflictResponse struct {
	Error         string           `json:"error"`
	ServerVersion int64            `json:"server_version"` // unix nanos of the current row
	Latest        store.Goal       `json:"latest"`
	Fields        []conflict.Field `json:"fields"`
}

// handleChartList returns all charts.
func (s *Server) handleChartList(w http.ResponseWriter, r *http.Request) {
	charts, err := s.Store.ListCharts(r.Context())
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusInternalServerError, err, "failed to list charts")
		return
	}
	if charts == nil {
		charts = []store.Chart{}
	}
	rest.RenderJSON(w, charts)
}

// handleChartCreate creates a new chart.
func (s *Server) handleChartCreate(w http.ResponseWriter, r *http.Request) {
	var req chartCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, err, "invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, err, "invalid chart")
		return
	}

	chart, err := s.Store.CreateChart(r.Context(), req.Title)
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusInternalServerError, err, "failed to create chart")
		return
	}

	log.Printf("[INFO] created chart %s %q", chart.ID, chart.Title)
	s.publishEvent(chart.ID, "", store.ActionCreate)
	rest.EncodeJSON(w, http.StatusCreated, chart)
}

// handleChartGet returns a chart with its goal tree.
func (s *Server) handleChartGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	chart, err := s.Store.GetChart(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			rest.SendErrorJSON(w, r, log.Default(), http.StatusNotFound, err, "chart not found")
			return
		}
		rest.SendErrorJSON(w, r, log.Default(), http.StatusInternalServerError, err, "failed to get chart")
		return
	}

	goals, err := s.Store.ListGoals(r.Context(), id)
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusInternalServerError, err, "failed to list goals")
		return
	}
	if goals == nil {
		goals = []store.Goal{}
	}

	rest.RenderJSON(w, ChartView{Chart: chart, Goals: goals})
}

// handleChartDelete deletes a chart and all its goals.
func (s *Server) handleChartDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := s.Store.DeleteChart(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			rest.SendErrorJSON(w, r, log.Default(), http.StatusNotFound, err, "chart not found")
			return
		}
		rest.SendErrorJSON(w, r, log.Default(), http.StatusInternalServerError, err, "failed to delete chart")
		return
	}

	log.Printf("[INFO] deleted chart %s", id)
	s.publishEvent(id, "", store.ActionDelete)
	w.WriteHeader(http.StatusNoContent)
}

// handleGoalCreate creates a new goal.
func (s *Server) handleGoalCreate(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, err, "invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, err, "invalid goal")
		return
	}

	goal, err := s.Store.CreateGoal(r.Context(), req.toGoal(""))
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusInternalServerError, err, "failed to create goal")
		return
	}

	log.Printf("[INFO] created %s %s %q in chart %s", goal.Kind, goal.ID, goal.Title, goal.ChartID)
	s.publishEvent(goal.ChartID, goal.ID, store.ActionCreate)
	rest.EncodeJSON(w, http.StatusCreated, goal)
}

// handleGoalGet returns a single goal.
func (s *Server) handleGoalGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	goal, err := s.Store.GetGoal(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			rest.SendErrorJSON(w, r, log.Default(), http.StatusNotFound, err, "goal not found")
			return
		}
		rest.SendErrorJSON(w, r, log.Default(), http.StatusInternalServerError, err, "failed to get goal")
		return
	}
	rest.RenderJSON(w, goal)
}

// handleGoalUpdate updates a goal, with optimistic locking unless force is
// set. A lost version race responds 409 with the server row and the
// field-level diff for the conflict dialog.
func (s *Server) handleGoalUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, err, "invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, err, "invalid goal")
		return
	}

	goal := req.toGoal(id)

	var updated store.Goal
	var err error
	if req.Force || req.ExpectedVersion == 0 {
		updated, err = s.Store.UpdateGoal(r.Context(), goal)
	} else {
		expected := time.Unix(0, req.ExpectedVersion).UTC()
		updated, err = s.Store.UpdateGoalWithVersion(r.Context(), goal, expected)
	}

	if err != nil {
		var conflictErr *store.ConflictError
		if errors.As(err, &conflictErr) {
			s.renderConflict(w, goal, conflictErr)
			return
		}
		if errors.Is(err, store.ErrNotFound) {
			rest.SendErrorJSON(w, r, log.Default(), http.StatusNotFound, err, "goal not found")
			return
		}
		rest.SendErrorJSON(w, r, log.Default(), http.StatusInternalServerError, err, "failed to update goal")
		return
	}

	log.Printf("[INFO] updated %s %s %q", updated.Kind, updated.ID, updated.Title)
	s.publishEvent(updated.ChartID, updated.ID, store.ActionUpdate)
	rest.RenderJSON(w, updated)
}

// handleGoalDelete deletes a goal.
func (s *Server) handleGoalDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	goal, err := s.Store.GetGoal(r.Context(), id)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusInternalServerError, err, "failed to get goal")
		return
	}

	if err := s.Store.DeleteGoal(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			rest.SendErrorJSON(w, r, log.Default(), http.StatusNotFound, err, "goal not found")
			return
		}
		rest.SendErrorJSON(w, r, log.Default(), http.StatusInternalServerError, err, "failed to delete goal")
		return
	}

	log.Printf("[INFO] deleted goal %s", id)
	s.publishEvent(goal.ChartID, id, store.ActionDelete)
	w.WriteHeader(http.StatusNoContent)
}

// renderConflict writes the 409 response with the field-level diff between
// the rejected update and the current server row.
func (s *Server) renderConflict(w http.ResponseWriter, attempted store.Goal, conflictErr *store.ConflictError) {
	latest := conflictErr.Current
	log.Printf("[WARN] conflict on goal %s: expected=%d server=%d",
		latest.ID, conflictErr.Expected.UnixNano(), conflictErr.Actual.UnixNano())

	rest.EncodeJSON(w, http.StatusConflict, conflictResponse{
		Error:         "goal changed concurrently",
		ServerVersion: latest.UpdatedAt.UnixNano(),
		Latest:        latest,
		Fields:        conflict.Diff(goalRecord(attempted), goalRecord(latest)),
	})
}

// toGoal converts the request body to a store goal.
func (req goalRequest) toGoal(id string) store.Goal {
	return store.Goal{
		ID:          id,
		ChartID:     req.ChartID,
		ParentID:    req.ParentID,
		Kind:        req.Kind,
		Position:    req.Position,
		Title:       req.Title,
		Description: req.Description,
		Background:  req.Background,
		Constraints: req.Constraints,
		Deadline:    req.Deadline,
		TaskKind:    req.TaskKind,
		Progress:    req.Progress,
	}
}

// goalRecord projects a goal onto the comparable attributes the conflict
// resolver diffs.
func goalRecord(g store.Goal) conflict.Record {
	return conflict.Record{
		Title:       g.Title,
		Description: g.Description,
		Background:  g.Background,
		Constraints: g.Constraints,
		Deadline:    g.Deadline,
		TaskKind:    g.TaskKind,
	}
}
