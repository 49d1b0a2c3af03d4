package server

import (
	"context"
	"encoding/json"
	"net/http"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"

	"github.com/gurza/mandala/app/generator"
)

// suggestionsResponse wraps generated suggestions.
type suggestionsResponse struct {
	Suggestions []generator.Suggestion `json:"suggestions"`
}

// handleGenerateSubGoals proposes sub-goals for a central goal.
func (s *Server) handleGenerateSubGoals(w http.ResponseWriter, r *http.Request) {
	s.handleGenerate(w, r, "subgoals", func(ctx context.Context, req generator.Request) ([]generator.Suggestion, error) {
		return s.Generator.SubGoals(ctx, req)
	})
}

// handleGenerateActions proposes actions for a sub-goal.
func (s *Server) handleGenerateActions(w http.ResponseWriter, r *http.Request) {
	s.handleGenerate(w, r, "actions", func(ctx context.Context, req generator.Request) ([]generator.Suggestion, error) {
		return s.Generator.Actions(ctx, req)
	})
}

// handleGenerateTasks proposes tasks for an action.
func (s *Server) handleGenerateTasks(w http.ResponseWriter, r *http.Request) {
	s.handleGenerate(w, r, "tasks", func(ctx context.Context, req generator.Request) ([]generator.Suggestion, error) {
		return s.Generator.Tasks(ctx, req)
	})
}

// handleGenerate is the shared generation pipeline: availability check,
// decode, validate, generate.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request, what string,
	gen func(ctx context.Context, req generator.Request) ([]generator.Suggestion, error)) {

	if s.Generator == nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusServiceUnavailable, nil, "generation not enabled")
		return
	}

	var req generator.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, err, "invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, err, "invalid generation request")
		return
	}

	suggestions, err := gen(r.Context(), req)
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadGateway, err, "generation failed")
		return
	}

	log.Printf("[INFO] generated %d %s for %q", len(suggestions), what, req.Title)
	rest.RenderJSON(w, suggestionsResponse{Suggestions: suggestions})
}
