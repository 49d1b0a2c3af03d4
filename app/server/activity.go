package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/realip"

	"github.com/gurza/mandala/app/store"
)

// activityQueryRequest represents the JSON request for activity query.
type activityQueryRequest struct {
	ChartID string `json:"chart_id,omitempty"`
	GoalID  string `json:"goal_id,omitempty"`
	Action  string `json:"action,omitempty"` // create, update, delete, generate
	Result  string `json:"result,omitempty"` // success, conflict, error
	From    string `json:"from,omitempty"`   // RFC3339 timestamp
	To      string `json:"to,omitempty"`     // RFC3339 timestamp
	Limit   int    `json:"limit,omitempty"`  // max entries to return
	Offset  int    `json:"offset,omitempty"` // skip entries for pagination
}

// activityQueryResponse represents the JSON response for activity query.
type activityQueryResponse struct {
	Entries []store.ActivityEntry `json:"entries"`
	Total   int                   `json:"total"`
	Limit   int                   `json:"limit"`
}

// handleActivityQuery handles POST /api/activity/query requests.
func (s *Server) handleActivityQuery(w http.ResponseWriter, r *http.Request) {
	var req activityQueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, err, "invalid request body")
		return
	}

	query, err := s.buildActivityQuery(req)
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, err, "invalid query parameters")
		return
	}

	entries, total, err := s.Activity.QueryActivity(r.Context(), query)
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusInternalServerError, err, "failed to query activity log")
		return
	}

	// ensure entries is never nil in response
	if entries == nil {
		entries = []store.ActivityEntry{}
	}

	rest.RenderJSON(w, activityQueryResponse{
		Entries: entries,
		Total:   total,
		Limit:   query.Limit,
	})
}

// buildActivityQuery converts the request to a store.ActivityQuery.
func (s *Server) buildActivityQuery(req activityQueryRequest) (store.ActivityQuery, error) {
	q := store.ActivityQuery{
		ChartID: req.ChartID,
		GoalID:  req.GoalID,
		Action:  req.Action,
		Result:  req.Result,
		Limit:   req.Limit,
		Offset:  req.Offset,
	}

	maxLimit := s.ActivityQueryLimit
	if maxLimit <= 0 {
		maxLimit = 10000
	}
	if q.Limit <= 0 || q.Limit > maxLimit {
		q.Limit = maxLimit
	}

	if req.From != "" {
		from, err := time.Parse(time.RFC3339, req.From)
		if err != nil {
			return store.ActivityQuery{}, fmt.Errorf("invalid from: %w", err)
		}
		q.From = from
	}

	if req.To != "" {
		to, err := time.Parse(time.RFC3339, req.To)
		if err != nil {
			return store.ActivityQuery{}, fmt.Errorf("invalid to: %w", err)
		}
		q.To = to
	}

	return q, nil
}

// activityMiddleware returns middleware logging mutations to the activity
// log, or a noop when activity logging is disabled.
func (s *Server) activityMiddleware() func(http.Handler) http.Handler {
	if !s.ActivityEnabled || s.Activity == nil {
		return func(next http.Handler) http.Handler { return next }
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// only mutations on charts, goals, and generation are audited
			if !auditable(r) {
				next.ServeHTTP(w, r)
				return
			}

			rc := newResponseCapture(w)
			next.ServeHTTP(rc, r)

			entry := buildActivityEntry(r, rc.status)
			if err := s.Activity.LogActivity(r.Context(), entry); err != nil {
				log.Printf("[WARN] failed to log activity entry: %v", err)
			}
		})
	}
}

// auditable reports whether the request should produce an activity entry.
// The middleware runs inside the /api mount, routegroup keeps the mount
// prefix in the request path.
func auditable(r *http.Request) bool {
	if r.Method == http.MethodGet {
		return false
	}
	path := apiPath(r)
	return strings.HasPrefix(path, "/charts") || strings.HasPrefix(path, "/goals") ||
		strings.HasPrefix(path, "/generate")
}

// apiPath returns the request path with the /api mount prefix removed.
func apiPath(r *http.Request) string {
	return strings.TrimPrefix(r.URL.Path, "/api")
}

// buildActivityEntry creates an activity entry from request and response data.
func buildActivityEntry(r *http.Request, status int) store.ActivityEntry {
	ip, _ := realip.Get(r) // ignore error, fallback to empty string
	path := apiPath(r)

	entry := store.ActivityEntry{
		Timestamp: time.Now(),
		Action:    mapAction(r.Method, path),
		Result:    mapStatus(status),
		IP:        ip,
		UserAgent: r.UserAgent(),
		RequestID: r.Header.Get("X-Request-ID"),
	}

	// extract chart/goal references from the path
	switch {
	case strings.HasPrefix(path, "/charts/"):
		entry.ChartID = strings.TrimPrefix(path, "/charts/")
	case strings.HasPrefix(path, "/goals/"):
		entry.GoalID = strings.TrimPrefix(path, "/goals/")
	}

	return entry
}

// mapAction maps HTTP method and path to an activity action.
func mapAction(method, path string) string {
	if strings.HasPrefix(path, "/generate") {
		return store.ActionGenerate
	}
	switch method {
	case http.MethodPost:
		return store.ActionCreate
	case http.MethodDelete:
		return store.ActionDelete
	default:
		return store.ActionUpdate
	}
}

// mapStatus maps the response status to an activity result; a lost version
// race is recorded distinctly from other failures.
func mapStatus(status int) string {
	switch {
	case status == http.StatusConflict:
		return store.ResultConflict
	case status >= 400:
		return store.ResultError
	default:
		return store.ResultSuccess
	}
}
