// Package sse provides Server-Sent Events support for real-time goal change
// notifications, so an editing client can learn its record changed out of
// band and reset or offer conflict resolution.
package sse

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/tmaxmax/go-sse"
)

// Event represents a goal change event sent to subscribers.
type Event struct {
	ChartID   string `json:"chart_id"`
	GoalID    string `json:"goal_id,omitempty"`
	Action    string `json:"action"`
	Timestamp string `json:"timestamp"`
}

// Service handles SSE subscriptions for goal change events.
type Service struct {
	server *sse.Server
}

// New creates a new SSE service.
func New() *Service {
	s := &Service{}
	s.server = &sse.Server{
		OnSession: s.onSession,
	}
	return s
}

// ServeHTTP implements http.Handler for SSE subscriptions.
// Extends write deadline to allow long-lived streaming connections.
func (s *Service) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// extend write deadline for SSE - this connection will be long-lived
	rc := http.NewResponseController(w)
	if err := rc.SetWriteDeadline(time.Time{}); err != nil {
		// if we can't disable timeout, set a very long one (24 hours)
		if err2 := rc.SetWriteDeadline(time.Now().Add(24 * time.Hour)); err2 != nil {
			log.Printf("[DEBUG] sse: could not set write deadline: %v, %v", err, err2)
		}
	}

	s.server.ServeHTTP(w, r)
}

// onSession handles new SSE connections - validates the chart path and
// returns the topic. "*" subscribes to all charts.
func (s *Service) onSession(w http.ResponseWriter, r *http.Request) ([]string, bool) {
	rawPath := r.PathValue("chart")
	chartID := strings.Trim(rawPath, "/")
	if chartID == "" {
		http.Error(w, "chart id required", http.StatusBadRequest)
		return nil, false
	}

	topic := chartID
	if chartID == "*" {
		topic = "" // wildcard topic, receives every chart's events
	}

	log.Printf("[DEBUG] sse subscription: topic=%q", topic)
	return []string{topic}, true
}

// Publish sends a goal change event to subscribers of the chart and to
// wildcard subscribers.
func (s *Service) Publish(chartID, goalID, action string) {
	event := Event{
		ChartID:   chartID,
		GoalID:    goalID,
		Action:    action,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[WARN] sse: failed to marshal event: %v", err)
		return
	}

	msg := &sse.Message{}
	msg.AppendData(string(data))
	msg.Type = sse.Type("change")

	for _, topic := range []string{chartID, ""} {
		if err := s.server.Publish(msg, topic); err != nil {
			log.Printf("[WARN] sse: failed to publish to topic %q: %v", topic, err)
		}
	}
	log.Printf("[DEBUG] sse: published %s event for chart %q goal %q", action, chartID, goalID)
}

// Shutdown gracefully shuts down the SSE server.
func (s *Service) Shutdown(ctx context.Context) error {
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown sse server: %w", err)
	}
	return nil
}
