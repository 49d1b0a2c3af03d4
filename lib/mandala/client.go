package mandala

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-pkgz/requester"
	"github.com/go-pkgz/requester/middleware"
)

// defaults for client configuration
const (
	defaultTimeout    = 30 * time.Second
	defaultRetryCount = 3
	defaultRetryDelay = 100 * time.Millisecond
)

// Client is a mandala planner API client.
type Client struct {
	baseURL   string
	requester *requester.Requester
}

// clientConfig holds configuration options during client construction.
type clientConfig struct {
	timeout    time.Duration
	retryCount int
	retryDelay time.Duration
	httpClient *http.Client
}

// Option is a functional option for configuring the client.
type Option func(*clientConfig)

// WithTimeout sets the HTTP request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(cfg *clientConfig) {
		cfg.timeout = timeout
	}
}

// WithRetry configures retry behavior.
func WithRetry(count int, delay time.Duration) Option {
	return func(cfg *clientConfig) {
		cfg.retryCount = count
		cfg.retryDelay = delay
	}
}

// WithHTTPClient sets a custom http.Client.
// Note: when using WithHTTPClient, the WithTimeout option has no effect
// since timeout is configured on the http.Client directly.
func WithHTTPClient(client *http.Client) Option {
	return func(cfg *clientConfig) {
		cfg.httpClient = client
	}
}

// New creates a new mandala client with the given base URL and options.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("base URL is required")
	}

	// normalize base URL
	baseURL = strings.TrimSuffix(baseURL, "/")

	cfg := &clientConfig{
		timeout:    defaultTimeout,
		retryCount: defaultRetryCount,
		retryDelay: defaultRetryDelay,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	var middlewares []middleware.RoundTripperHandler
	if cfg.retryCount > 0 {
		middlewares = append(middlewares, middleware.Retry(cfg.retryCount, cfg.retryDelay))
	}

	httpClient := cfg.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.timeout}
	}

	return &Client{
		baseURL:   baseURL,
		requester: requester.New(*httpClient, middlewares...),
	}, nil
}

// Charts returns all charts.
func (c *Client) Charts(ctx context.Context) ([]Chart, error) {
	var charts []Chart
	if err := c.getJSON(ctx, c.baseURL+"/api/charts", &charts); err != nil {
		return nil, err
	}
	return charts, nil
}

// CreateChart creates a new chart with the given title.
func (c *Client) CreateChart(ctx context.Context, title string) (Chart, error) {
	if title == "" {
		return Chart{}, errors.New("title is required")
	}
	var chart Chart
	err := c.doJSON(ctx, http.MethodPost, c.baseURL+"/api/charts",
		map[string]string{"title": title}, &chart)
	return chart, err
}

// Chart retrieves a chart with its full goal tree.
func (c *Client) Chart(ctx context.Context, id string) (ChartView, error) {
	if id == "" {
		return ChartView{}, errors.New("chart id is required")
	}
	u, err := url.JoinPath(c.baseURL, "api", "charts", id)
	if err != nil {
		return ChartView{}, fmt.Errorf("failed to build URL: %w", err)
	}
	var view ChartView
	if err := c.getJSON(ctx, u, &view); err != nil {
		return ChartView{}, err
	}
	return view, nil
}

// DeleteChart removes a chart and all its goals.
func (c *Client) DeleteChart(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("chart id is required")
	}
	u, err := url.JoinPath(c.baseURL, "api", "charts", id)
	if err != nil {
		return fmt.Errorf("failed to build URL: %w", err)
	}
	return c.doJSON(ctx, http.MethodDelete, u, nil, nil)
}

// CreateGoal creates a new goal in a chart.
func (c *Client) CreateGoal(ctx context.Context, g Goal) (Goal, error) {
	if g.ChartID == "" {
		return Goal{}, errors.New("chart id is required")
	}
	var created Goal
	err := c.doJSON(ctx, http.MethodPost, c.baseURL+"/api/goals", goalBody(g, 0, false), &created)
	return created, err
}

// Goal retrieves a single goal.
func (c *Client) Goal(ctx context.Context, id string) (Goal, error) {
	if id == "" {
		return Goal{}, errors.New("goal id is required")
	}
	u, err := url.JoinPath(c.baseURL, "api", "goals", id)
	if err != nil {
		return Goal{}, fmt.Errorf("failed to build URL: %w", err)
	}
	var goal Goal
	if err := c.getJSON(ctx, u, &goal); err != nil {
		return Goal{}, err
	}
	return goal, nil
}

// UpdateGoal updates a goal with optimistic locking. Pass the version token
// from the last read (Goal.Version); if the goal changed on the server since
// then, the error is *ConflictError carrying the server row and the
// field-level diff. Pass version 0 to update unconditionally.
func (c *Client) UpdateGoal(ctx context.Context, g Goal, version int64) (Goal, error) {
	return c.updateGoal(ctx, g, version, false)
}

// ForceUpdateGoal overwrites a goal regardless of its server version. Used
// after the user chooses to discard the server's concurrent change.
func (c *Client) ForceUpdateGoal(ctx context.Context, g Goal) (Goal, error) {
	return c.updateGoal(ctx, g, 0, true)
}

func (c *Client) updateGoal(ctx context.Context, g Goal, version int64, force bool) (Goal, error) {
	if g.ID == "" {
		return Goal{}, errors.New("goal id is required")
	}
	u, err := url.JoinPath(c.baseURL, "api", "goals", g.ID)
	if err != nil {
		return Goal{}, fmt.Errorf("failed to build URL: %w", err)
	}
	var updated Goal
	if err := c.doJSON(ctx, http.MethodPut, u, goalBody(g, version, force), &updated); err != nil {
		return Goal{}, err
	}
	return updated, nil
}

// DeleteGoal removes a goal.
func (c *Client) DeleteGoal(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("goal id is required")
	}
	u, err := url.JoinPath(c.baseURL, "api", "goals", id)
	if err != nil {
		return fmt.Errorf("failed to build URL: %w", err)
	}
	return c.doJSON(ctx, http.MethodDelete, u, nil, nil)
}

// SubGoals requests AI-generated sub-goal suggestions for a central goal.
func (c *Client) SubGoals(ctx context.Context, req GenerateRequest) ([]Suggestion, error) {
	return c.generate(ctx, "subgoals", req)
}

// Actions requests AI-generated action suggestions for a sub-goal.
func (c *Client) Actions(ctx context.Context, req GenerateRequest) ([]Suggestion, error) {
	return c.generate(ctx, "actions", req)
}

// Tasks requests AI-generated task suggestions for an action.
func (c *Client) Tasks(ctx context.Context, req GenerateRequest) ([]Suggestion, error) {
	return c.generate(ctx, "tasks", req)
}

func (c *Client) generate(ctx context.Context, what string, req GenerateRequest) ([]Suggestion, error) {
	if req.Title == "" {
		return nil, errors.New("title is required")
	}
	var resp struct {
		Suggestions []Suggestion `json:"suggestions"`
	}
	if err := c.doJSON(ctx, http.MethodPost, c.baseURL+"/api/generate/"+what, req, &resp); err != nil {
		return nil, err
	}
	return resp.Suggestions, nil
}

// Ping checks server connectivity.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/ping", http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.requester.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	return c.checkResponse(resp)
}

// getJSON performs a GET request and decodes the JSON response into out.
func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	return c.doJSON(ctx, http.MethodGet, u, nil, out)
}

// doJSON performs a request with an optional JSON body and decodes the JSON
// response into out (skipped if out is nil or the response has no content).
func (c *Client) doJSON(ctx context.Context, method, u string, body, out any) error {
	var reader io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.requester.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := c.checkResponse(resp); err != nil {
		return err
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// checkResponse handles HTTP response status codes and returns appropriate
// errors. A 409 response body is decoded into *ConflictError.
func (c *Client) checkResponse(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		conflictErr := &ConflictError{}
		if err := json.NewDecoder(resp.Body).Decode(conflictErr); err != nil {
			return &ResponseError{StatusCode: resp.StatusCode}
		}
		return conflictErr
	default:
		var body struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&body) // best effort, body may be empty
		return &ResponseError{StatusCode: resp.StatusCode, Message: body.Error}
	}
}

// goalBody builds the JSON request body for goal create and update calls.
func goalBody(g Goal, version int64, force bool) map[string]any {
	body := map[string]any{
		"chart_id":    g.ChartID,
		"parent_id":   g.ParentID,
		"kind":        g.Kind,
		"position":    g.Position,
		"title":       g.Title,
		"description": g.Description,
		"background":  g.Background,
		"constraints": g.Constraints,
		"progress":    g.Progress,
	}
	if g.Deadline != nil {
		body["deadline"] = g.Deadline
	}
	if g.TaskKind != "" {
		body["task_kind"] = g.TaskKind
	}
	if version != 0 {
		body["expected_version"] = version
	}
	if force {
		body["force"] = true
	}
	return body
}
