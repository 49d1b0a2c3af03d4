package mandala

import "time"

// goal kinds, from the chart center outward
const (
	KindChart   = "chart"
	KindSubGoal = "subgoal"
	KindAction  = "action"
	KindTask    = "task"
)

// task kinds for leaf goals
const (
	TaskKindExecution = "execution"
	TaskKindHabit     = "habit"
)

// Chart is the root of one mandala: a central goal and its goal tree.
type Chart struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Goal is one cell of a chart. Deadline and TaskKind are set only for
// task goals.
type Goal struct {
	ID          string     `json:"id"`
	ChartID     string     `json:"chart_id"`
	ParentID    string     `json:"parent_id,omitempty"`
	Kind        string     `json:"kind"`
	Position    int        `json:"position"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Background  string     `json:"background"`
	Constraints string     `json:"constraints"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	TaskKind    string     `json:"task_kind,omitempty"`
	Progress    int        `json:"progress"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Version returns the goal's optimistic concurrency token, derived from its
// last update time. Pass it to UpdateGoal to detect concurrent changes.
func (g Goal) Version() int64 { return g.UpdatedAt.UnixNano() }

// ChartView is a chart with its full goal tree, ordered center outward.
type ChartView struct {
	Chart Chart  `json:"chart"`
	Goals []Goal `json:"goals"`
}

// GenerateRequest carries the goal text suggestions are generated from.
type GenerateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Background  string `json:"background"`
	Constraints string `json:"constraints"`
}

// Suggestion is one generated sub-goal, action, or task.
type Suggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	TaskKind    string `json:"task_kind,omitempty"`
}
