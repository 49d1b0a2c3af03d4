// Package store provides chart and goal storage for the mandala planner.
package store

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

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

// activity log actions
const (
	ActionCreate   = "create"
	ActionUpdate   = "update"
	ActionDelete   = "delete"
	ActionGenerate = "generate"
)

// activity log results
const (
	ResultSuccess  = "success"
	ResultConflict = "conflict"
	ResultError    = "error"
)

// Chart is the root of one mandala: a central goal and its goal tree.
type Chart struct {
	ID        string    `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Goal is one cell of a chart: a sub-goal, an action, or a task.
// Deadline and TaskKind are set only for task goals.
type Goal struct {
	ID          string     `db:"id" json:"id"`
	ChartID     string     `db:"chart_id" json:"chart_id"`
	ParentID    string     `db:"parent_id" json:"parent_id,omitempty"`
	Kind        string     `db:"kind" json:"kind"`
	Position    int        `db:"position" json:"position"`
	Title       string     `db:"title" json:"title"`
	Description string     `db:"description" json:"description"`
	Background  string     `db:"background" json:"background"`
	Constraints string     `db:"constraints" json:"constraints"`
	Deadline    *time.Time `db:"deadline" json:"deadline,omitempty"`
	TaskKind    string     `db:"task_kind" json:"task_kind,omitempty"`
	Progress    int        `db:"progress" json:"progress"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// ConflictError is returned by UpdateGoalWithVersion when the goal changed
// since the version the caller last read. Current carries the server's row
// so the caller can diff it against the rejected update.
type ConflictError struct {
	Expected time.Time
	Actual   time.Time
	Current  Goal
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	return fmt.Sprintf("goal %s changed concurrently: expected version %s, current %s",
		e.Current.ID, e.Expected.Format(time.RFC3339Nano), e.Actual.Format(time.RFC3339Nano))
}

// Conflict marks the error as a version conflict for callers that detect
// conflicts structurally (errors.As on an interface) without importing store.
func (e *ConflictError) Conflict() bool { return true }

// RWLocker is a subset of sync.RWMutex, allows noop locker for databases
// with real concurrent write support.
type RWLocker interface {
	Lock()
	Unlock()
	RLock()
	RUnlock()
}

// noopLocker is used for postgres which handles concurrency natively.
type noopLocker struct{}

func (noopLocker) Lock()    {}
func (noopLocker) Unlock()  {}
func (noopLocker) RLock()   {}
func (noopLocker) RUnlock() {}

// DBType represents the database backend.
type DBType int

// supported database backends
const (
	DBTypeSQLite DBType = iota
	DBTypePostgres
)
