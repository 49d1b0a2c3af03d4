package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib" // postgresql driver
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // sqlite driver
)

// Store implements chart and goal storage using SQLite or PostgreSQL.
type Store struct {
	db     *sqlx.DB
	dbType DBType
	mu     RWLocker
}

// New creates a new Store with the given database URL.
// Automatically detects database type from URL:
// - postgres:// or postgresql:// -> PostgreSQL
// - everything else -> SQLite
func New(dbURL string) (*Store, error) {
	dbType := detectDBType(dbURL)

	var db *sqlx.DB
	var err error
	var locker RWLocker

	switch dbType {
	case DBTypePostgres:
		db, err = connectPostgres(dbURL)
		locker = noopLocker{}
	default:
		db, err = connectSQLite(dbURL)
		locker = &sync.RWMutex{}
	}

	if err != nil {
		return nil, err
	}

	s := &Store{db: db, dbType: dbType, mu: locker}

	if err := s.createSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	log.Printf("[DEBUG] initialized %s store", s.dbTypeName())
	return s, nil
}

// detectDBType determines database type from URL.
func detectDBType(url string) DBType {
	lower := strings.ToLower(url)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return DBTypePostgres
	}
	return DBTypeSQLite
}

// connectSQLite establishes SQLite connection with pragmas.
func connectSQLite(dbPath string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to sqlite: %w", err)
	}

	// set pragmas for performance and reliability
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA cache_size=1000",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to set pragma %q: %w", pragma, err)
		}
	}

	// limit connections for SQLite (single writer)
	db.SetMaxOpenConns(1)

	return db, nil
}

// connectPostgres establishes PostgreSQL connection.
func connectPostgres(dbURL string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("pgx", dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	// set reasonable connection pool defaults
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

// createSchema creates the charts, goals and activity_log tables if missing.
func (s *Store) createSchema() error {
	var schemas []string
	switch s.dbType {
	case DBTypePostgres:
		schemas = []string{
			`CREATE TABLE IF NOT EXISTS charts (
				id TEXT PRIMARY KEY,
				title TEXT NOT NULL,
				created_at TIMESTAMP DEFAULT NOW(),
				updated_at TIMESTAMP DEFAULT NOW()
			)`,
			`CREATE TABLE IF NOT EXISTS goals (
				id TEXT PRIMARY KEY,
				chart_id TEXT NOT NULL REFERENCES charts(id) ON DELETE CASCADE,
				parent_id TEXT NOT NULL DEFAULT '',
				kind TEXT NOT NULL,
				position INTEGER NOT NULL DEFAULT 0,
				title TEXT NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				background TEXT NOT NULL DEFAULT '',
				constraints TEXT NOT NULL DEFAULT '',
				deadline TIMESTAMP,
				task_kind TEXT NOT NULL DEFAULT '',
				progress INTEGER NOT NULL DEFAULT 0,
				created_at TIMESTAMP DEFAULT NOW(),
				updated_at TIMESTAMP DEFAULT NOW()
			)`,
			`CREATE INDEX IF NOT EXISTS idx_goals_chart ON goals(chart_id)`,
			`CREATE TABLE IF NOT EXISTS activity_log (
				id SERIAL PRIMARY KEY,
				timestamp TEXT NOT NULL,
				action TEXT NOT NULL,
				chart_id TEXT NOT NULL DEFAULT '',
				goal_id TEXT NOT NULL DEFAULT '',
				result TEXT NOT NULL,
				ip TEXT,
				user_agent TEXT,
				request_id TEXT
			)`,
		}
	default:
		schemas = []string{
			`CREATE TABLE IF NOT EXISTS charts (
				id TEXT PRIMARY KEY,
				title TEXT NOT NULL,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE TABLE IF NOT EXISTS goals (
				id TEXT PRIMARY KEY,
				chart_id TEXT NOT NULL REFERENCES charts(id) ON DELETE CASCADE,
				parent_id TEXT NOT NULL DEFAULT '',
				kind TEXT NOT NULL,
				position INTEGER NOT NULL DEFAULT 0,
				title TEXT NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				background TEXT NOT NULL DEFAULT '',
				constraints TEXT NOT NULL DEFAULT '',
				deadline DATETIME,
				task_kind TEXT NOT NULL DEFAULT '',
				progress INTEGER NOT NULL DEFAULT 0,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE INDEX IF NOT EXISTS idx_goals_chart ON goals(chart_id)`,
			`CREATE TABLE IF NOT EXISTS activity_log (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				timestamp TEXT NOT NULL,
				action TEXT NOT NULL,
				chart_id TEXT NOT NULL DEFAULT '',
				goal_id TEXT NOT NULL DEFAULT '',
				result TEXT NOT NULL,
				ip TEXT,
				user_agent TEXT,
				request_id TEXT
			)`,
		}
	}
	for _, schema := range schemas {
		if _, err := s.db.Exec(schema); err != nil {
			return fmt.Errorf("failed to execute schema: %w", err)
		}
	}
	return nil
}

// dbTypeName returns human-readable database type name.
func (s *Store) dbTypeName() string {
	switch s.dbType {
	case DBTypePostgres:
		return "postgres"
	default:
		return "sqlite"
	}
}

// CreateChart creates a new chart with the given title.
func (s *Store) CreateChart(ctx context.Context, title string) (Chart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	c := Chart{ID: uuid.New().String(), Title: title, CreatedAt: now, UpdatedAt: now}
	query := s.adoptQuery("INSERT INTO charts (id, title, created_at, updated_at) VALUES (?, ?, ?, ?)")
	if _, err := s.db.ExecContext(ctx, query, c.ID, c.Title, c.CreatedAt, c.UpdatedAt); err != nil {
		return Chart{}, fmt.Errorf("failed to create chart: %w", err)
	}
	return c, nil
}

// GetChart retrieves a chart by id. Returns ErrNotFound if it does not exist.
func (s *Store) GetChart(ctx context.Context, id string) (Chart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var c Chart
	query := s.adoptQuery("SELECT id, title, created_at, updated_at FROM charts WHERE id = ?")
	err := s.db.GetContext(ctx, &c, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Chart{}, ErrNotFound
	}
	if err != nil {
		return Chart{}, fmt.Errorf("failed to get chart %q: %w", id, err)
	}
	return c, nil
}

// ListCharts returns all charts ordered by updated_at descending.
func (s *Store) ListCharts(ctx context.Context) ([]Chart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var charts []Chart
	query := "SELECT id, title, created_at, updated_at FROM charts ORDER BY updated_at DESC"
	if err := s.db.SelectContext(ctx, &charts, query); err != nil {
		return nil, fmt.Errorf("failed to list charts: %w", err)
	}
	return charts, nil
}

// DeleteChart removes a chart and all its goals.
// Returns ErrNotFound if the chart does not exist.
func (s *Store) DeleteChart(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// explicit goal cleanup, sqlite may run without foreign_keys enforcement
	if _, err := s.db.ExecContext(ctx, s.adoptQuery("DELETE FROM goals WHERE chart_id = ?"), id); err != nil {
		return fmt.Errorf("failed to delete goals of chart %q: %w", id, err)
	}

	result, err := s.db.ExecContext(ctx, s.adoptQuery("DELETE FROM charts WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("failed to delete chart %q: %w", id, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

const goalColumns = "id, chart_id, parent_id, kind, position, title, description, background, constraints, deadline, task_kind, progress, created_at, updated_at"

// CreateGoal stores a new goal. ID and timestamps are assigned by the store.
func (s *Store) CreateGoal(ctx context.Context, g Goal) (Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	g.ID = uuid.New().String()
	g.CreatedAt = now
	g.UpdatedAt = now

	query := s.adoptQuery(`INSERT INTO goals (` + goalColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := s.db.ExecContext(ctx, query, g.ID, g.ChartID, g.ParentID, g.Kind, g.Position,
		g.Title, g.Description, g.Background, g.Constraints, g.Deadline, g.TaskKind, g.Progress,
		g.CreatedAt, g.UpdatedAt)
	if err != nil {
		return Goal{}, fmt.Errorf("failed to create goal: %w", err)
	}
	return g, nil
}

// GetGoal retrieves a goal by id. Returns ErrNotFound if it does not exist.
func (s *Store) GetGoal(ctx context.Context, id string) (Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getGoal(ctx, id)
}

// getGoal is GetGoal without locking, for callers already holding the lock.
func (s *Store) getGoal(ctx context.Context, id string) (Goal, error) {
	var g Goal
	query := s.adoptQuery("SELECT " + goalColumns + " FROM goals WHERE id = ?")
	err := s.db.GetContext(ctx, &g, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Goal{}, ErrNotFound
	}
	if err != nil {
		return Goal{}, fmt.Errorf("failed to get goal %q: %w", id, err)
	}
	return g, nil
}

// ListGoals returns all goals of a chart ordered by kind depth and position.
func (s *Store) ListGoals(ctx context.Context, chartID string) ([]Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var goals []Goal
	query := s.adoptQuery(`SELECT ` + goalColumns + ` FROM goals WHERE chart_id = ?
		ORDER BY CASE kind WHEN 'chart' THEN 0 WHEN 'subgoal' THEN 1 WHEN 'action' THEN 2 ELSE 3 END, position, created_at`)
	if err := s.db.SelectContext(ctx, &goals, query, chartID); err != nil {
		return nil, fmt.Errorf("failed to list goals for chart %q: %w", chartID, err)
	}
	return goals, nil
}

// UpdateGoal updates the editable fields of a goal unconditionally.
// Returns the updated goal, or ErrNotFound if it does not exist.
func (s *Store) UpdateGoal(ctx context.Context, g Goal) (Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	query := s.adoptQuery(`UPDATE goals SET title = ?, description = ?, background = ?, constraints = ?,
		deadline = ?, task_kind = ?, progress = ?, updated_at = ? WHERE id = ?`)
	result, err := s.db.ExecContext(ctx, query, g.Title, g.Description, g.Background, g.Constraints,
		g.Deadline, g.TaskKind, g.Progress, now, g.ID)
	if err != nil {
		return Goal{}, fmt.Errorf("failed to update goal %q: %w", g.ID, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return Goal{}, fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rows == 0 {
		return Goal{}, ErrNotFound
	}
	return s.getGoal(ctx, g.ID)
}

// UpdateGoalWithVersion updates a goal only if its updated_at still matches
// expectedVersion (optimistic locking). The check and update run as a single
// conditional UPDATE, the version either matches atomically or the call fails
// with *ConflictError carrying the current server row.
func (s *Store) UpdateGoalWithVersion(ctx context.Context, g Goal, expectedVersion time.Time) (Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	query := s.adoptQuery(`UPDATE goals SET title = ?, description = ?, background = ?, constraints = ?,
		deadline = ?, task_kind = ?, progress = ?, updated_at = ? WHERE id = ? AND updated_at = ?`)
	result, err := s.db.ExecContext(ctx, query, g.Title, g.Description, g.Background, g.Constraints,
		g.Deadline, g.TaskKind, g.Progress, now, g.ID, expectedVersion)
	if err != nil {
		return Goal{}, fmt.Errorf("failed to update goal %q: %w", g.ID, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return Goal{}, fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rows > 0 {
		return s.getGoal(ctx, g.ID)
	}

	// zero rows: either the goal is gone or the version moved on
	current, getErr := s.getGoal(ctx, g.ID)
	if getErr != nil {
		return Goal{}, getErr // ErrNotFound or query failure
	}
	return Goal{}, &ConflictError{Expected: expectedVersion, Actual: current.UpdatedAt, Current: current}
}

// DeleteGoal removes a goal. Returns ErrNotFound if it does not exist.
func (s *Store) DeleteGoal(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(ctx, s.adoptQuery("DELETE FROM goals WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("failed to delete goal %q: %w", id, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

// adoptQuery converts SQLite placeholders (?) to PostgreSQL ($1, $2, ...).
func (s *Store) adoptQuery(query string) string {
	if s.dbType != DBTypePostgres {
		return query
	}

	result := make([]byte, 0, len(query)+10)
	paramNum := 1
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			result = append(result, '$')
			result = append(result, fmt.Sprintf("%d", paramNum)...)
			paramNum++
		} else {
			result = append(result, query[i])
		}
	}
	return string(result)
}
