package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/go-pkgz/lgr"
)

// ActivityEntry represents a single activity log entry for chart/goal changes.
type ActivityEntry struct {
	ID        int64     `json:"id" db:"id"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
	Action    string    `json:"action" db:"action"`
	ChartID   string    `json:"chart_id" db:"chart_id"`
	GoalID    string    `json:"goal_id" db:"goal_id"`
	Result    string    `json:"result" db:"result"`
	IP        string    `json:"ip,omitempty" db:"ip"`
	UserAgent string    `json:"user_agent,omitempty" db:"user_agent"`
	RequestID string    `json:"request_id,omitempty" db:"request_id"`
}

// ActivityQuery defines filters for querying the activity log.
type ActivityQuery struct {
	ChartID string    // exact match
	GoalID  string    // exact match
	Action  string    // exact match (empty = any)
	Result  string    // exact match (empty = any)
	From    time.Time // inclusive
	To      time.Time // inclusive
	Limit   int       // max entries to return
	Offset  int       // skip entries for pagination
}

// LogActivity inserts an activity entry into the activity_log table.
func (s *Store) LogActivity(ctx context.Context, entry ActivityEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := s.adoptQuery(`
		INSERT INTO activity_log (timestamp, action, chart_id, goal_id, result, ip, user_agent, request_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)

	_, err := s.db.ExecContext(ctx, query,
		entry.Timestamp.Format(time.RFC3339),
		entry.Action,
		entry.ChartID,
		entry.GoalID,
		entry.Result,
		entry.IP,
		entry.UserAgent,
		entry.RequestID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert activity entry: %w", err)
	}
	return nil
}

// QueryActivity retrieves activity entries matching the given filters.
// Returns entries ordered by timestamp descending (newest first).
func (s *Store) QueryActivity(ctx context.Context, q ActivityQuery) ([]ActivityEntry, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// build WHERE clause dynamically
	var conditions []string
	var args []any

	if q.ChartID != "" {
		conditions = append(conditions, "chart_id = ?")
		args = append(args, q.ChartID)
	}

	if q.GoalID != "" {
		conditions = append(conditions, "goal_id = ?")
		args = append(args, q.GoalID)
	}

	if q.Action != "" {
		conditions = append(conditions, "action = ?")
		args = append(args, q.Action)
	}

	if q.Result != "" {
		conditions = append(conditions, "result = ?")
		args = append(args, q.Result)
	}

	if !q.From.IsZero() {
		conditions = append(conditions, "timestamp >= ?")
		args = append(args, q.From.Format(time.RFC3339))
	}

	if !q.To.IsZero() {
		conditions = append(conditions, "timestamp <= ?")
		args = append(args, q.To.Format(time.RFC3339))
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	// get total count first
	countQuery := s.adoptQuery("SELECT COUNT(*) FROM activity_log" + whereClause)
	var total int
	if err := s.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count activity entries: %w", err)
	}

	// get entries with limit and offset
	limit := q.Limit
	if limit <= 0 {
		limit = 10000 // default limit
	}

	selectQuery := s.adoptQuery("SELECT id, timestamp, action, chart_id, goal_id, result, ip, user_agent, request_id FROM activity_log" +
		whereClause + " ORDER BY timestamp DESC, id DESC LIMIT ? OFFSET ?")
	args = append(args, limit, q.Offset)

	rows, err := s.db.QueryxContext(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query activity entries: %w", err)
	}
	defer rows.Close()

	var entries []ActivityEntry
	for rows.Next() {
		var r activityRow
		if err := rows.StructScan(&r); err != nil {
			return nil, 0, fmt.Errorf("failed to scan activity entry: %w", err)
		}
		entries = append(entries, r.toActivityEntry())
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating activity rows: %w", err)
	}

	return entries, total, nil
}

// activityRow is used for scanning activity log rows from the database.
type activityRow struct {
	ID        int64   `db:"id"`
	Timestamp string  `db:"timestamp"`
	Action    string  `db:"action"`
	ChartID   string  `db:"chart_id"`
	GoalID    string  `db:"goal_id"`
	Result    string  `db:"result"`
	IP        *string `db:"ip"`
	UserAgent *string `db:"user_agent"`
	RequestID *string `db:"request_id"`
}

// toActivityEntry converts the database row to an ActivityEntry.
func (r activityRow) toActivityEntry() ActivityEntry {
	ts, err := time.Parse(time.RFC3339, r.Timestamp)
	if err != nil {
		log.Printf("[WARN] failed to parse activity timestamp %q: %v", r.Timestamp, err)
	}

	e := ActivityEntry{
		ID:        r.ID,
		Timestamp: ts,
		Action:    r.Action,
		ChartID:   r.ChartID,
		GoalID:    r.GoalID,
		Result:    r.Result,
	}

	if r.IP != nil {
		e.IP = *r.IP
	}
	if r.UserAgent != nil {
		e.UserAgent = *r.UserAgent
	}
	if r.RequestID != nil {
		e.RequestID = *r.RequestID
	}

	return e
}

// DeleteActivityOlderThan removes activity entries older than the given time.
// Returns the number of deleted entries.
func (s *Store) DeleteActivityOlderThan(ctx context.Context, olderThan time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := s.adoptQuery("DELETE FROM activity_log WHERE timestamp < ?")
	result, err := s.db.ExecContext(ctx, query, olderThan.Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("failed to delete old activity entries: %w", err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	if count > 0 {
		log.Printf("[DEBUG] deleted %d activity entries older than %s", count, olderThan.Format(time.RFC3339))
	}
	return count, nil
}
