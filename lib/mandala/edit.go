package mandala

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gurza/mandala/lib/mandala/conflict"
	"github.com/gurza/mandala/lib/mandala/editor"
)

// editable goal text fields
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldBackground  = "background"
	FieldConstraints = "constraints"
)

// field length limits in runes, matching server-side validation
const (
	titleMaxLen = 100
	textMaxLen  = 1000
)

// FieldEditor binds an edit session for one goal text field to the HTTP
// client: commits save through UpdateGoal with the goal's version token, a
// lost version race moves the session to PhaseConflict and arms a
// reload-or-discard resolver over the server row.
//
// Safe for concurrent use. One FieldEditor edits one field of one goal;
// create a new one to edit another field.
type FieldEditor struct {
	client *Client
	field  string

	session *editor.Session

	mu       sync.Mutex
	goal     Goal           // last known server row, version source for saves
	conflict *ConflictError // set while a conflict awaits resolution
	resolver *conflict.Resolver
}

// NewFieldEditor creates an editor for one text field of a goal and begins
// the edit session at the goal's current value.
func NewFieldEditor(client *Client, goal Goal, field string) (*FieldEditor, error) {
	switch field {
	case FieldTitle, FieldDescription, FieldBackground, FieldConstraints:
	default:
		return nil, fmt.Errorf("field %q is not editable", field)
	}

	e := &FieldEditor{client: client, field: field, goal: goal}

	maxLen := textMaxLen
	if field == FieldTitle {
		maxLen = titleMaxLen
	}

	session, err := editor.New(editor.Config{
		MaxLength: maxLen,
		Multiline: field != FieldTitle,
		Save:      e.save,
	})
	if err != nil {
		return nil, err
	}
	e.session = session

	e.session.Begin(fieldValue(goal, field))
	return e, nil
}

// Session returns the underlying edit session for draft changes, commits,
// and key handling.
func (e *FieldEditor) Session() *editor.Session { return e.session }

// Goal returns the last known server row, updated after each successful save.
func (e *FieldEditor) Goal() Goal {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.goal
}

// Conflict returns the pending conflict, or nil when the last commit did not
// lose a version race. Fields on the result carry the ordered diff for the
// dialog.
func (e *FieldEditor) Conflict() *ConflictError {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.conflict
}

// Resolver returns the reload-or-discard resolver for the pending conflict,
// or nil when there is none. The first decision wins; Escape counts as
// discard.
func (e *FieldEditor) Resolver() *conflict.Resolver {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.resolver
}

// save persists the draft through the API with optimistic locking. On a
// version conflict it records the server row and arms the resolver, then
// returns the error so the session surfaces PhaseConflict.
func (e *FieldEditor) save(ctx context.Context, value string) error {
	e.mu.Lock()
	g := e.goal
	e.mu.Unlock()

	setFieldValue(&g, e.field, value)

	updated, err := e.client.UpdateGoal(ctx, g, g.Version())
	if err != nil {
		var conflictErr *ConflictError
		if errors.As(err, &conflictErr) {
			e.mu.Lock()
			e.conflict = conflictErr
			e.resolver = conflict.NewResolver(e.reload, e.discard)
			e.mu.Unlock()
		}
		return err
	}

	e.mu.Lock()
	e.goal = updated
	e.conflict = nil
	e.resolver = nil
	e.mu.Unlock()
	return nil
}

// reload adopts the server row wholesale: the session restarts at the
// server's value and the local draft is dropped. A resolver handle obtained
// before a later successful save may still be resolved; the conflict is gone
// by then and the call is a no-op.
func (e *FieldEditor) reload() {
	e.mu.Lock()
	if e.conflict == nil {
		e.mu.Unlock()
		return
	}
	latest := e.conflict.Latest
	e.goal = latest
	e.conflict = nil
	e.resolver = nil
	e.mu.Unlock()

	e.session.Reset(fieldValue(latest, e.field))
}

// discard keeps the local draft and adopts only the server's version token,
// so the next commit overwrites the concurrent change.
func (e *FieldEditor) discard() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.conflict == nil {
		return
	}
	e.goal.UpdatedAt = e.conflict.Latest.UpdatedAt
	e.conflict = nil
	e.resolver = nil
}

// fieldValue extracts the named text field from a goal.
func fieldValue(g Goal, field string) string {
	switch field {
	case FieldTitle:
		return g.Title
	case FieldDescription:
		return g.Description
	case FieldBackground:
		return g.Background
	case FieldConstraints:
		return g.Constraints
	}
	return ""
}

// setFieldValue sets the named text field on a goal.
func setFieldValue(g *Goal, field, value string) {
	switch field {
	case FieldTitle:
		g.Title = value
	case FieldDescription:
		g.Description = value
	case FieldBackground:
		g.Background = value
	case FieldConstraints:
		g.Constraints = value
	}
}
