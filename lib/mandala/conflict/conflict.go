// Package conflict computes field-level differences between two versions of
// a goal record and captures the user's reload-or-discard decision. It never
// merges: the resolver is a read-only projection over two snapshots plus a
// binary choice.
package conflict

import (
	"sync"
	"time"
)

// DeadlineFormat is the display format deadlines are normalized to before
// comparison, so equivalent instants with different serializations are not
// falsely flagged as changed.
const DeadlineFormat = "2006-01-02"

// Record is a snapshot of the comparable attributes of a goal. Deadline and
// TaskKind are type-specific: nil/empty means the attribute is absent and
// the corresponding diff field is skipped.
type Record struct {
	Title       string
	Description string
	Background  string
	Constraints string
	Deadline    *time.Time
	TaskKind    string
}

// Field is one compared attribute between the two record versions.
type Field struct {
	Field   string `json:"field"`
	Label   string `json:"label"`
	Current string `json:"current_value"`
	Latest  string `json:"latest_value"`
	Changed bool   `json:"has_changed"`
}

// taskKindLabels maps stored task kinds to display labels. Comparison uses
// the label, matching what the dialog shows.
var taskKindLabels = map[string]string{
	"execution": "Execution",
	"habit":     "Habit",
}

// Diff produces the ordered field-level difference between the locally
// edited record and the latest server record. The order is fixed (title,
// description, background, constraints, deadline, task kind), never derived
// from map iteration, so the result is stable across calls. Pure: it cannot
// fail and mutates neither input.
func Diff(current, latest Record) []Field {
	fields := []Field{
		compare("title", "Title", current.Title, latest.Title),
		compare("description", "Description", current.Description, latest.Description),
		compare("background", "Background", current.Background, latest.Background),
		compare("constraints", "Constraints", current.Constraints, latest.Constraints),
	}

	if current.Deadline != nil && latest.Deadline != nil {
		fields = append(fields, compare("deadline", "Deadline",
			current.Deadline.Format(DeadlineFormat), latest.Deadline.Format(DeadlineFormat)))
	}

	if current.TaskKind != "" && latest.TaskKind != "" {
		fields = append(fields, compare("task_kind", "Task Type",
			taskKindLabel(current.TaskKind), taskKindLabel(latest.TaskKind)))
	}

	return fields
}

// compare builds one diff field; changed is equality on the display values.
func compare(field, label, current, latest string) Field {
	return Field{
		Field:   field,
		Label:   label,
		Current: current,
		Latest:  latest,
		Changed: current != latest,
	}
}

// taskKindLabel maps a task kind through the label lookup, falling back to
// the raw value for unknown kinds rather than failing.
func taskKindLabel(kind string) string {
	if label, ok := taskKindLabels[kind]; ok {
		return label
	}
	return kind
}

// Choice is the user's decision: reload discards local draft state and
// re-fetches the latest version, discard abandons the edit session entirely.
type Choice string

// the only two offered outcomes, no field-level merge exists
const (
	ChoiceReload  Choice = "reload"
	ChoiceDiscard Choice = "discard"
)

// Resolver captures a single reload-or-discard decision and dispatches it to
// the caller-supplied callbacks. The first decision wins; once decided the
// dialog is gone and later calls are no-ops.
type Resolver struct {
	mu        sync.Mutex
	decided   bool
	choice    Choice
	onReload  func()
	onDiscard func()
}

// NewResolver creates a resolver with the two outcome callbacks. Either
// callback may be nil.
func NewResolver(onReload, onDiscard func()) *Resolver {
	return &Resolver{onReload: onReload, onDiscard: onDiscard}
}

// Resolve records the user's choice and invokes the matching callback.
// Unknown choices are treated as discard, the conservative outcome.
func (r *Resolver) Resolve(c Choice) {
	r.mu.Lock()
	if r.decided {
		r.mu.Unlock()
		return
	}
	if c != ChoiceReload {
		c = ChoiceDiscard
	}
	r.decided = true
	r.choice = c
	onReload, onDiscard := r.onReload, r.onDiscard
	r.mu.Unlock()

	if c == ChoiceReload {
		if onReload != nil {
			onReload()
		}
		return
	}
	if onDiscard != nil {
		onDiscard()
	}
}

// Escape handles the Escape key, equivalent to choosing discard.
func (r *Resolver) Escape() {
	r.Resolve(ChoiceDiscard)
}

// Decided reports whether a choice has been made.
func (r *Resolver) Decided() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.decided
}

// Choice returns the recorded decision, empty until Decided.
func (r *Resolver) Choice() Choice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.choice
}
