// Package editor implements the edit session lifecycle for a single goal
// field: draft tracking, debounced validation, save serialization, and
// revert-on-failure. One Session owns one field's edit interaction from
// Begin to Commit or Cancel; sessions share no state with each other.
package editor

import (
	"context"
	"errors"
	"sync"
	"time"
)

// DefaultDebounce is the delay after the last edit before validation runs.
const DefaultDebounce = 300 * time.Millisecond

// ErrConflict marks a save failure caused by the record changing
// concurrently on the server. Save funcs wrap (or implement Conflict())
// to make Commit surface PhaseConflict instead of a plain failure.
var ErrConflict = errors.New("record changed concurrently")

// Phase represents the save state of a session.
type Phase int

// save phases
const (
	PhaseIdle Phase = iota
	PhaseSaving
	PhaseFailed
	PhaseConflict
)

// String returns human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseSaving:
		return "saving"
	case PhaseFailed:
		return "failed"
	case PhaseConflict:
		return "conflict"
	default:
		return "idle"
	}
}

// SaveStatus is the save state exposed to the host UI. Message is set only
// for PhaseFailed and PhaseConflict.
type SaveStatus struct {
	Phase   Phase
	Message string
}

// Validation is the result of validating the current draft value.
type Validation struct {
	Valid   bool
	Message string
}

// SaveFunc persists the draft value. It must return an error carrying a
// human-readable message on failure; a conflict is reported by wrapping
// ErrConflict or returning an error whose chain implements Conflict() bool.
type SaveFunc func(ctx context.Context, value string) error

// Config holds session configuration and injected callbacks.
type Config struct {
	MaxLength int           // max draft length in runes, 0 = unlimited
	Debounce  time.Duration // validation debounce window, default DefaultDebounce
	Multiline bool          // multi-line fields commit on Ctrl/Cmd+Enter only

	Save    SaveFunc // required, persists the committed value
	Cancel  func()   // optional, invoked once per cancelled session
	OnClose func()   // optional, invoked once when the session ends
}

// Session owns the edit lifecycle of one field. Safe for concurrent use;
// the debounce timer fires on its own goroutine.
type Session struct {
	mu  sync.Mutex
	cfg Config

	active     bool
	draft      string
	committed  string
	validation Validation
	status     SaveStatus

	timer  *time.Timer // pending debounced validation, replace-not-accumulate
	valSeq uint64      // invalidates superseded validation timers
	epoch  uint64      // session token, bumped on cancel/reset/end to discard stale save results
}

// New creates a session. Save is required.
func New(cfg Config) (*Session, error) {
	if cfg.Save == nil {
		return nil, errors.New("save func is required")
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	return &Session{cfg: cfg}, nil
}

// Begin enters edit mode. Draft and committed values start at initial, and
// validation is computed synchronously so an initially-invalid value is
// flagged immediately.
func (s *Session) Begin(initial string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopTimerLocked()
	s.active = true
	s.draft = initial
	s.committed = initial
	s.validation = validate(initial, s.cfg.MaxLength)
	s.status = SaveStatus{Phase: PhaseIdle}
}

// Change updates the draft immediately and schedules a validation
// recomputation after the debounce window. A newer Change supersedes any
// pending validation: only the last value within the window is validated,
// and a stale timer that already fired cannot overwrite a newer result.
func (s *Session) Change(v string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return
	}

	s.draft = v
	s.stopTimerLocked()
	s.valSeq++
	seq := s.valSeq
	maxLen := s.cfg.MaxLength
	s.timer = time.AfterFunc(s.cfg.Debounce, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if !s.active || seq != s.valSeq {
			return // superseded by a newer change or the session ended
		}
		s.validation = validate(v, maxLen)
	})
}

// Commit attempts to save the draft. No-op while a save is in flight or the
// draft is invalid, giving at-most-one concurrent save per session. On
// success the committed value becomes the draft and the session ends. On
// failure the draft reverts to the committed value and the session stays
// open for retry. On conflict the draft is kept so the caller can diff it
// against the server version. Errors are never re-thrown; they surface only
// through Status.
func (s *Session) Commit(ctx context.Context) {
	s.mu.Lock()
	if !s.active || !s.validation.Valid || s.status.Phase == PhaseSaving {
		s.mu.Unlock()
		return
	}
	s.status = SaveStatus{Phase: PhaseSaving}
	value := s.draft
	ep := s.epoch
	s.mu.Unlock()

	// save runs without the lock: Cancel and state reads stay responsive
	err := s.cfg.Save(ctx, value)

	s.mu.Lock()
	if ep != s.epoch {
		// session cancelled or reset while saving, discard the late result
		s.mu.Unlock()
		return
	}

	switch {
	case err == nil:
		s.committed = value
		s.status = SaveStatus{Phase: PhaseIdle}
		s.endLocked()
		onClose := s.cfg.OnClose
		s.mu.Unlock()
		if onClose != nil {
			onClose()
		}
	case isConflict(err):
		// draft intentionally kept: conflict resolution needs both versions
		s.status = SaveStatus{Phase: PhaseConflict, Message: saveMessage(err)}
		s.mu.Unlock()
	default:
		s.draft = s.committed
		s.status = SaveStatus{Phase: PhaseFailed, Message: saveMessage(err)}
		s.mu.Unlock()
	}
}

// Cancel reverts the draft to the committed value and ends the session
// immediately, regardless of validation state. Never invokes save. Safe to
// call repeatedly; only the first call has effect.
func (s *Session) Cancel() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.draft = s.committed
	s.status = SaveStatus{Phase: PhaseIdle}
	s.endLocked()
	cancel := s.cfg.Cancel
	onClose := s.cfg.OnClose
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if onClose != nil {
		onClose()
	}
}

// Reset re-initializes the session when the underlying record changed out
// of band. The session stays open with the new value as both draft and
// committed; any in-flight save result is discarded.
func (s *Session) Reset(newInitial string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return
	}
	s.stopTimerLocked()
	s.epoch++
	s.draft = newInitial
	s.committed = newInitial
	s.validation = validate(newInitial, s.cfg.MaxLength)
	s.status = SaveStatus{Phase: PhaseIdle}
}

// Blur commits only if the draft is currently valid; an invalid blur leaves
// the session open with the error visible.
func (s *Session) Blur(ctx context.Context) {
	s.mu.Lock()
	valid := s.active && s.validation.Valid
	s.mu.Unlock()

	if valid {
		s.Commit(ctx)
	}
}

// Active reports whether the session is still editing.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Draft returns the in-progress value.
func (s *Session) Draft() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// Committed returns the last known-good value, the revert target.
func (s *Session) Committed() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.committed
}

// Validation returns the current validation state.
func (s *Session) Validation() Validation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.validation
}

// Status returns the current save state.
func (s *Session) Status() SaveStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// endLocked terminates the session. Caller holds the lock.
func (s *Session) endLocked() {
	s.active = false
	s.stopTimerLocked()
	s.epoch++
}

// stopTimerLocked cancels the pending debounce timer, if any. Caller holds
// the lock. Only one timer per session is ever live. Stop cannot cancel a
// callback that already fired and is waiting on the lock, so the sequence is
// bumped too: a stale callback must never overwrite validation computed for
// a newer value.
func (s *Session) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.valSeq++
}

// isConflict reports whether the save error represents a version conflict,
// either via the ErrConflict sentinel or a Conflict() bool in the chain.
func isConflict(err error) bool {
	if errors.Is(err, ErrConflict) {
		return true
	}
	var ce interface{ Conflict() bool }
	return errors.As(err, &ce) && ce.Conflict()
}

// saveMessage extracts the human-readable message from a save error.
func saveMessage(err error) string {
	if err == nil || err.Error() == "" {
		return "save failed"
	}
	return err.Error()
}
