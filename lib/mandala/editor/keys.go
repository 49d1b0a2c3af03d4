package editor

import "context"

// Key identifies keyboard events the session reacts to.
type Key int

// recognized keys, anything else is ignored
const (
	KeyEnter Key = iota
	KeyEscape
	KeyOther
)

// Modifiers carries the modifier state of a key event.
type Modifiers struct {
	Ctrl bool
	Meta bool // Cmd on macOS
}

// KeyOutcome tells the host what the session did with a key event.
type KeyOutcome int

// key event outcomes
const (
	OutcomeNone          KeyOutcome = iota
	OutcomeCommit                   // commit was triggered (it may still no-op on invalid/saving)
	OutcomeCancel                   // session cancelled
	OutcomeInsertNewline            // host should insert a line break into the field
)

// HandleKey applies the keyboard commit/cancel contract: single-line fields
// commit on plain Enter; multi-line fields commit only on Ctrl+Enter or
// Cmd+Enter and treat plain Enter as a line break; Escape always cancels.
func (s *Session) HandleKey(ctx context.Context, k Key, mods Modifiers) KeyOutcome {
	switch k {
	case KeyEscape:
		s.Cancel()
		return OutcomeCancel
	case KeyEnter:
		if s.cfg.Multiline && !mods.Ctrl && !mods.Meta {
			return OutcomeInsertNewline
		}
		s.Commit(ctx)
		return OutcomeCommit
	default:
		return OutcomeNone
	}
}
