package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testDebounce keeps debounce-sensitive tests fast while leaving enough
// headroom for timer scheduling jitter.
const testDebounce = 20 * time.Millisecond

func noopSave(context.Context, string) error { return nil }

func TestNew(t *testing.T) {
	t.Run("save func required", func(t *testing.T) {
		_, err := New(Config{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "save func is required")
	})

	t.Run("default debounce applied", func(t *testing.T) {
		s, err := New(Config{Save: noopSave})
		require.NoError(t, err)
		assert.Equal(t, DefaultDebounce, s.cfg.Debounce)
	})

	t.Run("custom debounce kept", func(t *testing.T) {
		s, err := New(Config{Save: noopSave, Debounce: time.Second})
		require.NoError(t, err)
		assert.Equal(t, time.Second, s.cfg.Debounce)
	})
}

func TestSession_Begin(t *testing.T) {
	t.Run("draft and committed start at initial", func(t *testing.T) {
		s, err := New(Config{Save: noopSave})
		require.NoError(t, err)

		s.Begin("hello")
		assert.True(t, s.Active())
		assert.Equal(t, "hello", s.Draft())
		assert.Equal(t, "hello", s.Committed())
		assert.Equal(t, PhaseIdle, s.Status().Phase)
	})

	t.Run("initially invalid value flagged synchronously", func(t *testing.T) {
		s, err := New(Config{Save: noopSave})
		require.NoError(t, err)

		s.Begin("   ")
		v := s.Validation()
		assert.False(t, v.Valid)
		assert.Equal(t, "input required", v.Message)
	})

	t.Run("initially overlong value flagged synchronously", func(t *testing.T) {
		s, err := New(Config{Save: noopSave, MaxLength: 3})
		require.NoError(t, err)

		s.Begin("abcd")
		v := s.Validation()
		assert.False(t, v.Valid)
		assert.Contains(t, v.Message, "at most 3")
	})
}

func TestSession_Change(t *testing.T) {
	t.Run("draft updates immediately, validation deferred", func(t *testing.T) {
		s, err := New(Config{Save: noopSave, Debounce: testDebounce})
		require.NoError(t, err)
		s.Begin("initial")

		s.Change("")
		assert.Equal(t, "", s.Draft(), "draft must reflect the change before debounce fires")
		assert.True(t, s.Validation().Valid, "validation must not have run yet")

		assert.Eventually(t, func() bool { return !s.Validation().Valid },
			10*testDebounce, time.Millisecond, "validation fires after debounce")
		assert.Equal(t, "input required", s.Validation().Message)
	})

	t.Run("rapid changes validate only the last value", func(t *testing.T) {
		s, err := New(Config{Save: noopSave, MaxLength: 5, Debounce: testDebounce})
		require.NoError(t, err)
		s.Begin("ok")

		// burst of edits within the window: intermediate values are invalid,
		// the final one is valid
		s.Change("toolongdraft")
		s.Change("")
		s.Change("fine")

		time.Sleep(5 * testDebounce)
		v := s.Validation()
		assert.True(t, v.Valid, "only the last value in the window is validated")
		assert.Empty(t, v.Message)
	})

	t.Run("newer change supersedes pending validation", func(t *testing.T) {
		s, err := New(Config{Save: noopSave, Debounce: testDebounce})
		require.NoError(t, err)
		s.Begin("ok")

		s.Change("") // would flag input required
		time.Sleep(testDebounce / 2)
		s.Change("still ok") // supersedes before the first timer fires

		time.Sleep(5 * testDebounce)
		assert.True(t, s.Validation().Valid)
	})

	t.Run("ignored when session not active", func(t *testing.T) {
		s, err := New(Config{Save: noopSave, Debounce: testDebounce})
		require.NoError(t, err)

		s.Change("ghost")
		assert.Equal(t, "", s.Draft())
	})
}

func TestSession_Commit(t *testing.T) {
	t.Run("success commits and ends session", func(t *testing.T) {
		var saved atomic.Value
		closed := 0
		s, err := New(Config{
			Debounce: testDebounce,
			Save: func(_ context.Context, v string) error {
				saved.Store(v)
				return nil
			},
			OnClose: func() { closed++ },
		})
		require.NoError(t, err)

		s.Begin("old")
		s.Change("new value")
		s.Commit(context.Background())

		assert.Equal(t, "new value", saved.Load())
		assert.False(t, s.Active())
		assert.Equal(t, "new value", s.Committed())
		assert.Equal(t, PhaseIdle, s.Status().Phase)
		assert.Equal(t, 1, closed)
	})

	t.Run("failure reverts draft and keeps session open", func(t *testing.T) {
		s, err := New(Config{
			Debounce: testDebounce,
			Save: func(context.Context, string) error {
				return errors.New("server exploded")
			},
		})
		require.NoError(t, err)

		s.Begin("committed value")
		s.Change("doomed edit")
		s.Commit(context.Background())

		assert.True(t, s.Active(), "session stays open for retry")
		assert.Equal(t, "committed value", s.Draft(), "draft reverted to committed")
		st := s.Status()
		assert.Equal(t, PhaseFailed, st.Phase)
		assert.Contains(t, st.Message, "server exploded")
	})

	t.Run("invalid draft is a no-op", func(t *testing.T) {
		calls := 0
		s, err := New(Config{
			Debounce: testDebounce,
			Save:     func(context.Context, string) error { calls++; return nil },
		})
		require.NoError(t, err)

		s.Begin("")
		s.Commit(context.Background())

		assert.Zero(t, calls, "save must not run for invalid draft")
		assert.True(t, s.Active())
	})

	t.Run("at most one save in flight", func(t *testing.T) {
		started := make(chan struct{})
		release := make(chan struct{})
		var calls atomic.Int32
		s, err := New(Config{
			Debounce: testDebounce,
			Save: func(context.Context, string) error {
				calls.Add(1)
				close(started)
				<-release
				return nil
			},
		})
		require.NoError(t, err)
		s.Begin("value")

		go s.Commit(context.Background())
		<-started

		assert.Equal(t, PhaseSaving, s.Status().Phase)
		s.Commit(context.Background()) // must no-op while saving
		assert.Equal(t, int32(1), calls.Load())

		close(release)
		assert.Eventually(t, func() bool { return !s.Active() }, time.Second, time.Millisecond)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("conflict keeps draft and stays open", func(t *testing.T) {
		s, err := New(Config{
			Debounce: testDebounce,
			Save: func(context.Context, string) error {
				return fmt.Errorf("update rejected: %w", ErrConflict)
			},
		})
		require.NoError(t, err)

		s.Begin("server value")
		s.Change("my edit")
		s.Commit(context.Background())

		assert.True(t, s.Active())
		assert.Equal(t, "my edit", s.Draft(), "conflict must keep the draft for the diff")
		assert.Equal(t, PhaseConflict, s.Status().Phase)
	})

	t.Run("conflict detected structurally via Conflict method", func(t *testing.T) {
		s, err := New(Config{
			Debounce: testDebounce,
			Save: func(context.Context, string) error {
				return conflictingErr{}
			},
		})
		require.NoError(t, err)

		s.Begin("v")
		s.Commit(context.Background())
		assert.Equal(t, PhaseConflict, s.Status().Phase)
	})

	t.Run("retry after failure succeeds", func(t *testing.T) {
		fail := true
		s, err := New(Config{
			Debounce: testDebounce,
			Save: func(context.Context, string) error {
				if fail {
					return errors.New("transient")
				}
				return nil
			},
		})
		require.NoError(t, err)

		s.Begin("base")
		s.Change("edit")
		s.Commit(context.Background())
		require.Equal(t, PhaseFailed, s.Status().Phase)

		fail = false
		s.Change("edit again")
		time.Sleep(5 * testDebounce)
		s.Commit(context.Background())

		assert.False(t, s.Active())
		assert.Equal(t, "edit again", s.Committed())
	})
}

func TestSession_Cancel(t *testing.T) {
	t.Run("reverts draft and ends session without saving", func(t *testing.T) {
		saves, cancels, closes := 0, 0, 0
		s, err := New(Config{
			Debounce: testDebounce,
			Save:     func(context.Context, string) error { saves++; return nil },
			Cancel:   func() { cancels++ },
			OnClose:  func() { closes++ },
		})
		require.NoError(t, err)

		s.Begin("original")
		s.Change("discarded edit")
		s.Cancel()

		assert.False(t, s.Active())
		assert.Equal(t, "original", s.Draft())
		assert.Zero(t, saves)
		assert.Equal(t, 1, cancels)
		assert.Equal(t, 1, closes)
	})

	t.Run("cancel works with invalid draft", func(t *testing.T) {
		s, err := New(Config{Save: noopSave, Debounce: testDebounce})
		require.NoError(t, err)

		s.Begin("valid")
		s.Change("")
		time.Sleep(5 * testDebounce)
		require.False(t, s.Validation().Valid)

		s.Cancel()
		assert.False(t, s.Active())
		assert.Equal(t, "valid", s.Draft())
	})

	t.Run("repeated cancel fires callbacks once", func(t *testing.T) {
		cancels := 0
		s, err := New(Config{
			Save:   noopSave,
			Cancel: func() { cancels++ },
		})
		require.NoError(t, err)

		s.Begin("v")
		s.Cancel()
		s.Cancel()
		s.Cancel()
		assert.Equal(t, 1, cancels)
	})

	t.Run("cancel during save discards late result", func(t *testing.T) {
		started := make(chan struct{})
		release := make(chan struct{})
		done := make(chan struct{})
		s, err := New(Config{
			Debounce: testDebounce,
			Save: func(context.Context, string) error {
				close(started)
				<-release
				return nil
			},
		})
		require.NoError(t, err)

		s.Begin("committed")
		s.Change("edited")
		go func() {
			s.Commit(context.Background())
			close(done)
		}()
		<-started

		s.Cancel()
		close(release)
		<-done

		// the save completed after cancel; its success must not resurrect
		// the session or change the committed value
		assert.False(t, s.Active())
		assert.Equal(t, "committed", s.Committed())
		assert.Equal(t, PhaseIdle, s.Status().Phase)
	})
}

func TestSession_Reset(t *testing.T) {
	t.Run("re-initializes draft and committed", func(t *testing.T) {
		s, err := New(Config{Save: noopSave, Debounce: testDebounce})
		require.NoError(t, err)

		s.Begin("old server value")
		s.Change("local edit")
		s.Reset("new server value")

		assert.True(t, s.Active(), "session stays open after reset")
		assert.Equal(t, "new server value", s.Draft())
		assert.Equal(t, "new server value", s.Committed())
		assert.Equal(t, PhaseIdle, s.Status().Phase)
	})

	t.Run("reset during save discards late result", func(t *testing.T) {
		started := make(chan struct{})
		release := make(chan struct{})
		done := make(chan struct{})
		s, err := New(Config{
			Debounce: testDebounce,
			Save: func(context.Context, string) error {
				close(started)
				<-release
				return errors.New("too late to matter")
			},
		})
		require.NoError(t, err)

		s.Begin("v1")
		s.Change("v1 edited")
		go func() {
			s.Commit(context.Background())
			close(done)
		}()
		<-started

		s.Reset("v2")
		close(release)
		<-done

		// the failed save must not move the reset session to PhaseFailed
		assert.Equal(t, PhaseIdle, s.Status().Phase)
		assert.Equal(t, "v2", s.Draft())
	})

	t.Run("ignored when session not active", func(t *testing.T) {
		s, err := New(Config{Save: noopSave})
		require.NoError(t, err)

		s.Reset("whatever")
		assert.False(t, s.Active())
		assert.Equal(t, "", s.Draft())
	})

	t.Run("fired timer cannot overwrite validation after reset", func(t *testing.T) {
		// a zero debounce makes the timer fire while Change still holds the
		// lock, so the callback races the immediately following Reset for the
		// mutex; in either order the stale result must be discarded
		s, err := New(Config{Save: noopSave, Debounce: time.Nanosecond})
		require.NoError(t, err)

		s.Begin("fine")
		for i := 0; i < 100; i++ {
			s.Change("   ") // invalid, fails the empty check
			s.Reset("fine")
		}
		time.Sleep(5 * testDebounce)

		v := s.Validation()
		assert.True(t, v.Valid, "stale validation overwrote the reset value: %q", v.Message)
		assert.Equal(t, "fine", s.Draft())
	})
}

func TestSession_Blur(t *testing.T) {
	t.Run("valid draft commits", func(t *testing.T) {
		saved := ""
		s, err := New(Config{
			Debounce: testDebounce,
			Save:     func(_ context.Context, v string) error { saved = v; return nil },
		})
		require.NoError(t, err)

		s.Begin("value")
		s.Blur(context.Background())

		assert.Equal(t, "value", saved)
		assert.False(t, s.Active())
	})

	t.Run("invalid draft stays open with error visible", func(t *testing.T) {
		calls := 0
		s, err := New(Config{
			Debounce: testDebounce,
			Save:     func(context.Context, string) error { calls++; return nil },
		})
		require.NoError(t, err)

		s.Begin("")
		s.Blur(context.Background())

		assert.Zero(t, calls)
		assert.True(t, s.Active())
		assert.False(t, s.Validation().Valid)
	})
}

func TestSession_MaxLengthRunes(t *testing.T) {
	s, err := New(Config{Save: noopSave, MaxLength: 4, Debounce: testDebounce})
	require.NoError(t, err)

	// 4 multibyte runes, 12 bytes: must pass a rune-counted limit
	s.Begin("目標設定")
	assert.True(t, s.Validation().Valid)

	s.Change(strings.Repeat("あ", 5))
	time.Sleep(5 * testDebounce)
	assert.False(t, s.Validation().Valid)
}

// conflictingErr implements Conflict() without wrapping ErrConflict.
type conflictingErr struct{}

func (conflictingErr) Error() string  { return "version mismatch" }
func (conflictingErr) Conflict() bool { return true }
