package conflict

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff(t *testing.T) {
	t.Run("fixed field order", func(t *testing.T) {
		d1 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		d2 := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
		current := Record{
			Title: "a", Description: "b", Background: "c", Constraints: "d",
			Deadline: &d1, TaskKind: "execution",
		}
		latest := Record{
			Title: "a2", Description: "b", Background: "c2", Constraints: "d",
			Deadline: &d2, TaskKind: "habit",
		}

		fields := Diff(current, latest)
		require.Len(t, fields, 6)

		order := make([]string, len(fields))
		for i, f := range fields {
			order[i] = f.Field
		}
		assert.Equal(t, []string{"title", "description", "background", "constraints", "deadline", "task_kind"}, order)
	})

	t.Run("deterministic across calls", func(t *testing.T) {
		current := Record{Title: "x", Description: "y"}
		latest := Record{Title: "x2", Description: "y"}

		first := Diff(current, latest)
		for range 50 {
			assert.Equal(t, first, Diff(current, latest))
		}
	})

	t.Run("unchanged fields included with changed false", func(t *testing.T) {
		current := Record{Title: "same", Description: "mine"}
		latest := Record{Title: "same", Description: "theirs"}

		fields := Diff(current, latest)
		require.Len(t, fields, 4)

		assert.Equal(t, "same", fields[0].Current)
		assert.Equal(t, "same", fields[0].Latest)
		assert.False(t, fields[0].Changed)

		assert.Equal(t, "mine", fields[1].Current)
		assert.Equal(t, "theirs", fields[1].Latest)
		assert.True(t, fields[1].Changed)
	})

	t.Run("deadline skipped when either side nil", func(t *testing.T) {
		d := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

		for _, tc := range []struct {
			name            string
			current, latest Record
		}{
			{"both nil", Record{Title: "t"}, Record{Title: "t"}},
			{"current nil", Record{Title: "t"}, Record{Title: "t", Deadline: &d}},
			{"latest nil", Record{Title: "t", Deadline: &d}, Record{Title: "t"}},
		} {
			t.Run(tc.name, func(t *testing.T) {
				for _, f := range Diff(tc.current, tc.latest) {
					assert.NotEqual(t, "deadline", f.Field)
				}
			})
		}
	})

	t.Run("deadline compared on normalized date", func(t *testing.T) {
		// same calendar day, different times: not a change
		d1 := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
		d2 := time.Date(2026, 3, 1, 18, 45, 0, 0, time.UTC)

		fields := Diff(Record{Title: "t", Deadline: &d1}, Record{Title: "t", Deadline: &d2})
		require.Len(t, fields, 5)
		deadline := fields[4]
		assert.Equal(t, "deadline", deadline.Field)
		assert.Equal(t, "2026-03-01", deadline.Current)
		assert.Equal(t, "2026-03-01", deadline.Latest)
		assert.False(t, deadline.Changed)
	})

	t.Run("task kind skipped when either side empty", func(t *testing.T) {
		for _, f := range Diff(Record{Title: "t", TaskKind: "habit"}, Record{Title: "t"}) {
			assert.NotEqual(t, "task_kind", f.Field)
		}
	})

	t.Run("task kind compared via display label", func(t *testing.T) {
		fields := Diff(Record{Title: "t", TaskKind: "execution"}, Record{Title: "t", TaskKind: "habit"})
		require.Len(t, fields, 5)
		kind := fields[4]
		assert.Equal(t, "Task Type", kind.Label)
		assert.Equal(t, "Execution", kind.Current)
		assert.Equal(t, "Habit", kind.Latest)
		assert.True(t, kind.Changed)
	})

	t.Run("unknown task kind falls back to raw value", func(t *testing.T) {
		fields := Diff(Record{Title: "t", TaskKind: "custom"}, Record{Title: "t", TaskKind: "custom"})
		kind := fields[len(fields)-1]
		assert.Equal(t, "custom", kind.Current)
		assert.False(t, kind.Changed)
	})

	t.Run("identical records yield no changes", func(t *testing.T) {
		d := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		rec := Record{
			Title: "a", Description: "b", Background: "c", Constraints: "d",
			Deadline: &d, TaskKind: "habit",
		}
		for _, f := range Diff(rec, rec) {
			assert.False(t, f.Changed, "field %s", f.Field)
		}
	})
}

func TestResolver(t *testing.T) {
	t.Run("reload invokes reload callback", func(t *testing.T) {
		reloads, discards := 0, 0
		r := NewResolver(func() { reloads++ }, func() { discards++ })

		r.Resolve(ChoiceReload)
		assert.Equal(t, 1, reloads)
		assert.Zero(t, discards)
		assert.True(t, r.Decided())
		assert.Equal(t, ChoiceReload, r.Choice())
	})

	t.Run("discard invokes discard callback", func(t *testing.T) {
		reloads, discards := 0, 0
		r := NewResolver(func() { reloads++ }, func() { discards++ })

		r.Resolve(ChoiceDiscard)
		assert.Zero(t, reloads)
		assert.Equal(t, 1, discards)
		assert.Equal(t, ChoiceDiscard, r.Choice())
	})

	t.Run("first decision wins", func(t *testing.T) {
		reloads, discards := 0, 0
		r := NewResolver(func() { reloads++ }, func() { discards++ })

		r.Resolve(ChoiceDiscard)
		r.Resolve(ChoiceReload)
		r.Resolve(ChoiceDiscard)

		assert.Zero(t, reloads)
		assert.Equal(t, 1, discards)
		assert.Equal(t, ChoiceDiscard, r.Choice())
	})

	t.Run("escape equals discard", func(t *testing.T) {
		discards := 0
		r := NewResolver(nil, func() { discards++ })

		r.Escape()
		assert.Equal(t, 1, discards)
		assert.Equal(t, ChoiceDiscard, r.Choice())
	})

	t.Run("unknown choice treated as discard", func(t *testing.T) {
		discards := 0
		r := NewResolver(nil, func() { discards++ })

		r.Resolve(Choice("merge"))
		assert.Equal(t, 1, discards)
		assert.Equal(t, ChoiceDiscard, r.Choice())
	})

	t.Run("nil callbacks are safe", func(t *testing.T) {
		r := NewResolver(nil, nil)
		r.Resolve(ChoiceReload)
		assert.True(t, r.Decided())
	})

	t.Run("undecided has empty choice", func(t *testing.T) {
		r := NewResolver(nil, nil)
		assert.False(t, r.Decided())
		assert.Empty(t, r.Choice())
	})
}
