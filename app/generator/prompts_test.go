package generator

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPrompts(t *testing.T) {
	t.Run("defaults when no file", func(t *testing.T) {
		p, err := LoadPrompts("")
		require.NoError(t, err)

		for _, name := range []string{promptSubGoals, promptActions, promptTasks} {
			rendered, err := p.Render(name, Request{Title: "my goal"})
			require.NoError(t, err, name)
			assert.Contains(t, rendered, "my goal")
			assert.Contains(t, rendered, "JSON array")
		}
	})

	t.Run("partial file overrides selectively", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "prompts.yml")
		require.NoError(t, os.WriteFile(file, []byte("subgoals: |\n  custom prompt for {{.Title}}\n"), 0o600))

		p, err := LoadPrompts(file)
		require.NoError(t, err)

		custom, err := p.Render(promptSubGoals, Request{Title: "x"})
		require.NoError(t, err)
		assert.Equal(t, "custom prompt for x\n", custom)

		// names the file does not define keep the defaults
		fallback, err := p.Render(promptTasks, Request{Title: "x"})
		require.NoError(t, err)
		assert.Contains(t, fallback, "execution")
	})

	t.Run("missing file fails", func(t *testing.T) {
		_, err := LoadPrompts("/nonexistent/prompts.yml")
		require.Error(t, err)
	})

	t.Run("bad template fails", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "prompts.yml")
		require.NoError(t, os.WriteFile(file, []byte("subgoals: |\n  {{.Title\n"), 0o600))

		_, err := LoadPrompts(file)
		require.Error(t, err)
	})

	t.Run("unknown prompt name", func(t *testing.T) {
		p, err := LoadPrompts("")
		require.NoError(t, err)

		_, err = p.Render("nonexistent", Request{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown prompt")
	})
}

func TestPrompts_Watch(t *testing.T) {
	file := filepath.Join(t.TempDir(), "prompts.yml")
	require.NoError(t, os.WriteFile(file, []byte("subgoals: |\n  version one {{.Title}}\n"), 0o600))

	p, err := LoadPrompts(file)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, p.Watch(ctx))

	t.Run("change picked up", func(t *testing.T) {
		require.NoError(t, os.WriteFile(file, []byte("subgoals: |\n  version two {{.Title}}\n"), 0o600))

		assert.Eventually(t, func() bool {
			rendered, err := p.Render(promptSubGoals, Request{Title: "t"})
			return err == nil && rendered == "version two t\n"
		}, 5*time.Second, 10*time.Millisecond)
	})

	t.Run("broken edit keeps previous", func(t *testing.T) {
		require.NoError(t, os.WriteFile(file, []byte("subgoals: |\n  {{.Broken\n"), 0o600))

		// give the watcher a moment to process the event
		time.Sleep(200 * time.Millisecond)
		rendered, err := p.Render(promptSubGoals, Request{Title: "t"})
		require.NoError(t, err)
		assert.Equal(t, "version two t\n", rendered)
	})
}
