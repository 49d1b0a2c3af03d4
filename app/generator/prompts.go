package generator

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sync"
	"text/template"

	"github.com/fsnotify/fsnotify"
	log "github.com/go-pkgz/lgr"
	"gopkg.in/yaml.v3"
)

// prompt names, one per generation target
const (
	promptSubGoals = "subgoals"
	promptActions  = "actions"
	promptTasks    = "tasks"
)

// defaultPrompts ships with the binary and is used when no prompts file is
// configured. Each template renders to the user message sent to the model;
// the model is instructed to answer with a bare JSON array.
const defaultPrompts = `
subgoals: |
  You are a goal planning assistant working with a mandala chart.
  The user's central goal:
  Title: {{.Title}}
  Description: {{.Description}}
  Background: {{.Background}}
  Constraints: {{.Constraints}}
  Propose exactly 8 sub-goals that together achieve the central goal.
  Respond with only a JSON array of 8 objects, each with "title" and
  "description" string fields. No prose, no code fences.
actions: |
  You are a goal planning assistant working with a mandala chart.
  The sub-goal to break down:
  Title: {{.Title}}
  Description: {{.Description}}
  Background: {{.Background}}
  Constraints: {{.Constraints}}
  Propose exactly 8 concrete actions that advance this sub-goal.
  Respond with only a JSON array of 8 objects, each with "title" and
  "description" string fields. No prose, no code fences.
tasks: |
  You are a goal planning assistant working with a mandala chart.
  The action to turn into tasks:
  Title: {{.Title}}
  Description: {{.Description}}
  Background: {{.Background}}
  Constraints: {{.Constraints}}
  Propose a short list of tasks for this action. For each task decide if it
  is a one-off ("execution") or a recurring practice ("habit").
  Respond with only a JSON array of objects, each with "title",
  "description" and "task_kind" string fields, task_kind being "execution"
  or "habit". No prose, no code fences.
`

// Prompts holds the parsed prompt templates, reloadable from a YAML file.
type Prompts struct {
	mu   sync.RWMutex
	tmpl map[string]*template.Template
	file string
}

// LoadPrompts parses prompt templates from the given YAML file, falling back
// to the embedded defaults for file == "". Unknown or missing prompt names
// fall back to defaults too, so a partial file overrides selectively.
func LoadPrompts(file string) (*Prompts, error) {
	p := &Prompts{file: file}

	defaults, err := parsePrompts([]byte(defaultPrompts))
	if err != nil {
		return nil, fmt.Errorf("failed to parse default prompts: %w", err)
	}
	p.tmpl = defaults

	if file == "" {
		return p, nil
	}

	if err := p.reload(); err != nil {
		return nil, err
	}
	return p, nil
}

// reload re-reads the prompts file and swaps in the parsed templates,
// keeping defaults for names the file does not define.
func (p *Prompts) reload() error {
	data, err := os.ReadFile(p.file)
	if err != nil {
		return fmt.Errorf("failed to read prompts file %q: %w", p.file, err)
	}
	parsed, err := parsePrompts(data)
	if err != nil {
		return fmt.Errorf("failed to parse prompts file %q: %w", p.file, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	for name, t := range parsed {
		p.tmpl[name] = t
	}
	return nil
}

// parsePrompts parses a YAML document of name -> template text.
func parsePrompts(data []byte) (map[string]*template.Template, error) {
	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid prompts yaml: %w", err)
	}

	result := make(map[string]*template.Template, len(raw))
	for name, text := range raw {
		t, err := template.New(name).Parse(text)
		if err != nil {
			return nil, fmt.Errorf("invalid prompt template %q: %w", name, err)
		}
		result[name] = t
	}
	return result, nil
}

// Render executes the named prompt template with the given request.
func (p *Prompts) Render(name string, req Request) (string, error) {
	p.mu.RLock()
	t, ok := p.tmpl[name]
	p.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("unknown prompt %q", name)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, req); err != nil {
		return "", fmt.Errorf("failed to render prompt %q: %w", name, err)
	}
	return buf.String(), nil
}

// Watch reloads the prompts file on change until the context is cancelled.
// A broken edit keeps the previously loaded templates.
func (p *Prompts) Watch(ctx context.Context) error {
	if p.file == "" {
		return nil // nothing to watch, defaults only
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create prompts watcher: %w", err)
	}
	if err := watcher.Add(p.file); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch prompts file %q: %w", p.file, err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				if err := p.reload(); err != nil {
					log.Printf("[WARN] prompts reload failed, keeping previous: %v", err)
					continue
				}
				log.Printf("[INFO] reloaded prompts from %s", p.file)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("[WARN] prompts watcher error: %v", err)
			}
		}
	}()

	return nil
}
