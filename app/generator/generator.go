// Package generator produces sub-goal, action, and task suggestions from
// goal text using a Bedrock model. Responses are cached by rendered prompt
// so repeated generation for the same goal text does not re-invoke the model.
package generator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/go-pkgz/lcw/v2"
	log "github.com/go-pkgz/lgr"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:generate moq -out mocks/invoker.go -pkg mocks -skip-ensure -fmt goimports . Invoker

// Invoker defines the interface for the Bedrock runtime operations used.
type Invoker interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput,
		optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// Request carries the goal text suggestions are generated from.
type Request struct {
	Title       string `json:"title" validate:"required,max=100"`
	Description string `json:"description" validate:"max=1000"`
	Background  string `json:"background" validate:"max=1000"`
	Constraints string `json:"constraints" validate:"max=1000"`
}

// Suggestion is one generated sub-goal, action, or task.
type Suggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	TaskKind    string `json:"task_kind,omitempty"` // tasks only: execution or habit
}

// Config holds generator configuration.
type Config struct {
	Region      string        // AWS region for bedrock
	ModelID     string        // bedrock model id
	PromptsFile string        // optional prompts yaml, empty for built-in defaults
	CacheTTL    time.Duration // suggestion cache TTL, default 1h
	MaxTokens   int           // response token budget, default 2048
}

// Service generates suggestions via a Bedrock model.
type Service struct {
	client    Invoker
	prompts   *Prompts
	cache     lcw.LoadingCache[[]Suggestion]
	modelID   string
	maxTokens int
}

// New creates a generator, loading AWS config for the given region and
// starting the prompts file watcher.
func New(ctx context.Context, cfg Config) (*Service, error) {
	if cfg.ModelID == "" {
		return nil, fmt.Errorf("model id is required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	prompts, err := LoadPrompts(cfg.PromptsFile)
	if err != nil {
		return nil, err
	}
	if err := prompts.Watch(ctx); err != nil {
		return nil, err
	}

	svc, err := newService(bedrockruntime.NewFromConfig(awsCfg), prompts, cfg)
	if err != nil {
		return nil, err
	}
	log.Printf("[DEBUG] initialized generator, model=%s region=%s", cfg.ModelID, cfg.Region)
	return svc, nil
}

// newService wires the service from its parts, used directly in tests.
func newService(client Invoker, prompts *Prompts, cfg Config) (*Service, error) {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Hour
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 2048
	}

	o := lcw.NewOpts[[]Suggestion]()
	cache, err := lcw.NewExpirableCache(o.MaxKeys(1000), o.TTL(cfg.CacheTTL))
	if err != nil {
		return nil, fmt.Errorf("failed to create suggestion cache: %w", err)
	}

	return &Service{
		client:    client,
		prompts:   prompts,
		cache:     cache,
		modelID:   cfg.ModelID,
		maxTokens: cfg.MaxTokens,
	}, nil
}

// SubGoals proposes sub-goals for a central goal.
func (s *Service) SubGoals(ctx context.Context, req Request) ([]Suggestion, error) {
	return s.generate(ctx, promptSubGoals, req)
}

// Actions proposes actions for a sub-goal.
func (s *Service) Actions(ctx context.Context, req Request) ([]Suggestion, error) {
	return s.generate(ctx, promptActions, req)
}

// Tasks proposes tasks, with task kind, for an action.
func (s *Service) Tasks(ctx context.Context, req Request) ([]Suggestion, error) {
	return s.generate(ctx, promptTasks, req)
}

// generate renders the named prompt, invokes the model through the cache,
// and parses the suggestion list from the response.
func (s *Service) generate(ctx context.Context, prompt string, req Request) ([]Suggestion, error) {
	rendered, err := s.prompts.Render(prompt, req)
	if err != nil {
		return nil, err
	}

	suggestions, err := s.cache.Get(cacheKey(s.modelID, rendered), func() ([]Suggestion, error) {
		return s.invoke(ctx, rendered)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s: %w", prompt, err)
	}
	return suggestions, nil
}

// claudeRequest is the anthropic messages request body for bedrock.
type claudeRequest struct {
	AnthropicVersion string          `json:"anthropic_version"`
	MaxTokens        int             `json:"max_tokens"`
	Messages         []claudeMessage `json:"messages"`
}

type claudeMessage struct {
	Role    string          `json:"role"`
	Content []claudeContent `json:"content"`
}

type claudeContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// claudeResponse is the subset of the bedrock response we read.
type claudeResponse struct {
	Content []claudeContent `json:"content"`
}

// invoke sends the rendered prompt to the model and parses the suggestions.
func (s *Service) invoke(ctx context.Context, prompt string) ([]Suggestion, error) {
	body, err := json.Marshal(claudeRequest{
		AnthropicVersion: "bedrock-2023-05-31",
		MaxTokens:        s.maxTokens,
		Messages: []claudeMessage{
			{Role: "user", Content: []claudeContent{{Type: "text", Text: prompt}}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal model request: %w", err)
	}

	out, err := s.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(s.modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return nil, fmt.Errorf("model invocation failed: %w", err)
	}

	var resp claudeResponse
	if err := json.Unmarshal(out.Body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode model response: %w", err)
	}
	if len(resp.Content) == 0 {
		return nil, fmt.Errorf("model returned empty response")
	}

	suggestions, err := parseSuggestions(resp.Content[0].Text)
	if err != nil {
		return nil, err
	}
	log.Printf("[DEBUG] generated %d suggestions", len(suggestions))
	return suggestions, nil
}

// suggestionSchema rejects model output drifting from the expected shape
// before the typed decode; the model is not a trusted producer.
var suggestionSchema = jsonschema.MustCompileString("suggestions.json", `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["title"],
		"properties": {
			"title": {"type": "string", "minLength": 1},
			"description": {"type": "string"},
			"task_kind": {"enum": ["execution", "habit"]}
		}
	}
}`)

// parseSuggestions extracts the JSON suggestion array from model output,
// tolerating code fences and surrounding prose the model sometimes adds.
func parseSuggestions(text string) ([]Suggestion, error) {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end < start {
		return nil, fmt.Errorf("no suggestion array in model output")
	}
	raw := []byte(text[start : end+1])

	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("failed to parse suggestions: %w", err)
	}
	if err := suggestionSchema.Validate(generic); err != nil {
		return nil, fmt.Errorf("model output failed validation: %w", err)
	}

	var suggestions []Suggestion
	if err := json.Unmarshal(raw, &suggestions); err != nil {
		return nil, fmt.Errorf("failed to parse suggestions: %w", err)
	}
	if len(suggestions) == 0 {
		return nil, fmt.Errorf("model returned no suggestions")
	}
	return suggestions, nil
}

// cacheKey derives a stable cache key from model and rendered prompt.
func cacheKey(modelID, prompt string) string {
	h := sha256.Sum256([]byte(modelID + "\x00" + prompt))
	return hex.EncodeToString(h[:])
}
