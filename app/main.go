// Mandala is a mandala-chart goal planner service: charts of nested goals
// with optimistic concurrency on edits, AI-generated suggestions, and SSE
// change notifications.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/gurza/mandala/app/generator"
	"github.com/gurza/mandala/app/server"
	"github.com/gurza/mandala/app/server/sse"
	"github.com/gurza/mandala/app/store"
)

var opts struct {
	Listen  string `short:"l" long:"listen" env:"MANDALA_LISTEN" default:":8080" description:"listen address"`
	DB      string `long:"db" env:"MANDALA_DB" default:"mandala.db" description:"database URL, sqlite file path or postgres URL"`
	BaseURL string `long:"base-url" env:"MANDALA_BASE_URL" default:"" description:"base URL path for reverse proxy, e.g. /mandala"`

	AI struct {
		Enabled  bool          `long:"enabled" env:"ENABLED" description:"enable AI suggestion generation"`
		Region   string        `long:"region" env:"REGION" default:"us-east-1" description:"AWS region for bedrock"`
		Model    string        `long:"model" env:"MODEL" default:"anthropic.claude-3-5-sonnet-20241022-v2:0" description:"bedrock model id"`
		Prompts  string        `long:"prompts" env:"PROMPTS" default:"" description:"prompts yaml file, empty for built-in defaults"`
		CacheTTL time.Duration `long:"cache-ttl" env:"CACHE_TTL" default:"1h" description:"suggestion cache TTL"`
	} `group:"ai" namespace:"ai" env-namespace:"MANDALA_AI"`

	Activity struct {
		Enabled   bool          `long:"enabled" env:"ENABLED" description:"enable activity logging"`
		Retention time.Duration `long:"retention" env:"RETENTION" default:"720h" description:"activity log retention, 0 to keep forever"`
	} `group:"activity" namespace:"activity" env-namespace:"MANDALA_ACTIVITY"`

	Limits struct {
		BodySize       int64   `long:"body-size" env:"BODY_SIZE" default:"1048576" description:"max request body size in bytes"`
		RequestsPerSec float64 `long:"rps" env:"RPS" default:"100" description:"max requests per second per client"`
		MaxConcurrent  int64   `long:"max-concurrent" env:"MAX_CONCURRENT" default:"1000" description:"max concurrent requests"`
	} `group:"limits" namespace:"limits" env-namespace:"MANDALA_LIMITS"`

	Timeouts struct {
		Read     time.Duration `long:"read" env:"READ" default:"5s" description:"read header timeout"`
		Write    time.Duration `long:"write" env:"WRITE" default:"60s" description:"write timeout, must cover SSE streams"`
		Idle     time.Duration `long:"idle" env:"IDLE" default:"120s" description:"idle timeout"`
		Shutdown time.Duration `long:"shutdown" env:"SHUTDOWN" default:"10s" description:"graceful shutdown timeout"`
	} `group:"timeouts" namespace:"timeouts" env-namespace:"MANDALA_TIMEOUTS"`

	Dbg bool `long:"dbg" env:"DEBUG" description:"debug mode"`
}

var revision = "unknown"

func main() {
	fmt.Printf("mandala %s\n", revision)

	p := flags.NewParser(&opts, flags.PrintErrors|flags.PassDoubleDash|flags.HelpFlag)
	p.SubcommandsOptional = true
	if _, err := p.Parse(); err != nil {
		if err.(*flags.Error).Type != flags.ErrHelp {
			log.Printf("[ERROR] cli error: %v", err)
		}
		os.Exit(2)
	}

	setupLog(opts.Dbg)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
}

// run wires the store, generator, SSE service and HTTP server, then blocks
// until the context is canceled.
func run(ctx context.Context) error {
	dataStore, err := store.New(opts.DB)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		if err := dataStore.Close(); err != nil {
			log.Printf("[WARN] failed to close store: %v", err)
		}
	}()

	var gen server.Generator
	if opts.AI.Enabled {
		svc, err := generator.New(ctx, generator.Config{
			Region:      opts.AI.Region,
			ModelID:     opts.AI.Model,
			PromptsFile: opts.AI.Prompts,
			CacheTTL:    opts.AI.CacheTTL,
		})
		if err != nil {
			return fmt.Errorf("failed to create generator: %w", err)
		}
		gen = svc
	}

	events := sse.New()

	var activity server.ActivityStore
	if opts.Activity.Enabled {
		activity = dataStore
		if opts.Activity.Retention > 0 {
			go cleanupActivity(ctx, dataStore, opts.Activity.Retention)
		}
	}

	srv, err := server.New(server.Deps{
		Store:     dataStore,
		Activity:  activity,
		Generator: gen,
		SSE:       events,
		Events:    events,
	}, server.Config{
		Address:         opts.Listen,
		ReadTimeout:     opts.Timeouts.Read,
		WriteTimeout:    opts.Timeouts.Write,
		IdleTimeout:     opts.Timeouts.Idle,
		ShutdownTimeout: opts.Timeouts.Shutdown,
		Version:         revision,
		BaseURL:         opts.BaseURL,
		BodySizeLimit:   opts.Limits.BodySize,
		RequestsPerSec:  opts.Limits.RequestsPerSec,
		MaxConcurrent:   opts.Limits.MaxConcurrent,

		ActivityEnabled: opts.Activity.Enabled,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Run(ctx)
}

// cleanupActivity periodically removes activity entries older than the
// retention window. Runs until the context is canceled.
func cleanupActivity(ctx context.Context, s *store.Store, retention time.Duration) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := s.DeleteActivityOlderThan(ctx, time.Now().Add(-retention))
			if err != nil {
				log.Printf("[WARN] activity cleanup failed: %v", err)
				continue
			}
			if removed > 0 {
				log.Printf("[INFO] cleaned up %d old activity entries", removed)
			}
		}
	}
}

// setupLog initializes logger with options
func setupLog(dbg bool) {
	logOpts := []log.Option{log.Msec, log.LevelBraces, log.StackTraceOnError}
	if dbg {
		logOpts = append(logOpts, log.Debug, log.CallerFile, log.CallerFunc)
	}
	log.SetupStdLogger(logOpts...)
}
