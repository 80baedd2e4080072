package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/abhisek/lingiz/internal/app"
	"github.com/abhisek/lingiz/internal/corpus"
	"github.com/abhisek/lingiz/internal/distractor"
	"github.com/abhisek/lingiz/internal/engine"
	"github.com/abhisek/lingiz/internal/llm"
	"github.com/abhisek/lingiz/internal/progress"
	"github.com/abhisek/lingiz/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "lingiz",
	Short: "Quiz yourself on sentences you translated while playing",
	Long: "Lingiz turns the notes collected by your game-overlay translator into\n" +
		"quizzes: spelling, word meaning, grammar, and translation questions, with\n" +
		"progress tracking and review of past mistakes.",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := buildRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()
		return app.Run(rt.Engine)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("data-dir", "", "Data directory (overrides LINGIZ_DATA_DIR)")
	rootCmd.PersistentFlags().String("notes", "", "Path to the notes JSON file (overrides LINGIZ_NOTES)")

	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(insightsCmd)
	rootCmd.AddCommand(pruneCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// runtime bundles everything a command needs, plus cleanup.
type runtime struct {
	Engine   *engine.Engine
	Progress *progress.Store
	Events   store.EventRepo
	Log      *logrus.Logger

	eventStore *store.Store
}

func (r *runtime) Close() {
	if r.eventStore != nil {
		_ = r.eventStore.Close()
	}
}

// buildRuntime wires the full pipeline: data dir, logger, event store,
// progress document, corpus source, and LLM-backed enhancer when a provider
// is configured.
func buildRuntime(cmd *cobra.Command) (*runtime, error) {
	dataDir, err := resolveDataDir(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	log := newLogger(dataDir)

	eventStore, err := store.Open(filepath.Join(dataDir, "events.db"))
	if err != nil {
		return nil, fmt.Errorf("open event store: %w", err)
	}
	events := eventStore.EventRepo()

	prog := progress.Open(filepath.Join(dataDir, "progress.json"), log)

	notesPath, err := resolveNotesPath(cmd, dataDir)
	if err != nil {
		eventStore.Close()
		return nil, err
	}
	source := corpus.NewFileSource(notesPath, log)

	enhancer := buildEnhancer(cmd.Context(), events, log)

	return &runtime{
		Engine:     engine.New(source, enhancer, prog, events, log),
		Progress:   prog,
		Events:     events,
		Log:        log,
		eventStore: eventStore,
	}, nil
}

// buildEnhancer creates the distractor enhancer if an LLM provider is
// configured, via LINGIZ_LLM_PROVIDER or discovered from standard API key
// env vars. Without one the quiz falls back to deterministic options.
func buildEnhancer(ctx context.Context, events store.EventRepo, log *logrus.Logger) *distractor.Enhancer {
	var cfg llm.Config
	if os.Getenv("LINGIZ_LLM_PROVIDER") != "" {
		cfg = llm.ConfigFromEnv()
		if err := cfg.Validate(); err != nil {
			log.WithError(err).Warn("LLM provider misconfigured, quiz options fall back to defaults")
			return nil
		}
	} else {
		discovered, ok := llm.DiscoverConfig()
		if !ok {
			log.Info("no LLM provider configured, quiz options use deterministic fallbacks")
			return nil
		}
		cfg = discovered
	}

	provider, err := llm.NewProvider(ctx, cfg, events, log)
	if err != nil {
		log.WithError(err).Warn("failed to initialize LLM provider")
		return nil
	}

	dcfg := distractor.DefaultConfig()
	dcfg.UnitTimeout = cfg.Timeout
	return distractor.New(provider, dcfg)
}

func resolveDataDir(cmd *cobra.Command) (string, error) {
	if d, _ := cmd.Flags().GetString("data-dir"); d != "" {
		return d, os.MkdirAll(d, 0o755)
	}
	return store.DataDir()
}

func resolveNotesPath(cmd *cobra.Command, dataDir string) (string, error) {
	if p, _ := cmd.Flags().GetString("notes"); p != "" {
		return p, nil
	}
	if p := os.Getenv("LINGIZ_NOTES"); p != "" {
		return p, nil
	}
	return filepath.Join(dataDir, "notes.json"), nil
}

// newLogger writes structured logs to a file in the data dir so log lines
// never tear the TUI. Falls back to stderr if the file cannot be opened.
func newLogger(dataDir string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if lvl, err := logrus.ParseLevel(os.Getenv("LINGIZ_LOG_LEVEL")); err == nil {
		log.SetLevel(lvl)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}

	f, err := os.OpenFile(filepath.Join(dataDir, "lingiz.log"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err == nil {
		log.SetOutput(f)
	}
	return log
}
