package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"quantumedge/internal/config"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Logger for subcommands; the TUI has its own category logger.
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "qedge",
	Short: "Quantum Edge - AI assistants and media tools in your terminal",
	Long: `Quantum Edge bundles two grounded AI assistants and a set of
generative media tools behind one terminal app.

Assistants:
  Investment Assistant - web-grounded financial Q&A
  Escape Suggester     - place-grounded travel ideas near you

Media tools (subcommands): imagine, edit, video, write, transcribe,
song, say, library.

Run without arguments to start the interactive chat interface.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip logger init for interactive mode (it has its own UI)
		if cmd.Use == "qedge" && cmd.CalledAs() == "qedge" {
			return nil
		}

		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractiveChat()
	},
}

// loadConfig resolves the config file (flag, then default path) and applies
// environment overrides.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default ~/.qedge/config.yaml)")

	rootCmd.AddCommand(
		imagineCmd,
		editCmd,
		videoCmd,
		writeCmd,
		transcribeCmd,
		songCmd,
		sayCmd,
		libraryCmd,
		profileCmd,
		sessionsCmd,
		configCmd,
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
