package main

import (
	"context"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"quantumedge/cmd/qedge/chat"
	"quantumedge/internal/config"
	"quantumedge/internal/gateway"
	"quantumedge/internal/logging"
	"quantumedge/internal/profile"
	"quantumedge/internal/store"
)

// runInteractiveChat boots the full TUI: config, category logging, profile,
// gateway client, transcript store, and the bubbletea program.
func runInteractiveChat() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w (set GEMINI_API_KEY or run 'qedge config init')", err)
	}

	logging.Initialize(cfg.StateDir, cfg.Logging.Debug)
	defer logging.CloseAll()
	logging.Boot("starting interactive chat")

	prof, _, err := profile.Load(profile.DefaultPath(cfg.StateDir))
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, err := gateway.New(ctx, cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create Gemini client: %w", err)
	}

	transcripts, err := store.NewTranscriptStore(filepath.Join(cfg.StateDir, "transcripts.db"))
	if err != nil {
		// Persistence is best-effort; chat still works without it.
		logging.Boot("transcript store unavailable: %v", err)
		transcripts = nil
	} else {
		defer transcripts.Close()
	}

	// Config file changes apply on the next restart; the watcher just
	// logs that a reload-worthy edit happened.
	watchPath := configPath
	if watchPath == "" {
		watchPath = config.DefaultPath()
	}
	watcher, err := config.NewWatcher(watchPath, func(updated *config.Config) {
		logging.Boot("config file changed on disk (applies on restart)")
	})
	if err == nil {
		watcher.Start(ctx)
		defer watcher.Stop()
	}

	model := chat.New(cfg, client, prof, transcripts)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("chat interface error: %w", err)
	}
	return nil
}
