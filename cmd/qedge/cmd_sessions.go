package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"quantumedge/internal/convo"
	"quantumedge/internal/store"
)

var sessionsLimit int

var sessionsCmd = &cobra.Command{
	Use:   "sessions [session-id]",
	Short: "List stored conversations, or print one transcript",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		transcripts, err := store.NewTranscriptStore(filepath.Join(cfg.StateDir, "transcripts.db"))
		if err != nil {
			return err
		}
		defer transcripts.Close()

		if len(args) == 1 {
			return printTranscript(transcripts, args[0])
		}

		sessions, err := transcripts.ListSessions(sessionsLimit)
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			fmt.Println("No stored sessions yet.")
			return nil
		}
		for _, s := range sessions {
			fmt.Printf("%s  %-10s %s  %3d turns  %s\n",
				s.ID, s.Persona, s.StartedAt.Format("2006-01-02 15:04"), s.TurnCount, s.Preview)
		}
		return nil
	},
}

func printTranscript(transcripts *store.TranscriptStore, id string) error {
	turns, err := transcripts.LoadSession(id)
	if err != nil {
		return err
	}
	if len(turns) == 0 {
		return fmt.Errorf("no such session: %s", id)
	}
	for _, turn := range turns {
		label := "Assistant"
		if turn.Role == convo.RoleUser {
			label = "You"
		}
		fmt.Printf("--- %s (%s)\n%s\n\n", label, turn.Time.Format("15:04:05"), turn.Text)
		for _, src := range turn.Sources {
			fmt.Printf("    source: %s (%s)\n", src.Title, src.URI)
		}
	}
	return nil
}

func init() {
	sessionsCmd.Flags().IntVar(&sessionsLimit, "limit", 20, "Maximum sessions to list")
}
