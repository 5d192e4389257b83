package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"quantumedge/internal/audio"
	"quantumedge/internal/config"
	"quantumedge/internal/media"
)

var (
	transcribeMIME string
	sayOut         string
	songSing       bool
)

var writeCmd = &cobra.Command{
	Use:   "write [prompt]",
	Short: "Generate creative writing from a prompt",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		studio, _, err := newStudio(cmd)
		if err != nil {
			return err
		}
		text, err := studio.CreativeText(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Println(text)
		return nil
	},
}

var transcribeCmd = &cobra.Command{
	Use:   "transcribe [audio-file]",
	Short: "Transcribe an audio file to text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read audio file: %w", err)
		}
		studio, _, err := newStudio(cmd)
		if err != nil {
			return err
		}
		logger.Info("transcribing", zap.String("file", args[0]), zap.Int("bytes", len(data)))
		text, err := studio.Transcribe(cmd.Context(), data, transcribeMIME)
		if err != nil {
			return err
		}
		fmt.Println(text)
		return nil
	},
}

var songCmd = &cobra.Command{
	Use:   "song [prompt]",
	Short: "Write an uplifting song, and optionally sing it",
	Long: `Writes structured song lyrics (verse/chorus/bridge) for the prompt.
With --sing, the lyrics are then performed a capella through the
text-to-speech model and played back.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		studio, cfg, err := newStudio(cmd)
		if err != nil {
			return err
		}
		lyrics, err := studio.WriteSong(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Println(lyrics)
		if !songSing {
			return nil
		}
		fmt.Println("\nSinging...")
		return speakAndPlay(cmd, studio, cfg, lyrics, "")
	},
}

var sayCmd = &cobra.Command{
	Use:   "say [text]",
	Short: "Perform text as an a-capella vocal track",
	Long: `Sends the text through the text-to-speech model and plays the result,
or writes it to a WAV file with --out.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		studio, cfg, err := newStudio(cmd)
		if err != nil {
			return err
		}
		return speakAndPlay(cmd, studio, cfg, strings.Join(args, " "), sayOut)
	},
}

// speakAndPlay synthesizes the text and either writes a WAV file or plays
// it through the first available system player.
func speakAndPlay(cmd *cobra.Command, studio *media.Studio, cfg *config.Config, text, outPath string) error {
	pcm, err := studio.Speak(cmd.Context(), text)
	if err != nil {
		return err
	}
	buf, err := audio.DecodePCM16(pcm)
	if err != nil {
		return err
	}
	logger.Info("synthesized audio",
		zap.Int("frames", buf.Frames()),
		zap.Float64("seconds", buf.Duration()))

	if outPath != "" {
		if err := os.WriteFile(outPath, audio.EncodeWAV(buf), 0644); err != nil {
			return fmt.Errorf("failed to write WAV: %w", err)
		}
		fmt.Printf("✓ Audio saved to %s (%.1fs)\n", outPath, buf.Duration())
		return nil
	}

	player, err := audio.NewPlayer(cfg.Audio.Player)
	if err != nil {
		return fmt.Errorf("no audio player available (use --out to save a WAV instead): %w", err)
	}
	defer player.Close()

	if err := player.Play(buf); err != nil {
		return err
	}
	fmt.Printf("Playing %.1fs of audio...\n", buf.Duration())
	select {
	case <-player.Done():
	case <-cmd.Context().Done():
		player.Stop()
	}
	return nil
}

func init() {
	transcribeCmd.Flags().StringVar(&transcribeMIME, "mime", "audio/mpeg", "MIME type of the audio file")
	sayCmd.Flags().StringVarP(&sayOut, "out", "o", "", "Write a WAV file instead of playing")
	songCmd.Flags().BoolVar(&songSing, "sing", false, "Perform the lyrics after writing them")
}
