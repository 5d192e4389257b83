package media

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"quantumedge/internal/logging"
)

const songPromptTemplate = `You are an expert AI songwriter. Your task is to write lyrics for a short, uplifting song based on the user's prompt. The song must have a clear and conventional structure: Verse 1, Chorus, Verse 2, Chorus, Bridge, Chorus. Ensure the lyrics are creative, coherent, and fit an uplifting tone. Use markdown for formatting, clearly labeling each section (e.g., **Verse 1**). Prompt: %q`

const ttsPerformanceTemplate = `Perform the following lyrics as a clear, melodic, a capella vocal track. Invent a suitable melody and rhythm that matches the emotional tone of the lyrics. The performance should sound like a studio-recorded vocal performance. Do not add any instrumental accompaniment. Here are the lyrics: %s`

// CreativeText writes a short piece from a free-form prompt.
func (s *Studio) CreativeText(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt is required")
	}

	timer := logging.StartTimer(logging.CategoryMedia, "CreativeText")
	defer timer.Stop()

	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
	resp, err := s.ai.Models.GenerateContent(ctx, s.cfg.Models.Creative, contents, nil)
	if err != nil {
		return "", fmt.Errorf("creative writing failed: %w", err)
	}
	return resp.Text(), nil
}

// Transcribe converts recorded audio into plain text.
func (s *Studio) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	if len(audio) == 0 {
		return "", fmt.Errorf("audio payload is required")
	}

	timer := logging.StartTimer(logging.CategoryMedia, "Transcribe")
	defer timer.Stop()

	content := genai.NewContentFromParts([]*genai.Part{
		genai.NewPartFromBytes(audio, mimeType),
		genai.NewPartFromText("Transcribe the audio."),
	}, genai.RoleUser)

	resp, err := s.ai.Models.GenerateContent(ctx, s.cfg.Models.Transcribe, []*genai.Content{content}, nil)
	if err != nil {
		return "", fmt.Errorf("transcription failed: %w", err)
	}
	return resp.Text(), nil
}

// WriteSong writes structured markdown lyrics (Verse 1, Chorus, Verse 2,
// Chorus, Bridge, Chorus) for an uplifting song about the prompt.
func (s *Studio) WriteSong(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt is required")
	}

	timer := logging.StartTimer(logging.CategoryMedia, "WriteSong")
	defer timer.Stop()

	zero := int32(0)
	contents := []*genai.Content{genai.NewContentFromText(SongPrompt(prompt), genai.RoleUser)}
	resp, err := s.ai.Models.GenerateContent(ctx, s.cfg.Models.Song, contents, &genai.GenerateContentConfig{
		ThinkingConfig: &genai.ThinkingConfig{ThinkingBudget: &zero},
	})
	if err != nil {
		return "", fmt.Errorf("song writing failed: %w", err)
	}
	return resp.Text(), nil
}

// SongPrompt expands the fixed songwriting template.
func SongPrompt(prompt string) string {
	return fmt.Sprintf(songPromptTemplate, prompt)
}

// Speak performs lyrics as an a-capella vocal track. The result is raw
// mono 16-bit PCM at 24 kHz, ready for the audio pipeline.
func (s *Studio) Speak(ctx context.Context, lyrics string) ([]byte, error) {
	if strings.TrimSpace(lyrics) == "" {
		return nil, fmt.Errorf("lyrics are required")
	}

	timer := logging.StartTimer(logging.CategoryMedia, "Speak")
	defer timer.Stop()

	contents := []*genai.Content{
		genai.NewContentFromText(fmt.Sprintf(ttsPerformanceTemplate, lyrics), genai.RoleUser),
	}
	resp, err := s.ai.Models.GenerateContent(ctx, s.cfg.Models.TTS, contents, &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: s.cfg.Audio.Voice},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("speech synthesis failed: %w", err)
	}

	part := firstPart(resp)
	if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
		return nil, fmt.Errorf("speech synthesis returned no audio")
	}
	logging.Media("synthesized %d PCM bytes", len(part.InlineData.Data))
	return part.InlineData.Data, nil
}
