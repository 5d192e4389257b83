// Package media implements the single-shot generative tools: image
// generation and editing, video generation, creative writing, audio
// transcription, song writing, and text-to-speech. Each operation is an
// independent request/response call with its own error surface; only video
// generation carries extra asynchrony, modeled as a bounded poll loop.
package media

import (
	"errors"

	"google.golang.org/genai"

	"quantumedge/internal/config"
)

// ErrNoCredential indicates the Gemini API key has not been configured.
// It is a recoverable precondition, distinct from remote-call failures:
// callers surface a credential-selection prompt rather than an error
// message.
var ErrNoCredential = errors.New("no Gemini API key selected")

// ErrNoImage indicates the remote reply carried no image part.
var ErrNoImage = errors.New("no image generated")

// Studio bundles the genai client with the per-tool model configuration.
type Studio struct {
	ai     *genai.Client
	apiKey string
	cfg    *config.Config
}

// NewStudio wires the media tools to a connected client.
func NewStudio(ai *genai.Client, apiKey string, cfg *config.Config) *Studio {
	return &Studio{ai: ai, apiKey: apiKey, cfg: cfg}
}

// AspectRatio enumerates the supported still-image shapes.
type AspectRatio string

const (
	AspectSquare   AspectRatio = "1:1"
	AspectWide     AspectRatio = "16:9"
	AspectTall     AspectRatio = "9:16"
	AspectClassic  AspectRatio = "4:3"
	AspectPortrait AspectRatio = "3:4"
)

// ImageAspectRatios lists every aspect ratio the image generator accepts.
var ImageAspectRatios = []AspectRatio{AspectSquare, AspectWide, AspectTall, AspectClassic, AspectPortrait}

// VideoAspectRatios lists the aspect ratios the video generator accepts.
var VideoAspectRatios = []AspectRatio{AspectWide, AspectTall}

// ValidImageAspect reports whether ar is an accepted still-image ratio.
func ValidImageAspect(ar AspectRatio) bool {
	for _, v := range ImageAspectRatios {
		if v == ar {
			return true
		}
	}
	return false
}

// ValidVideoAspect reports whether ar is an accepted video ratio.
func ValidVideoAspect(ar AspectRatio) bool {
	for _, v := range VideoAspectRatios {
		if v == ar {
			return true
		}
	}
	return false
}

// Image is an encoded image returned by generation or editing.
type Image struct {
	Data     []byte
	MIMEType string
}
