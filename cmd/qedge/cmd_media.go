package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"quantumedge/internal/config"
	"quantumedge/internal/gateway"
	"quantumedge/internal/media"
)

var (
	imagineAspect string
	imagineOut    string

	editSource string
	editOut    string

	videoImage  string
	videoAspect string
	videoOut    string
)

// newStudio builds the media studio from the loaded config.
func newStudio(cmd *cobra.Command) (*media.Studio, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("configuration error: %w", err)
	}
	client, err := gateway.New(cmd.Context(), cfg.APIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return media.NewStudio(client.GenAI(), cfg.APIKey, cfg), cfg, nil
}

// extensionFor maps a media MIME type to an output file extension.
func extensionFor(mimeType string) string {
	switch {
	case strings.Contains(mimeType, "png"):
		return ".png"
	case strings.Contains(mimeType, "mp4"):
		return ".mp4"
	default:
		return ".jpg"
	}
}

var imagineCmd = &cobra.Command{
	Use:   "imagine [prompt]",
	Short: "Generate an image from a text prompt",
	Long: `Generates a single image with Imagen and writes it to disk.

Aspect ratios: 1:1 (default), 16:9, 9:16, 4:3, 3:4.

Example:
  qedge imagine "a lighthouse at dawn, oil painting" --aspect 16:9 -o lighthouse.jpg`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		studio, _, err := newStudio(cmd)
		if err != nil {
			return err
		}
		aspect := media.AspectRatio(imagineAspect)
		if !media.ValidImageAspect(aspect) {
			return fmt.Errorf("unsupported aspect ratio %q (use one of %v)", imagineAspect, media.ImageAspectRatios)
		}

		prompt := strings.Join(args, " ")
		logger.Info("generating image", zap.String("aspect", imagineAspect))
		fmt.Println("Generating image...")

		img, err := studio.GenerateImage(cmd.Context(), prompt, aspect)
		if err != nil {
			return err
		}

		out := imagineOut
		if out == "" {
			out = fmt.Sprintf("qedge-image-%d%s", time.Now().Unix(), extensionFor(img.MIMEType))
		}
		if err := os.WriteFile(out, img.Data, 0644); err != nil {
			return fmt.Errorf("failed to write image: %w", err)
		}
		fmt.Printf("✓ Image saved to %s (%d bytes)\n", out, len(img.Data))
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:   "edit [prompt]",
	Short: "Edit an existing image with a text instruction",
	Long: `Sends an image plus an edit instruction to the image model and writes
the edited result to disk.

Example:
  qedge edit "make the sky stormy" --image photo.jpg -o stormy.jpg`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if editSource == "" {
			return fmt.Errorf("--image is required")
		}
		data, err := os.ReadFile(editSource)
		if err != nil {
			return fmt.Errorf("failed to read source image: %w", err)
		}

		studio, _, err := newStudio(cmd)
		if err != nil {
			return err
		}

		prompt := strings.Join(args, " ")
		logger.Info("editing image", zap.String("source", editSource))
		fmt.Println("Editing image...")

		img, err := studio.EditImage(cmd.Context(), prompt, media.Image{
			Data:     data,
			MIMEType: mimeForPath(editSource),
		})
		if err != nil {
			return err
		}

		out := editOut
		if out == "" {
			out = fmt.Sprintf("qedge-edit-%d%s", time.Now().Unix(), extensionFor(img.MIMEType))
		}
		if err := os.WriteFile(out, img.Data, 0644); err != nil {
			return fmt.Errorf("failed to write image: %w", err)
		}
		fmt.Printf("✓ Edited image saved to %s (%d bytes)\n", out, len(img.Data))
		return nil
	},
}

var videoCmd = &cobra.Command{
	Use:   "video [prompt]",
	Short: "Generate a short video, optionally animating an image",
	Long: `Animates a source image into a short video with Veo. With no prompt the
default animation instruction is used. Generation is slow: the operation
is polled until it settles, with a rotating status line.

Aspect ratios: 16:9 (default), 9:16.

Example:
  qedge video "waves rolling in" --image beach.jpg
  qedge video --image photo.jpg`,
	RunE: func(cmd *cobra.Command, args []string) error {
		studio, _, err := newStudio(cmd)
		if err != nil {
			return err
		}
		aspect := media.AspectRatio(videoAspect)
		if !media.ValidVideoAspect(aspect) {
			return fmt.Errorf("unsupported aspect ratio %q (use one of %v)", videoAspect, media.VideoAspectRatios)
		}

		if videoImage == "" {
			return fmt.Errorf("--image is required: video generation animates a source image")
		}
		data, err := os.ReadFile(videoImage)
		if err != nil {
			return fmt.Errorf("failed to read image: %w", err)
		}
		req := media.VideoRequest{
			Prompt: strings.Join(args, " "),
			Image:  media.Image{Data: data, MIMEType: mimeForPath(videoImage)},
			Aspect: aspect,
		}

		logger.Info("generating video", zap.String("aspect", videoAspect))
		start := time.Now()
		result, err := studio.GenerateVideo(cmd.Context(), req, func(state media.VideoState, attempt int) {
			msg := media.VideoProgressMessages[attempt%len(media.VideoProgressMessages)]
			fmt.Printf("\r\033[K[%s] %s", state, msg)
		})
		fmt.Println()
		if err != nil {
			return err
		}

		out := videoOut
		if out == "" {
			out = fmt.Sprintf("qedge-video-%d%s", time.Now().Unix(), extensionFor(result.MIMEType))
		}
		if err := os.WriteFile(out, result.Data, 0644); err != nil {
			return fmt.Errorf("failed to write video: %w", err)
		}
		fmt.Printf("✓ Video saved to %s (%d bytes, took %s)\n", out, len(result.Data), time.Since(start).Round(time.Second))
		return nil
	},
}

// mimeForPath guesses an image MIME type from the file extension.
func mimeForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

func init() {
	imagineCmd.Flags().StringVar(&imagineAspect, "aspect", "1:1", "Aspect ratio")
	imagineCmd.Flags().StringVarP(&imagineOut, "out", "o", "", "Output file")

	editCmd.Flags().StringVar(&editSource, "image", "", "Source image to edit (required)")
	editCmd.Flags().StringVarP(&editOut, "out", "o", "", "Output file")

	videoCmd.Flags().StringVar(&videoImage, "image", "", "Image to animate (required)")
	videoCmd.Flags().StringVar(&videoAspect, "aspect", "16:9", "Aspect ratio")
	videoCmd.Flags().StringVarP(&videoOut, "out", "o", "", "Output file")
}
