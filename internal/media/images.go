package media

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"quantumedge/internal/logging"
)

// GenerateImage renders one JPEG from a prompt.
func (s *Studio) GenerateImage(ctx context.Context, prompt string, aspect AspectRatio) (*Image, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, fmt.Errorf("prompt is required")
	}
	if !ValidImageAspect(aspect) {
		return nil, fmt.Errorf("unsupported aspect ratio %q", aspect)
	}

	timer := logging.StartTimer(logging.CategoryMedia, "GenerateImage")
	defer timer.Stop()

	resp, err := s.ai.Models.GenerateImages(ctx, s.cfg.Models.Image, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: int32(1),
		OutputMIMEType: "image/jpeg",
		AspectRatio:    string(aspect),
	})
	if err != nil {
		return nil, fmt.Errorf("image generation failed: %w", err)
	}
	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil {
		return nil, ErrNoImage
	}

	img := resp.GeneratedImages[0].Image
	logging.Media("generated image: %d bytes aspect=%s", len(img.ImageBytes), aspect)
	return &Image{Data: img.ImageBytes, MIMEType: "image/jpeg"}, nil
}

// EditImage applies a prompt to a source image and returns the edited
// image. Fails with ErrNoImage when the reply has no image part.
func (s *Studio) EditImage(ctx context.Context, prompt string, source Image) (*Image, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, fmt.Errorf("edit prompt is required")
	}
	if len(source.Data) == 0 {
		return nil, fmt.Errorf("source image is required")
	}

	timer := logging.StartTimer(logging.CategoryMedia, "EditImage")
	defer timer.Stop()

	content := genai.NewContentFromParts([]*genai.Part{
		genai.NewPartFromBytes(source.Data, source.MIMEType),
		genai.NewPartFromText(prompt),
	}, genai.RoleUser)

	resp, err := s.ai.Models.GenerateContent(ctx, s.cfg.Models.ImageEdit, []*genai.Content{content}, &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE"},
	})
	if err != nil {
		return nil, fmt.Errorf("image edit failed: %w", err)
	}

	part := firstPart(resp)
	if part == nil || part.InlineData == nil {
		return nil, ErrNoImage
	}
	logging.Media("edited image: %d bytes mime=%s", len(part.InlineData.Data), part.InlineData.MIMEType)
	return &Image{Data: part.InlineData.Data, MIMEType: part.InlineData.MIMEType}, nil
}

// firstPart returns the first reply part, or nil when the reply is empty.
func firstPart(resp *genai.GenerateContentResponse) *genai.Part {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil
	}
	return resp.Candidates[0].Content.Parts[0]
}
