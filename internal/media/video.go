package media

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"google.golang.org/genai"

	"quantumedge/internal/logging"
)

// VideoState tracks a video generation job through its lifecycle.
type VideoState int

const (
	VideoSubmitted VideoState = iota
	VideoPolling
	VideoDone
	VideoFaulted
)

// String returns the display name for each state.
func (s VideoState) String() string {
	switch s {
	case VideoSubmitted:
		return "Submitted"
	case VideoPolling:
		return "Polling"
	case VideoDone:
		return "Done"
	case VideoFaulted:
		return "Faulted"
	}
	return "Unknown"
}

// VideoProgressMessages rotate on the loading surface while a video
// operation runs.
var VideoProgressMessages = []string{
	"Warming up the digital cameras...",
	"Choreographing the pixels...",
	"Rendering the first few frames...",
	"This can take a few minutes, hang tight!",
	"Adding some cinematic magic...",
	"Finalizing the motion picture...",
}

// VideoRequest describes one video generation job. Prompt is optional;
// the source image is required.
type VideoRequest struct {
	Prompt string
	Image  Image
	Aspect AspectRatio
}

// VideoResult is a completed video: the remote download URI and the
// fetched bytes.
type VideoResult struct {
	URI      string
	Data     []byte
	MIMEType string
}

// defaultVideoPrompt is used when the caller supplies no prompt.
const defaultVideoPrompt = "Animate this image beautifully."

// GenerateVideo submits a video job and drives it through the bounded
// poll loop Submitted -> Polling -> Done | Faulted. onProgress, when
// non-nil, is invoked on every state change and poll attempt. The poll
// interval and attempt bound come from the video configuration.
func (s *Studio) GenerateVideo(ctx context.Context, req VideoRequest, onProgress func(state VideoState, attempt int)) (*VideoResult, error) {
	if s.apiKey == "" {
		return nil, ErrNoCredential
	}
	if len(req.Image.Data) == 0 {
		return nil, fmt.Errorf("source image is required")
	}
	if !ValidVideoAspect(req.Aspect) {
		return nil, fmt.Errorf("unsupported video aspect ratio %q", req.Aspect)
	}
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		prompt = defaultVideoPrompt
	}

	timer := logging.StartTimer(logging.CategoryMedia, "GenerateVideo")
	defer timer.Stop()

	notify := onProgress
	if notify == nil {
		notify = func(VideoState, int) {}
	}
	notify(VideoSubmitted, 0)

	op, err := s.ai.Models.GenerateVideos(ctx, s.cfg.Models.Video, prompt,
		&genai.Image{ImageBytes: req.Image.Data, MIMEType: req.Image.MIMEType},
		&genai.GenerateVideosConfig{
			NumberOfVideos: 1,
			Resolution:     s.cfg.Video.Resolution,
			AspectRatio:    string(req.Aspect),
		})
	if err != nil {
		notify(VideoFaulted, 0)
		return nil, fmt.Errorf("video generation submit failed: %w", err)
	}

	uri, err := runVideoPoll(ctx, s.cfg.PollInterval(), s.cfg.Video.MaxPolls, func(ctx context.Context) (bool, string, error) {
		op, err = s.ai.Operations.GetVideosOperation(ctx, op, nil)
		if err != nil {
			return false, "", err
		}
		if !op.Done {
			return false, "", nil
		}
		return true, videoURI(op), nil
	}, notify)
	if err != nil {
		return nil, err
	}

	data, mimeType, err := s.downloadVideo(ctx, uri)
	if err != nil {
		notify(VideoFaulted, 0)
		return nil, err
	}
	logging.Media("video complete: %d bytes from %s", len(data), uri)
	return &VideoResult{URI: uri, Data: data, MIMEType: mimeType}, nil
}

// runVideoPoll drives the Polling state. Unlike the original unbounded
// loop, a permanently stuck remote operation fails after maxPolls
// attempts instead of polling forever.
func runVideoPoll(ctx context.Context, interval time.Duration, maxPolls int, poll func(context.Context) (bool, string, error), notify func(VideoState, int)) (string, error) {
	for attempt := 1; attempt <= maxPolls; attempt++ {
		select {
		case <-ctx.Done():
			notify(VideoFaulted, attempt)
			return "", ctx.Err()
		case <-time.After(interval):
		}
		notify(VideoPolling, attempt)

		done, uri, err := poll(ctx)
		if err != nil {
			notify(VideoFaulted, attempt)
			return "", fmt.Errorf("video poll failed: %w", err)
		}
		if !done {
			continue
		}
		if uri == "" {
			notify(VideoFaulted, attempt)
			return "", fmt.Errorf("video generation completed without a download link")
		}
		notify(VideoDone, attempt)
		return uri, nil
	}
	notify(VideoFaulted, maxPolls)
	return "", fmt.Errorf("video generation did not complete after %d polls", maxPolls)
}

// videoURI extracts the download link from a completed operation.
func videoURI(op *genai.GenerateVideosOperation) string {
	if op == nil || op.Response == nil {
		return ""
	}
	for _, gv := range op.Response.GeneratedVideos {
		if gv != nil && gv.Video != nil && gv.Video.URI != "" {
			return gv.Video.URI
		}
	}
	return ""
}

// downloadVideo fetches the finished clip. The download endpoint expects
// the API key as a query parameter.
func (s *Studio) downloadVideo(ctx context.Context, uri string) ([]byte, string, error) {
	keyed, err := keyedURI(uri, s.apiKey)
	if err != nil {
		return nil, "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, keyed, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to build video download request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("video download failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("video download returned status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read video body: %w", err)
	}
	mimeType := resp.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "video/mp4"
	}
	return data, mimeType, nil
}

// keyedURI appends the API key to a download link.
func keyedURI(uri, key string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("invalid video download link: %w", err)
	}
	q := u.Query()
	q.Set("key", key)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
