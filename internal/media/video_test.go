package media

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"quantumedge/internal/config"
)

func fastNotify() (func(VideoState, int), *[]VideoState) {
	var states []VideoState
	return func(s VideoState, attempt int) { states = append(states, s) }, &states
}

func TestRunVideoPollCompletes(t *testing.T) {
	attempts := 0
	poll := func(ctx context.Context) (bool, string, error) {
		attempts++
		if attempts < 3 {
			return false, "", nil
		}
		return true, "https://example.com/video.mp4", nil
	}
	notify, states := fastNotify()

	uri, err := runVideoPoll(context.Background(), time.Millisecond, 10, poll, notify)
	if err != nil {
		t.Fatalf("runVideoPoll: %v", err)
	}
	if uri != "https://example.com/video.mp4" {
		t.Errorf("uri = %q", uri)
	}
	if attempts != 3 {
		t.Errorf("polled %d times, want 3", attempts)
	}
	last := (*states)[len(*states)-1]
	if last != VideoDone {
		t.Errorf("final state = %s, want Done", last)
	}
}

func TestRunVideoPollBounded(t *testing.T) {
	poll := func(ctx context.Context) (bool, string, error) {
		return false, "", nil // never completes
	}
	notify, states := fastNotify()

	_, err := runVideoPoll(context.Background(), time.Millisecond, 4, poll, notify)
	if err == nil {
		t.Fatal("stuck operation did not fail")
	}
	if !strings.Contains(err.Error(), "did not complete after 4 polls") {
		t.Errorf("err = %v", err)
	}
	last := (*states)[len(*states)-1]
	if last != VideoFaulted {
		t.Errorf("final state = %s, want Faulted", last)
	}
}

func TestRunVideoPollRemoteError(t *testing.T) {
	poll := func(ctx context.Context) (bool, string, error) {
		return false, "", errors.New("operation lookup failed")
	}
	notify, states := fastNotify()

	_, err := runVideoPoll(context.Background(), time.Millisecond, 10, poll, notify)
	if err == nil {
		t.Fatal("remote error swallowed")
	}
	if (*states)[len(*states)-1] != VideoFaulted {
		t.Errorf("states = %v", *states)
	}
}

func TestRunVideoPollEmptyURI(t *testing.T) {
	poll := func(ctx context.Context) (bool, string, error) {
		return true, "", nil // done but no link
	}
	notify, _ := fastNotify()

	_, err := runVideoPoll(context.Background(), time.Millisecond, 10, poll, notify)
	if err == nil || !strings.Contains(err.Error(), "without a download link") {
		t.Errorf("err = %v", err)
	}
}

func TestRunVideoPollContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	poll := func(ctx context.Context) (bool, string, error) {
		t.Fatal("poll ran after cancellation")
		return false, "", nil
	}
	notify, _ := fastNotify()

	_, err := runVideoPoll(ctx, time.Minute, 10, poll, notify)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestGenerateVideoRequiresCredential(t *testing.T) {
	s := NewStudio(nil, "", config.DefaultConfig())
	_, err := s.GenerateVideo(context.Background(), VideoRequest{
		Image:  Image{Data: []byte{1}, MIMEType: "image/jpeg"},
		Aspect: AspectWide,
	}, nil)
	if !errors.Is(err, ErrNoCredential) {
		t.Errorf("err = %v, want ErrNoCredential", err)
	}
}

func TestGenerateVideoValidation(t *testing.T) {
	s := NewStudio(nil, "key", config.DefaultConfig())

	if _, err := s.GenerateVideo(context.Background(), VideoRequest{Aspect: AspectWide}, nil); err == nil {
		t.Error("accepted request without source image")
	}
	req := VideoRequest{Image: Image{Data: []byte{1}}, Aspect: AspectSquare}
	if _, err := s.GenerateVideo(context.Background(), req, nil); err == nil {
		t.Error("accepted square aspect for video")
	}
}

func TestKeyedURI(t *testing.T) {
	got, err := keyedURI("https://generativelanguage.googleapis.com/v1/files/abc:download?alt=media", "secret")
	if err != nil {
		t.Fatalf("keyedURI: %v", err)
	}
	if !strings.Contains(got, "key=secret") || !strings.Contains(got, "alt=media") {
		t.Errorf("keyed uri = %q", got)
	}
}

func TestVideoStateString(t *testing.T) {
	want := map[VideoState]string{
		VideoSubmitted: "Submitted",
		VideoPolling:   "Polling",
		VideoDone:      "Done",
		VideoFaulted:   "Faulted",
	}
	for state, name := range want {
		if state.String() != name {
			t.Errorf("%d.String() = %q, want %q", state, state.String(), name)
		}
	}
}

func TestVideoProgressMessagesRotate(t *testing.T) {
	if len(VideoProgressMessages) != 6 {
		t.Fatalf("got %d progress messages, want 6", len(VideoProgressMessages))
	}
	seen := map[string]bool{}
	for _, msg := range VideoProgressMessages {
		if seen[msg] {
			t.Errorf("duplicate progress message %q", msg)
		}
		seen[msg] = true
	}
}
