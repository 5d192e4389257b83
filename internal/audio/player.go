package audio

import (
	"fmt"
	"os"
	"os/exec"
	"sync"

	"quantumedge/internal/logging"
)

// playerCandidates are tried in order when no player binary is configured.
var playerCandidates = []string{"aplay", "afplay", "paplay", "ffplay"}

// Player plays decoded buffers through a system audio binary. A playback
// run owns a temp file and a child process; Stop and Close release both.
type Player struct {
	mu     sync.Mutex
	binary string
	cmd    *exec.Cmd
	file   string
	done   chan struct{}
}

// NewPlayer resolves the playback binary. An empty binary autodetects.
func NewPlayer(binary string) (*Player, error) {
	if binary != "" {
		if _, err := exec.LookPath(binary); err != nil {
			return nil, fmt.Errorf("audio player %q not found: %w", binary, err)
		}
		return &Player{binary: binary}, nil
	}
	for _, candidate := range playerCandidates {
		if _, err := exec.LookPath(candidate); err == nil {
			return &Player{binary: candidate}, nil
		}
	}
	return nil, fmt.Errorf("no audio player found (tried %v)", playerCandidates)
}

// Play starts playback of the buffer and returns immediately. Any playback
// already running is stopped first. Done reports completion.
func (p *Player) Play(b *Buffer) error {
	p.stop()

	f, err := os.CreateTemp("", "qedge-*.wav")
	if err != nil {
		return fmt.Errorf("failed to create playback file: %w", err)
	}
	if _, err := f.Write(EncodeWAV(b)); err != nil {
		f.Close()
		os.Remove(f.Name())
		return fmt.Errorf("failed to write playback file: %w", err)
	}
	f.Close()

	args := []string{f.Name()}
	if p.binary == "ffplay" {
		args = []string{"-nodisp", "-autoexit", "-loglevel", "quiet", f.Name()}
	}
	cmd := exec.Command(p.binary, args...)
	if err := cmd.Start(); err != nil {
		os.Remove(f.Name())
		return fmt.Errorf("failed to start %s: %w", p.binary, err)
	}

	done := make(chan struct{})
	p.mu.Lock()
	p.cmd = cmd
	p.file = f.Name()
	p.done = done
	p.mu.Unlock()

	logging.Audio("playing %d frames via %s", b.Frames(), p.binary)
	go func() {
		_ = cmd.Wait()
		close(done)
		p.mu.Lock()
		if p.cmd == cmd {
			p.cmd = nil
			os.Remove(p.file)
			p.file = ""
		}
		p.mu.Unlock()
	}()
	return nil
}

// Done returns a channel closed when the current playback finishes, or nil
// when nothing is playing.
func (p *Player) Done() <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}

// Playing reports whether a playback process is running.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cmd != nil
}

// Stop terminates the current playback, if any.
func (p *Player) Stop() {
	p.stop()
}

// Close stops playback and releases resources.
func (p *Player) Close() {
	p.stop()
}

func (p *Player) stop() {
	p.mu.Lock()
	cmd := p.cmd
	file := p.file
	p.cmd = nil
	p.file = ""
	p.mu.Unlock()

	// The goroutine started in Play reaps the process.
	if cmd != nil && cmd.Process != nil {
		_ = cmd.Process.Kill()
	}
	if file != "" {
		os.Remove(file)
	}
}
