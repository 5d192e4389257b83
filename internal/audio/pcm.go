// Package audio decodes the raw PCM produced by speech synthesis and plays
// it back. The output device is an explicit owned resource: acquired when
// playback starts, released when it stops or the player is closed.
package audio

import (
	"encoding/base64"
	"fmt"
)

// SampleRate is the fixed rate of synthesized speech.
const SampleRate = 24000

// Channels is the fixed channel count of synthesized speech.
const Channels = 1

// Buffer is a decoded mono waveform.
type Buffer struct {
	Samples    []float32
	SampleRate int
	Channels   int
}

// Frames returns the number of audio frames in the buffer. With one
// channel this equals the sample count.
func (b *Buffer) Frames() int {
	return len(b.Samples) / b.Channels
}

// Duration returns the playback length in seconds.
func (b *Buffer) Duration() float64 {
	if b.SampleRate == 0 {
		return 0
	}
	return float64(b.Frames()) / float64(b.SampleRate)
}

// DecodePCM16 converts little-endian signed 16-bit PCM into a float32
// waveform in [-1, 1) by dividing each sample by 32768. n input samples
// produce a buffer of exactly n frames at 24 kHz mono.
func DecodePCM16(data []byte) (*Buffer, error) {
	if len(data)%2 != 0 {
		return nil, fmt.Errorf("PCM payload has odd length %d", len(data))
	}
	samples := make([]float32, len(data)/2)
	for i := range samples {
		s := int16(uint16(data[2*i]) | uint16(data[2*i+1])<<8)
		samples[i] = float32(s) / 32768.0
	}
	return &Buffer{Samples: samples, SampleRate: SampleRate, Channels: Channels}, nil
}

// DecodeBase64PCM16 decodes a base64-encoded PCM payload as delivered on
// the wire, then converts it.
func DecodeBase64PCM16(encoded string) (*Buffer, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 audio: %w", err)
	}
	return DecodePCM16(data)
}
