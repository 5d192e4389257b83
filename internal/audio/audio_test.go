package audio

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"math"
	"testing"
)

func pcmBytes(samples ...int16) []byte {
	buf := new(bytes.Buffer)
	for _, s := range samples {
		binary.Write(buf, binary.LittleEndian, s)
	}
	return buf.Bytes()
}

func TestDecodePCM16(t *testing.T) {
	b, err := DecodePCM16(pcmBytes(0, 32767, -32768, 16384))
	if err != nil {
		t.Fatalf("DecodePCM16: %v", err)
	}

	// n samples decode to exactly n frames at the fixed rate and layout.
	if b.Frames() != 4 {
		t.Errorf("frames = %d, want 4", b.Frames())
	}
	if b.SampleRate != 24000 || b.Channels != 1 {
		t.Errorf("format = %d Hz %d ch, want 24000 Hz mono", b.SampleRate, b.Channels)
	}

	want := []float32{0, 32767.0 / 32768.0, -1, 0.5}
	for i, w := range want {
		if math.Abs(float64(b.Samples[i]-w)) > 1e-6 {
			t.Errorf("sample %d = %v, want %v", i, b.Samples[i], w)
		}
	}
}

func TestDecodePCM16OddLength(t *testing.T) {
	if _, err := DecodePCM16([]byte{0x01, 0x02, 0x03}); err == nil {
		t.Error("odd byte count accepted")
	}
}

func TestDecodeBase64PCM16(t *testing.T) {
	raw := pcmBytes(1000, -1000)
	b, err := DecodeBase64PCM16(base64.StdEncoding.EncodeToString(raw))
	if err != nil {
		t.Fatalf("DecodeBase64PCM16: %v", err)
	}
	if b.Frames() != 2 {
		t.Errorf("frames = %d, want 2", b.Frames())
	}

	if _, err := DecodeBase64PCM16("not base64!!!"); err == nil {
		t.Error("invalid base64 accepted")
	}
}

func TestDuration(t *testing.T) {
	b := &Buffer{Samples: make([]float32, 24000), SampleRate: 24000, Channels: 1}
	if got := b.Duration(); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("duration = %v, want 1s", got)
	}
}

func TestEncodeWAV(t *testing.T) {
	b, err := DecodePCM16(pcmBytes(0, 12345, -12345, 32767))
	if err != nil {
		t.Fatalf("DecodePCM16: %v", err)
	}
	wav := EncodeWAV(b)

	if len(wav) != 44+4*2 {
		t.Fatalf("wav length = %d, want 52", len(wav))
	}
	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		t.Errorf("bad RIFF header: %q %q", wav[0:4], wav[8:12])
	}
	if string(wav[36:40]) != "data" {
		t.Errorf("missing data chunk: %q", wav[36:40])
	}
	if rate := binary.LittleEndian.Uint32(wav[24:28]); rate != 24000 {
		t.Errorf("sample rate = %d", rate)
	}
	if ch := binary.LittleEndian.Uint16(wav[22:24]); ch != 1 {
		t.Errorf("channels = %d", ch)
	}

	// The payload round-trips back to the original samples.
	for i, want := range []int16{0, 12345, -12345, 32767} {
		got := int16(binary.LittleEndian.Uint16(wav[44+2*i : 46+2*i]))
		if got != want {
			t.Errorf("sample %d = %d, want %d", i, got, want)
		}
	}
}
