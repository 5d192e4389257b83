package audio

import (
	"bytes"
	"encoding/binary"
	"math"
)

// EncodeWAV renders the buffer as a 16-bit PCM WAV file, the format every
// system player understands.
func EncodeWAV(b *Buffer) []byte {
	dataLen := len(b.Samples) * 2
	var buf bytes.Buffer
	buf.Grow(44 + dataLen)

	// RIFF header
	buf.WriteString("RIFF")
	writeU32(&buf, uint32(36+dataLen))
	buf.WriteString("WAVE")

	// fmt chunk
	buf.WriteString("fmt ")
	writeU32(&buf, 16)
	writeU16(&buf, 1) // PCM
	writeU16(&buf, uint16(b.Channels))
	writeU32(&buf, uint32(b.SampleRate))
	writeU32(&buf, uint32(b.SampleRate*b.Channels*2)) // byte rate
	writeU16(&buf, uint16(b.Channels*2))              // block align
	writeU16(&buf, 16)                                // bits per sample

	// data chunk
	buf.WriteString("data")
	writeU32(&buf, uint32(dataLen))
	for _, s := range b.Samples {
		v := math.Round(float64(s) * 32768.0)
		if v > 32767 {
			v = 32767
		}
		if v < -32768 {
			v = -32768
		}
		writeU16(&buf, uint16(int16(v)))
	}
	return buf.Bytes()
}

func writeU16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

func writeU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}
