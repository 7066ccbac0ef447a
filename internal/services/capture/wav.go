package capture

import (
	"bytes"
	"encoding/binary"
	"math"
)

const wavMIMEType = "audio/wav"

// EncodeWAV renders float32 samples in [-1,1] as a 16-bit PCM RIFF file
func EncodeWAV(samples []float32, format Format) []byte {
	const bitsPerSample = 16
	channels := format.Channels
	if channels <= 0 {
		channels = 1
	}

	blockAlign := channels * bitsPerSample / 8
	byteRate := format.SampleRate * blockAlign
	dataSize := len(samples) * bitsPerSample / 8

	buf := bytes.NewBuffer(make([]byte, 0, 44+dataSize))
	buf.WriteString("RIFF")
	_ = binary.Write(buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	_ = binary.Write(buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(buf, binary.LittleEndian, uint16(1)) // PCM
	_ = binary.Write(buf, binary.LittleEndian, uint16(channels))
	_ = binary.Write(buf, binary.LittleEndian, uint32(format.SampleRate))
	_ = binary.Write(buf, binary.LittleEndian, uint32(byteRate))
	_ = binary.Write(buf, binary.LittleEndian, uint16(blockAlign))
	_ = binary.Write(buf, binary.LittleEndian, uint16(bitsPerSample))

	buf.WriteString("data")
	_ = binary.Write(buf, binary.LittleEndian, uint32(dataSize))
	for _, s := range samples {
		_ = binary.Write(buf, binary.LittleEndian, toPCM16(s))
	}

	return buf.Bytes()
}

func toPCM16(s float32) int16 {
	v := math.Max(-1, math.Min(1, float64(s)))
	return int16(math.Round(v * math.MaxInt16))
}

// SampleDuration returns the playback length of interleaved samples in seconds
func SampleDuration(samples int, format Format) float64 {
	if format.SampleRate <= 0 || format.Channels <= 0 {
		return 0
	}
	return float64(samples) / float64(format.Channels) / float64(format.SampleRate)
}
