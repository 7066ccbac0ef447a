package ffmpeg

// AudioMetadata is what ffprobe reports for the first audio stream
type AudioMetadata struct {
	Duration   float64 `json:"duration"`    // seconds
	SampleRate int     `json:"sample_rate"` // Hz
	Channels   int     `json:"channels"`
	Bitrate    int     `json:"bitrate"`
	Format     string  `json:"format"` // container, e.g. "wav" or "mov,mp4,m4a"
	Codec      string  `json:"codec"`
	Size       int64   `json:"size"`
}
