package probe

import "fmt"

// VideoMetadata holds the probed facts about one video file: the primary
// video stream plus container-level duration, size, and bitrate. Built once
// per request and treated as read-only afterward.
type VideoMetadata struct {
	Width        int
	Height       int
	Duration     float64 // seconds
	FPS          float64
	BitRate      int64 // bits/sec, container level
	Codec        string
	FileSize     int64
	HasAudio     bool
	AudioBitRate int64 // bits/sec; 0 when unknown or no audio
}

// Portrait reports whether the video is taller than wide.
func (m *VideoMetadata) Portrait() bool {
	return m.Height > m.Width
}

// Resolution returns "WxH", or "unknown" when dimensions are missing.
func (m *VideoMetadata) Resolution() string {
	if m.Width <= 0 || m.Height <= 0 {
		return "unknown"
	}
	return fmt.Sprintf("%dx%d", m.Width, m.Height)
}

// AudioBitRateKbps returns the audio bitrate in kbps, or fallback when the
// stream did not report one.
func (m *VideoMetadata) AudioBitRateKbps(fallback int) int {
	if m.AudioBitRate <= 0 {
		return fallback
	}
	return int(m.AudioBitRate / 1000)
}

// ImageMetadata holds the probed facts about one still or animated image.
type ImageMetadata struct {
	Width      int
	Height     int
	Format     string // "jpeg", "png", "gif", "webp"
	FileSize   int64
	HasAlpha   bool
	Animated   bool
	FrameCount int // 1 for stills
}
