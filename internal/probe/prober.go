// Package probe extracts intrinsic metadata from media files: video via a
// single ffprobe JSON call, images via the native decoders.
package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// ErrNotMedia is returned when the input has no decodable video stream (for
// video probes) or no decodable image (for image probes).
var ErrNotMedia = errors.New("not a decodable media file")

// defaultFPS is used when the stream reports a malformed frame rate
// (zero denominator or unparsable value).
const defaultFPS = 30.0

// ProbeVideo runs a single ffprobe JSON call against path and returns the
// parsed metadata.
func ProbeVideo(ctx context.Context, path string) (*VideoMetadata, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format", "-show_streams",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe %q: %w", path, err)
	}

	return ParseVideoJSON(out)
}

// ParseVideoJSON converts raw ffprobe JSON output into VideoMetadata.
// Exported for testing without a real ffprobe binary. Returns ErrNotMedia
// when no video stream is present.
func ParseVideoJSON(data []byte) (*VideoMetadata, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse ffprobe JSON: %w", err)
	}

	var video, audio *ffprobeStream
	for i := range raw.Streams {
		s := &raw.Streams[i]
		switch s.CodecType {
		case "video":
			if video == nil && s.Disposition["attached_pic"] != 1 {
				video = s
			}
		case "audio":
			if audio == nil {
				audio = s
			}
		}
	}
	if video == nil {
		return nil, fmt.Errorf("%w: no video stream", ErrNotMedia)
	}

	m := &VideoMetadata{
		Width:    video.Width,
		Height:   video.Height,
		Duration: parseFloat(raw.Format.Duration),
		FPS:      normalizeFrameRate(video.RFrameRate),
		BitRate:  parseInt64(raw.Format.BitRate),
		Codec:    video.CodecName,
		FileSize: parseInt64(raw.Format.Size),
		HasAudio: audio != nil,
	}
	if audio != nil {
		m.AudioBitRate = parseInt64(audio.BitRate)
	}
	if m.Codec == "" {
		m.Codec = "unknown"
	}
	return m, nil
}

// --- ffprobe JSON wire types ---

type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	Duration string `json:"duration"`
	Size     string `json:"size"`
	BitRate  string `json:"bit_rate"`
}

type ffprobeStream struct {
	CodecName   string         `json:"codec_name"`
	CodecType   string         `json:"codec_type"`
	Width       int            `json:"width"`
	Height      int            `json:"height"`
	BitRate     string         `json:"bit_rate"`
	RFrameRate  string         `json:"r_frame_rate"`
	Disposition map[string]int `json:"disposition"`
}

// normalizeFrameRate converts ffprobe's rational frame rate ("30000/1001")
// to a float. A zero denominator or unparsable value yields defaultFPS.
func normalizeFrameRate(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return defaultFPS
	}
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err1 := strconv.ParseFloat(num, 64)
		d, err2 := strconv.ParseFloat(den, 64)
		if err1 != nil || err2 != nil || d == 0 {
			return defaultFPS
		}
		return n / d
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f <= 0 {
		return defaultFPS
	}
	return f
}

// --- Numeric parsing helpers (ffprobe returns numbers as strings) ---

func parseInt64(s string) int64 {
	n, _ := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}
