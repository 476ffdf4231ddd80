package display

import "testing"

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{2048, "2.0 KiB"},
		{15 << 20, "15.0 MiB"},
		{3 << 30, "3.00 GiB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.in); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatBitrate(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "unknown"},
		{-1, "unknown"},
		{500000, "500 kb/s"},
		{1500000, "1500 kb/s"},
		{12000000, "12.0 Mb/s"},
	}
	for _, tt := range tests {
		if got := FormatBitrate(tt.in); got != tt.want {
			t.Errorf("FormatBitrate(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0:00"},
		{45.4, "0:45"},
		{90, "1:30"},
		{3725, "1:02:05"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.in); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatRatio(t *testing.T) {
	if got := FormatRatio(42.37); got != "42.4%" {
		t.Errorf("FormatRatio = %q", got)
	}
}
