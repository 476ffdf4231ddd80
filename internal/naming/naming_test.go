package naming

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStem(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/videos/holiday.mp4", "holiday"},
		{"clip.mov", "clip"},
		{"archive.tar.gz", "archive.tar"},
		{"noext", "noext"},
	}
	for _, tt := range tests {
		if got := Stem(tt.in); got != tt.want {
			t.Errorf("Stem(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWithExt(t *testing.T) {
	if got := WithExt("/out/clip.mov", "mp4"); got != "/out/clip.mp4" {
		t.Errorf("WithExt = %q", got)
	}
}

func TestOutputPath(t *testing.T) {
	got := OutputPath("/out", "/in/holiday.mov", "_compressed", "mp4")
	want := filepath.Join("/out", "holiday_compressed.mp4")
	if got != want {
		t.Errorf("OutputPath = %q, want %q", got, want)
	}
}

func TestPartPath(t *testing.T) {
	got := PartPath("/out", "/in/holiday.mov", 3, "mp4")
	want := filepath.Join("/out", "holiday_part03.mp4")
	if got != want {
		t.Errorf("PartPath = %q, want %q", got, want)
	}
}

func TestUniqueNoCollision(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh.mp4")
	if got := Unique(path); got != path {
		t.Errorf("Unique(%q) = %q, want unchanged", path, got)
	}
}

func TestUniqueCollision(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "busy.mp4")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	got := Unique(path)
	want := filepath.Join(dir, "busy_1.mp4")
	if got != want {
		t.Errorf("Unique = %q, want %q", got, want)
	}

	if err := os.WriteFile(want, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	got = Unique(path)
	want = filepath.Join(dir, "busy_2.mp4")
	if got != want {
		t.Errorf("Unique after second collision = %q, want %q", got, want)
	}
}
