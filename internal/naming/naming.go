// Package naming resolves output file names: extension swaps, per-part
// segment names, and collision-free paths.
package naming

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Stem returns the file name without directory or extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// WithExt replaces the extension of path with ext (without dot).
func WithExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + "." + ext
}

// OutputPath builds the output path for a whole-file result:
// <outDir>/<input stem><suffix>.<ext>.
func OutputPath(outDir, inputPath, suffix, ext string) string {
	return filepath.Join(outDir, Stem(inputPath)+suffix+"."+ext)
}

// PartPath builds the output path for one part of a split result:
// <outDir>/<input stem>_part<NN>.<ext>. Parts are 1-based.
func PartPath(outDir, inputPath string, part int, ext string) string {
	return filepath.Join(outDir, fmt.Sprintf("%s_part%02d.%s", Stem(inputPath), part, ext))
}

// Unique returns path unchanged if nothing exists there, otherwise the first
// "<stem>_<n>.<ext>" variant that is free. Gives up after 100 attempts and
// returns the last candidate.
func Unique(path string) string {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	candidate := path
	for i := 1; i <= 100; i++ {
		candidate = fmt.Sprintf("%s_%d%s", stem, i, ext)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
	return candidate
}
