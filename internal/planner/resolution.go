package planner

// FitResolution scales (w, h) down so the longer side is at most maxLong,
// preserving aspect ratio and never upscaling. Both returned dimensions are
// forced even by decrementing, as libx264 requires with yuv420p input.
func FitResolution(w, h, maxLong int) (int, int) {
	if w <= 0 || h <= 0 {
		return w, h
	}
	long := w
	if h > long {
		long = h
	}
	if long > maxLong {
		scale := float64(maxLong) / float64(long)
		w = int(float64(w) * scale)
		h = int(float64(h) * scale)
	}
	return evenDown(w), evenDown(h)
}

func evenDown(v int) int {
	if v%2 != 0 {
		v--
	}
	if v < 2 {
		v = 2
	}
	return v
}
