package planner

import "fmt"

// maxOutputFPS caps the frame rate of every video output. Higher source
// rates burn bits on frames recipients will not notice.
const maxOutputFPS = 30.0

// scaleFilters builds the scale+pad pair used by every video algorithm:
// lanczos downscale that never exceeds the target box, then a pad to even
// dimensions so libx264 accepts the result.
func scaleFilters(targetW, targetH int) []Filter {
	return []Filter{
		{Name: "scale", Args: fmt.Sprintf("%d:%d:force_original_aspect_ratio=decrease:flags=lanczos", targetW, targetH)},
		{Name: "pad", Args: "ceil(iw/2)*2:ceil(ih/2)*2"},
	}
}

// fpsFilter returns a cap filter when the source exceeds maxOutputFPS, nil
// otherwise.
func fpsFilter(sourceFPS float64) []Filter {
	if sourceFPS > maxOutputFPS {
		return []Filter{{Name: "fps", Args: "30"}}
	}
	return nil
}

func denoiseFilter(args string) []Filter {
	if args == "" {
		return nil
	}
	return []Filter{{Name: "hqdn3d", Args: args}}
}

func sharpenFilter(args string) []Filter {
	if args == "" {
		return nil
	}
	return []Filter{{Name: "unsharp", Args: args}}
}
