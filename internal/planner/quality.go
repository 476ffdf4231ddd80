package planner

import "github.com/statuspress/statuspress/internal/classify"

// durationCRF picks the quality-algorithm CRF baseline from clip length when
// no trusted content profile is available. Shorter clips can afford more
// quality within the size budget.
func durationCRF(durationSec float64) int {
	switch {
	case durationSec < 15:
		return 18
	case durationSec < 30:
		return 19
	case durationSec < 60:
		return 20
	default:
		return 21
	}
}

// adjustForDuration nudges a profile-recommended CRF at the duration
// extremes: very short clips gain quality, long ones give some back to stay
// inside the size budget.
func adjustForDuration(crf int, durationSec float64) int {
	if durationSec < 15 {
		crf--
		if crf < 17 {
			crf = 17
		}
	} else if durationSec > 60 {
		crf++
		if crf > 22 {
			crf = 22
		}
	}
	return crf
}

// classTuning holds the per-content-class x264 and filter knobs used by the
// quality algorithm.
type classTuning struct {
	psyRD      string
	aqStrength string
	deblock    string
	preset     string
	denoise    string // hqdn3d args; empty disables the denoiser
	sharpen    string // unsharp args; empty disables sharpening
}

const (
	// unsharp 3x3 passes: gentle for faces, standard for detail content.
	sharpenGentle   = "3:3:0.2:3:3:0.05"
	sharpenStandard = "3:3:0.3:3:3:0.1"
)

var tuningByClass = map[classify.ContentClass]classTuning{
	classify.TalkingHead: {
		psyRD:      "1.5:0.3",
		aqStrength: "1.0",
		deblock:    "0:0", // preserve block edges around facial detail
		preset:     "veryslow",
		denoise:    "1:1:2:2", // minimal, faces smear easily
		sharpen:    sharpenGentle,
	},
	classify.GroupPeople: {
		psyRD:      "1.2:0.25",
		aqStrength: "0.9",
		deblock:    "-1:-1",
		preset:     "veryslow",
		denoise:    "2:2:3:3",
		sharpen:    sharpenStandard,
	},
	classify.Action: {
		psyRD:      "1.0:0.15",
		aqStrength: "0.8",
		deblock:    "-1:-1",
		preset:     "slower", // faster preset is fine for motion
		denoise:    "3:3:4:4",
		sharpen:    "", // sharpening fights motion blur
	},
	classify.Nature: {
		psyRD:      "1.3:0.25",
		aqStrength: "0.9",
		deblock:    "-1:-1",
		preset:     "veryslow",
		denoise:    "2:2:3:3",
		sharpen:    sharpenStandard,
	},
	classify.ScreenContent: {
		psyRD:      "0.8:0.1", // low psy keeps rendered edges clean
		aqStrength: "0.6",
		deblock:    "0:0",
		preset:     "veryslow",
		denoise:    "", // synthetic content has no sensor noise to remove
		sharpen:    sharpenStandard,
	},
	classify.General: {
		psyRD:      "1.2:0.25",
		aqStrength: "0.9",
		deblock:    "-1:-1",
		preset:     "veryslow",
		denoise:    "2:2:3:3",
		sharpen:    sharpenStandard,
	},
}

func tuningFor(class classify.ContentClass) classTuning {
	if t, ok := tuningByClass[class]; ok {
		return t
	}
	return tuningByClass[classify.General]
}
