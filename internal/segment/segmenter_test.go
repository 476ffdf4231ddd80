package segment

import (
	"math"
	"testing"
)

func TestPlanNoSplitWhenShort(t *testing.T) {
	if got := Plan(25, 30); got != nil {
		t.Errorf("Plan(25, 30) = %v, want nil", got)
	}
	if got := Plan(30, 30); got != nil {
		t.Errorf("Plan(30, 30) = %v, want nil", got)
	}
}

func TestPlanNoSplitOnBadInput(t *testing.T) {
	if got := Plan(0, 30); got != nil {
		t.Errorf("Plan(0, 30) = %v, want nil", got)
	}
	if got := Plan(45, 0); got != nil {
		t.Errorf("Plan(45, 0) = %v, want nil", got)
	}
	if got := Plan(-10, 30); got != nil {
		t.Errorf("Plan(-10, 30) = %v, want nil", got)
	}
}

func TestPlanSplitsEvenly(t *testing.T) {
	segs := Plan(45, 30)
	if len(segs) != 2 {
		t.Fatalf("len = %d, want 2", len(segs))
	}
	if segs[0].Index != 1 || segs[0].Start != 0 || segs[0].Duration != 30 {
		t.Errorf("segment 1 = %+v", segs[0])
	}
	if segs[1].Index != 2 || segs[1].Start != 30 || segs[1].Duration != 15 {
		t.Errorf("segment 2 = %+v", segs[1])
	}
}

func TestPlanDropsShortTail(t *testing.T) {
	// 61s at 30s: the 1s tail is dropped, the first two survive.
	segs := Plan(61, 30)
	if len(segs) != 2 {
		t.Fatalf("len = %d, want 2", len(segs))
	}
	if segs[1].Duration != 30 {
		t.Errorf("segment 2 duration = %v, want 30", segs[1].Duration)
	}
}

func TestPlanKeepsTailAtThreshold(t *testing.T) {
	segs := Plan(62, 30)
	if len(segs) != 3 {
		t.Fatalf("len = %d, want 3", len(segs))
	}
	if segs[2].Duration != 2 {
		t.Errorf("tail duration = %v, want 2", segs[2].Duration)
	}
}

func TestPlanCoverage(t *testing.T) {
	durations := []float64{45, 60.5, 90, 120, 89.9, 200}
	sizes := []float64{30, 60, 90}
	for _, d := range durations {
		for _, s := range sizes {
			segs := Plan(d, s)
			if segs == nil {
				if d > s {
					// only legitimate when the tail was subsumed
					if d-s >= minTailSeconds {
						t.Errorf("Plan(%v, %v) = nil unexpectedly", d, s)
					}
				}
				continue
			}
			var covered float64
			prevEnd := 0.0
			for _, seg := range segs {
				if seg.Start != prevEnd {
					t.Errorf("Plan(%v, %v): segment %d starts at %v, want %v", d, s, seg.Index, seg.Start, prevEnd)
				}
				covered += seg.Duration
				prevEnd = seg.Start + seg.Duration
			}
			// Full coverage, or short of it by exactly the dropped tail.
			gap := d - covered
			if gap != 0 && (gap < 0 || gap >= minTailSeconds) {
				t.Errorf("Plan(%v, %v): covered %v, gap %v", d, s, covered, gap)
			}
			want := int(math.Ceil(d / s))
			if len(segs) > want {
				t.Errorf("Plan(%v, %v): %d segments, max %d", d, s, len(segs), want)
			}
		}
	}
}
