package pose

import (
	"errors"
	"math"
	"testing"
)

func TestCorrespond(t *testing.T) {
	ref := HandleSet{{X: 0, Y: 0}, {X: 1, Y: 1}}
	if err := ref.Correspond(HandleSet{{X: 2, Y: 2}, {X: 3, Y: 3}}); err != nil {
		t.Errorf("matching lengths rejected: %v", err)
	}
	err := ref.Correspond(HandleSet{{X: 2, Y: 2}})
	if !errors.Is(err, ErrCardinalityMismatch) {
		t.Errorf("err = %v, want ErrCardinalityMismatch", err)
	}
}

func TestKeypointName(t *testing.T) {
	if got := KeypointName(Nose); got != "nose" {
		t.Errorf("KeypointName(Nose) = %q", got)
	}
	if got := KeypointName(RightAnkle); got != "right_ankle" {
		t.Errorf("KeypointName(RightAnkle) = %q", got)
	}
	if got := KeypointName(NumKeypoints); got != "" {
		t.Errorf("out-of-range name = %q, want empty", got)
	}
}

func TestSkeletonIndicesValid(t *testing.T) {
	for i, limb := range Skeleton {
		for _, k := range limb {
			if k < 0 || k >= NumKeypoints {
				t.Errorf("limb %d references keypoint %d", i, k)
			}
		}
	}
}

func TestSmootherConverges(t *testing.T) {
	s := NewSmoother(0.5)
	first := HandleSet{{X: 0, Y: 0}}
	if got := s.Filter(first); got[0] != first[0] {
		t.Fatalf("first frame altered: %v", got)
	}
	// Feed a constant target; the output must converge onto it.
	target := HandleSet{{X: 10, Y: -4}}
	var out HandleSet
	for i := 0; i < 50; i++ {
		out = s.Filter(target)
	}
	if math.Abs(out[0].X-10) > 1e-6 || math.Abs(out[0].Y+4) > 1e-6 {
		t.Errorf("smoother settled at %v, want %v", out[0], target[0])
	}
}

func TestSmootherPassThroughOnCardinalityChange(t *testing.T) {
	s := NewSmoother(0.2)
	s.Filter(HandleSet{{X: 0, Y: 0}})
	next := HandleSet{{X: 5, Y: 5}, {X: 6, Y: 6}}
	got := s.Filter(next)
	for i := range next {
		if got[i] != next[i] {
			t.Errorf("cardinality change not passed through: %v", got)
		}
	}
}
