package pose

// Smoother is an exponential low-pass over a handle sequence. Raw
// detector output jitters by a pixel or two per frame; filtering the
// handles before they reach the deformer keeps the warp from
// shimmering. This runs outside the deformation core, which itself
// holds no frame-to-frame state.
type Smoother struct {
	alpha float64
	prev  HandleSet
}

// NewSmoother creates a smoother with blend factor alpha in (0, 1];
// 1 means no smoothing, smaller values trail the input harder.
func NewSmoother(alpha float64) *Smoother {
	if alpha <= 0 || alpha > 1 {
		alpha = 1
	}
	return &Smoother{alpha: alpha}
}

// Filter blends the incoming set against the previous output. The
// first call and any cardinality change pass through unfiltered.
func (s *Smoother) Filter(h HandleSet) HandleSet {
	if len(s.prev) != len(h) {
		s.prev = h.Clone()
		return h
	}
	out := make(HandleSet, len(h))
	for i, p := range h {
		out[i].X = s.prev[i].X + s.alpha*(p.X-s.prev[i].X)
		out[i].Y = s.prev[i].Y + s.alpha*(p.Y-s.prev[i].Y)
	}
	s.prev = out
	return out
}
