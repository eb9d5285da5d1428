package dice

// Script is a Source that replays fixed die faces and fractions, cycling when
// exhausted. IntN(n) consumes the next face f and returns f-1 clamped to
// [0, n), so a face is exactly what the Roller reports for a single die.
type Script struct {
	faces     []int
	fractions []float64
	fi, ri    int
}

// NewScript returns a Script replaying faces. Fractions default to 0.5.
func NewScript(faces ...int) *Script {
	if len(faces) == 0 {
		faces = []int{1}
	}
	return &Script{faces: faces, fractions: []float64{0.5}}
}

// WithFractions sets the values Float64 replays.
func (s *Script) WithFractions(fractions ...float64) *Script {
	if len(fractions) > 0 {
		s.fractions = fractions
	}
	return s
}

func (s *Script) IntN(n int) int {
	f := s.faces[s.fi%len(s.faces)]
	s.fi++
	return Clamp(f-1, 0, n-1)
}

func (s *Script) Float64() float64 {
	v := s.fractions[s.ri%len(s.fractions)]
	s.ri++
	if v < 0 {
		return 0
	}
	if v >= 1 {
		return 0.999999
	}
	return v
}
