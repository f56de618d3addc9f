package random

// Scripted replays fixed draws in order. Once a queue is exhausted it
// keeps returning the fallback value for that kind of draw.
//
// It exists so tests can force specific branches of the match engine,
// e.g. "goal is reviewed, review annuls it".
type Scripted struct {
	Floats        []float64
	Ints          []int
	FloatFallback float64
	IntFallback   int

	floatPos int
	intPos   int
}

func (s *Scripted) Float64() float64 {
	if s.floatPos >= len(s.Floats) {
		return s.FloatFallback
	}
	v := s.Floats[s.floatPos]
	s.floatPos++
	return v
}

func (s *Scripted) Intn(n int) int {
	if s.intPos >= len(s.Ints) {
		return clampInt(s.IntFallback, n)
	}
	v := s.Ints[s.intPos]
	s.intPos++
	return clampInt(v, n)
}

// Remaining reports how many scripted floats and ints were not consumed.
func (s *Scripted) Remaining() (floats, ints int) {
	return len(s.Floats) - s.floatPos, len(s.Ints) - s.intPos
}

func clampInt(v, n int) int {
	if n <= 0 {
		panic("random: invalid argument to Intn")
	}
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}
