package life

//StepResult describes the effect of one generation transition
type StepResult struct {
	Born int
	Died int
}

//Changed reports whether the transition altered the board
func (r StepResult) Changed() bool {
	return r.Born != 0 || r.Died != 0
}

//Stats accumulates step results across generations.
//It does not depend on a board and survives board resets until Reset is called
type Stats struct {
	Generation int
	Born       int
	Died       int
}

//Update accounts one generation
func (s *Stats) Update(r StepResult) {
	s.Generation++
	s.Born += r.Born
	s.Died += r.Died
}

//Reset zeroes all counters
func (s *Stats) Reset() {
	*s = Stats{}
}
