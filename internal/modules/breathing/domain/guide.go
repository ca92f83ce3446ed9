package domain

// State is the position inside a pattern. Remaining counts the seconds left
// in the current phase; Cycle is 1-based.
type State struct {
	Phase       Phase
	Remaining   int
	Cycle       int
	TotalCycles int
	Done        bool
}

func Begin(p Pattern) State {
	return State{Phase: PhaseInhale, Remaining: p.Inhale, Cycle: 1, TotalCycles: p.Cycles}
}

// Tick advances one second. The phase changes when its time runs out, and
// the state is Done after the last phase of the last cycle. A done state
// does not move.
func (s State) Tick(p Pattern) State {
	if s.Done {
		return s
	}
	s.Remaining--
	if s.Remaining > 0 {
		return s
	}
	segs := p.segments()
	for i, seg := range segs {
		if seg.phase == s.Phase && i+1 < len(segs) {
			s.Phase, s.Remaining = segs[i+1].phase, segs[i+1].seconds
			return s
		}
	}
	if s.Cycle < s.TotalCycles {
		s.Cycle++
		s.Phase, s.Remaining = PhaseInhale, p.Inhale
		return s
	}
	s.Remaining = 0
	s.Done = true
	return s
}

// At is the state elapsed seconds into a sitting. The pattern repeats when
// the sitting outlasts it, so At never reports Done.
func At(p Pattern, elapsed int) State {
	cycle := p.CycleSeconds()
	if elapsed < 0 || cycle == 0 {
		elapsed = 0
	}
	if total := p.TotalSeconds(); total > 0 {
		elapsed %= total
	}
	s := State{Cycle: 1, TotalCycles: p.Cycles}
	if cycle > 0 {
		s.Cycle = elapsed/cycle + 1
		elapsed %= cycle
	}
	for _, seg := range p.segments() {
		if elapsed < seg.seconds {
			s.Phase, s.Remaining = seg.phase, seg.seconds-elapsed
			return s
		}
		elapsed -= seg.seconds
	}
	return Begin(p)
}

// Step is one phase of a walked-through pattern.
type Step struct {
	Phase   Phase
	Seconds int
	Cycle   int
}

// Script walks one full run of p with Tick and reports each phase as it
// starts.
func Script(p Pattern) []Step {
	var steps []Step
	s := Begin(p)
	for !s.Done {
		steps = append(steps, Step{Phase: s.Phase, Seconds: s.Remaining, Cycle: s.Cycle})
		phase, cycle := s.Phase, s.Cycle
		for !s.Done && s.Phase == phase && s.Cycle == cycle {
			s = s.Tick(p)
		}
	}
	return steps
}
