package dto

// Phase names as reported in CueOutput.Phase.
const (
	PhaseInhale = "inhale"
	PhaseHold   = "hold"
	PhaseExhale = "exhale"
	PhaseRest   = "rest"
)

type PatternOutput struct {
	ID           string
	Name         string
	Description  string
	Inhale       int
	Hold         int
	Exhale       int
	Rest         int
	Cycles       int
	TotalSeconds int
}

// CueOutput tells the user what to do right now.
type CueOutput struct {
	PatternID   string
	Phase       string
	Remaining   int
	Cycle       int
	TotalCycles int
}

type StepOutput struct {
	Phase   string
	Seconds int
	Cycle   int
}
