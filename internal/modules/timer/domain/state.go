package domain

import (
	"fmt"

	apperrors "stillpoint/internal/platform/errors"
)

type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseRunning   Phase = "running"
	PhasePaused    Phase = "paused"
	PhaseCompleted Phase = "completed"
)

const MaxMinutes = 180

var DefaultPresets = []int{5, 10, 15, 20, 30}

// State is the countdown. Transitions return a new value and leave the
// receiver untouched.
type State struct {
	TotalSeconds     int
	RemainingSeconds int
	Phase            Phase
}

func ValidateMinutes(minutes int) error {
	if minutes < 1 || minutes > MaxMinutes {
		return fmt.Errorf("%w: minutes must be within 1..%d, got %d", apperrors.ErrValidation, MaxMinutes, minutes)
	}
	return nil
}

func NewState(minutes int) (State, error) {
	if err := ValidateMinutes(minutes); err != nil {
		return State{}, err
	}
	return State{TotalSeconds: minutes * 60, RemainingSeconds: minutes * 60, Phase: PhaseIdle}, nil
}

func invalid(op string, from Phase) error {
	return fmt.Errorf("%w: cannot %s while %s", apperrors.ErrInvalidTransition, op, from)
}

// SelectPreset is refused while running; pause or reset first.
func (s State) SelectPreset(minutes int) (State, error) {
	if s.Phase == PhaseRunning {
		return s, invalid("select a preset", s.Phase)
	}
	return NewState(minutes)
}

func (s State) Start() (State, error) {
	if s.Phase != PhaseIdle && s.Phase != PhasePaused {
		return s, invalid("start", s.Phase)
	}
	if s.RemainingSeconds <= 0 {
		s.RemainingSeconds = s.TotalSeconds
	}
	s.Phase = PhaseRunning
	return s, nil
}

func (s State) Pause() (State, error) {
	if s.Phase != PhaseRunning {
		return s, invalid("pause", s.Phase)
	}
	s.Phase = PhasePaused
	return s, nil
}

func (s State) Reset() State {
	s.RemainingSeconds = s.TotalSeconds
	s.Phase = PhaseIdle
	return s
}

// Tick consumes one second. done is true on the tick that reaches zero, at
// which point the phase is completed.
func (s State) Tick() (next State, done bool, err error) {
	if s.Phase != PhaseRunning {
		return s, false, invalid("tick", s.Phase)
	}
	s.RemainingSeconds--
	if s.RemainingSeconds <= 0 {
		s.RemainingSeconds = 0
		s.Phase = PhaseCompleted
		return s, true, nil
	}
	return s, false, nil
}

// Progress is the elapsed share of the countdown in percent.
func (s State) Progress() float64 {
	if s.TotalSeconds <= 0 {
		return 0
	}
	return float64(s.TotalSeconds-s.RemainingSeconds) / float64(s.TotalSeconds) * 100
}

func (s State) Clock() string {
	return FormatClock(s.RemainingSeconds)
}

// FormatClock renders seconds as mm:ss; minutes are not wrapped into hours.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
