package dto

import achievementdto "stillpoint/internal/modules/achievement/dto"

// Phase names as reported in TimerOutput.Phase.
const (
	PhaseIdle      = "idle"
	PhaseRunning   = "running"
	PhasePaused    = "paused"
	PhaseCompleted = "completed"
)

type TimerOutput struct {
	Phase            string
	TotalSeconds     int
	RemainingSeconds int
	Progress         float64
	Clock            string
	RunID            string
}

// Hooks are invoked from the goroutine driving the countdown while the
// engine is busy. They may read State but must not call operations that
// change it.
type Hooks struct {
	OnTick            func(TimerOutput)
	OnNewAchievements func([]achievementdto.AchievementOutput)
	OnSessionComplete func()
}

// RunResult describes a foreground countdown. Completed is false when the run
// was interrupted and reset.
type RunResult struct {
	Completed bool
	Duration  int
	Unlocked  []achievementdto.AchievementOutput
}
