package dto

// CheckInput carries completed session durations that are known but could
// not be persisted, so they still count toward unlocks.
type CheckInput struct {
	PendingDurations []int
}

type AchievementOutput struct {
	ID          string
	Title       string
	Description string
	Icon        string
	Kind        string
	Unlocked    bool
	UnlockedAt  string
	Current     int
	Target      int
	Percent     int
}

type StatsOutput struct {
	Total      int
	Unlocked   int
	Percentage int
}

// ProgressRecord is the persisted JSON shape of one progress entry.
type ProgressRecord struct {
	Unlocked   bool   `json:"unlocked"`
	UnlockedAt string `json:"unlockedAt,omitempty"`
}
