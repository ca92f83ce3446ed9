package dto

// Record is the persisted JSON shape of the streak singleton.
type Record struct {
	CurrentStreak   int    `json:"currentStreak"`
	LastSessionDate string `json:"lastSessionDate"`
}

type StreakOutput struct {
	CurrentStreak   int
	LastSessionDate string
}

type StatusOutput struct {
	CurrentStreak   int
	LastSessionDate string
	ActiveToday     bool
	AtRisk          bool
	Lapsed          bool
}
