package dto

type BucketOutput struct {
	Label   string
	Seconds int
	Minutes int
}

type SummaryOutput struct {
	SessionCount    int
	TotalDuration   int
	WeeklyDuration  int
	MonthlyDuration int
	AverageDuration int
	LongestSession  int
	CurrentStreak   int
	LongestStreak   int
	Daily           []BucketOutput
	Weekly          []BucketOutput
}
