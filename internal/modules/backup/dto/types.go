package dto

type ExportOutput struct {
	ID         string
	ExportedAt string
	Sessions   int
	Path       string
}

type ImportOutput struct {
	ID            string
	Sessions      int
	CurrentStreak int
	Unlocked      int
}
