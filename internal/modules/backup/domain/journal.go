package domain

import (
	"fmt"
	"time"

	"stillpoint/internal/platform/markdown"
)

var journalBlock = markdown.Block{Name: "stillpoint:sessions"}

// RenderJournal merges doc into an existing journal. Frontmatter keys and
// text outside the generated block are preserved.
func RenderJournal(existing string, doc Document, loc *time.Location) (string, error) {
	note, err := markdown.ParseNote(existing)
	if err != nil {
		return "", err
	}
	if note.Body == "" {
		note.Body = "# Meditation journal\n"
	}
	note.Set(map[string]any{
		"export_id":      doc.ID,
		"exported_at":    doc.ExportedAt,
		"sessions":       len(doc.Sessions),
		"total_minutes":  doc.TotalSeconds() / 60,
		"current_streak": doc.Streak.CurrentStreak,
		"achievements":   doc.UnlockedCount(),
	})

	rows := make([][]string, 0, len(doc.Sessions))
	for _, s := range doc.Sessions {
		at, err := time.Parse(time.RFC3339Nano, s.Timestamp)
		if err != nil {
			continue
		}
		at = at.In(loc)
		rows = append(rows, []string{at.Format("2006-01-02"), at.Format("15:04"), fmt.Sprintf("%d min", s.Duration/60)})
	}
	table := markdown.Table([]string{"Date", "Time", "Length"}, rows)
	note.Upsert(journalBlock, table)
	return note.Render()
}
