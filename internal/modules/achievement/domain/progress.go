package domain

import "time"

// Progress is the persisted per-id unlock record.
type Progress struct {
	Unlocked   bool   `json:"unlocked"`
	UnlockedAt string `json:"unlockedAt,omitempty"`
}

type ProgressMap map[string]Progress

func (p ProgressMap) IsUnlocked(id string) bool {
	return p[id].Unlocked
}

// Unlock evaluates every locked definition against s. It returns the
// definitions that became unlocked and the next progress map. Existing
// entries are never modified, so unlocking is one-way and idempotent.
func Unlock(c Catalog, progress ProgressMap, s Snapshot, now time.Time) ([]Definition, ProgressMap) {
	next := make(ProgressMap, len(progress)+c.Len())
	for id, p := range progress {
		next[id] = p
	}
	var newly []Definition
	for _, d := range c.defs {
		if next.IsUnlocked(d.ID) || !d.Condition.Met(s) {
			continue
		}
		next[d.ID] = Progress{Unlocked: true, UnlockedAt: now.UTC().Format("2006-01-02T15:04:05.000Z07:00")}
		newly = append(newly, d)
	}
	return newly, next
}

// CountUnlocked counts only ids present in the catalog.
func CountUnlocked(c Catalog, progress ProgressMap) int {
	n := 0
	for _, d := range c.defs {
		if progress.IsUnlocked(d.ID) {
			n++
		}
	}
	return n
}
