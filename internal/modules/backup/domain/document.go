package domain

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	achievementdto "stillpoint/internal/modules/achievement/dto"
	sessiondto "stillpoint/internal/modules/session/dto"
	streakdto "stillpoint/internal/modules/streak/dto"
	apperrors "stillpoint/internal/platform/errors"
)

const Version = 1

// Document is the portable snapshot of all persisted state. The three payload
// fields keep the exact JSON shapes used by the key-value store.
type Document struct {
	Version             int                                      `json:"version"`
	ExportedAt          string                                   `json:"exportedAt"`
	ID                  string                                   `json:"id"`
	Sessions            []sessiondto.Record                      `json:"sessions"`
	Streak              streakdto.Record                         `json:"streak"`
	AchievementProgress map[string]achievementdto.ProgressRecord `json:"achievement_progress"`
}

func Encode(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode backup: %w", err)
	}
	return nil
}

// Decode reads a backup. Documents without a version field are raw key dumps
// from before versioning and are read as version 1.
func Decode(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("%w: decode backup: %v", apperrors.ErrValidation, err)
	}
	if doc.Version == 0 {
		doc.Version = Version
	}
	if doc.Sessions == nil {
		doc.Sessions = []sessiondto.Record{}
	}
	if doc.AchievementProgress == nil {
		doc.AchievementProgress = map[string]achievementdto.ProgressRecord{}
	}
	return doc, doc.Validate()
}

// Validate checks every record so an import either applies fully or not at all.
func (d Document) Validate() error {
	if d.Version != Version {
		return fmt.Errorf("%w: unsupported backup version %d", apperrors.ErrValidation, d.Version)
	}
	for i, s := range d.Sessions {
		if s.Duration <= 0 {
			return fmt.Errorf("%w: session %d: duration must be positive", apperrors.ErrValidation, i)
		}
		if _, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(s.Timestamp)); err != nil {
			return fmt.Errorf("%w: session %d: timestamp %q", apperrors.ErrValidation, i, s.Timestamp)
		}
	}
	if d.Streak.CurrentStreak < 0 {
		return fmt.Errorf("%w: streak must be non-negative", apperrors.ErrValidation)
	}
	for id, p := range d.AchievementProgress {
		if p.UnlockedAt == "" {
			continue
		}
		if _, err := time.Parse(time.RFC3339Nano, p.UnlockedAt); err != nil {
			return fmt.Errorf("%w: achievement %s: unlockedAt %q", apperrors.ErrValidation, id, p.UnlockedAt)
		}
	}
	return nil
}

// UnlockedCount counts progress entries marked unlocked.
func (d Document) UnlockedCount() int {
	n := 0
	for _, p := range d.AchievementProgress {
		if p.Unlocked {
			n++
		}
	}
	return n
}

func (d Document) TotalSeconds() int {
	total := 0
	for _, s := range d.Sessions {
		total += s.Duration
	}
	return total
}
