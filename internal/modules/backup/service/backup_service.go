package service

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	achievementdto "stillpoint/internal/modules/achievement/dto"
	achievementin "stillpoint/internal/modules/achievement/port/in"
	"stillpoint/internal/modules/backup/domain"
	backupout "stillpoint/internal/modules/backup/port/out"
	sessiondto "stillpoint/internal/modules/session/dto"
	sessionin "stillpoint/internal/modules/session/port/in"
	streakdto "stillpoint/internal/modules/streak/dto"
	streakin "stillpoint/internal/modules/streak/port/in"
	"stillpoint/internal/platform/clock"
	"stillpoint/internal/platform/id"
	"stillpoint/internal/platform/tx"
)

const exportedAtLayout = "2006-01-02T15:04:05.000Z07:00"

type BackupService struct {
	sessions     sessionin.Usecase
	streaks      streakin.Usecase
	achievements achievementin.Usecase
	journal      backupout.JournalStore
	tx           tx.Manager
	clock        clock.Clock
	ids          id.Generator
	logger       *log.Logger
}

func NewBackupService(
	sessions sessionin.Usecase,
	streaks streakin.Usecase,
	achievements achievementin.Usecase,
	journal backupout.JournalStore,
	txManager tx.Manager,
	clock clock.Clock,
	ids id.Generator,
	logger *log.Logger,
) *BackupService {
	return &BackupService{
		sessions:     sessions,
		streaks:      streaks,
		achievements: achievements,
		journal:      journal,
		tx:           txManager,
		clock:        clock,
		ids:          ids,
		logger:       logger.WithPrefix("backup"),
	}
}

func (s *BackupService) Snapshot(ctx context.Context) (domain.Document, error) {
	progress, err := s.achievements.ExportProgress(ctx)
	if err != nil {
		return domain.Document{}, fmt.Errorf("export achievements: %w", err)
	}
	all := s.sessions.GetAll(ctx)
	records := make([]sessiondto.Record, 0, len(all))
	for _, sess := range all {
		records = append(records, sessiondto.Record{Duration: sess.Duration, Timestamp: sess.Timestamp})
	}
	streak := s.streaks.Get(ctx)
	return domain.Document{
		Version:             domain.Version,
		ExportedAt:          s.clock.Now().UTC().Format(exportedAtLayout),
		ID:                  s.ids.New(),
		Sessions:            records,
		Streak:              streakdto.Record{CurrentStreak: streak.CurrentStreak, LastSessionDate: streak.LastSessionDate},
		AchievementProgress: progress,
	}, nil
}

func (s *BackupService) WriteJournal(ctx context.Context, path string, doc domain.Document) error {
	existing, err := s.journal.Read(ctx, path)
	if err != nil {
		return err
	}
	content, err := domain.RenderJournal(existing, doc, s.clock.Now().Location())
	if err != nil {
		return fmt.Errorf("render journal: %w", err)
	}
	if err := s.journal.Write(ctx, path, content); err != nil {
		return err
	}
	s.logger.Info("journal exported", "path", path, "sessions", len(doc.Sessions))
	return nil
}

// Restore replaces all three stores inside one transaction.
func (s *BackupService) Restore(ctx context.Context, doc domain.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	progress := doc.AchievementProgress
	if progress == nil {
		progress = map[string]achievementdto.ProgressRecord{}
	}
	err := s.tx.Within(ctx, func(ctx context.Context) error {
		if err := s.sessions.Replace(ctx, doc.Sessions); err != nil {
			return fmt.Errorf("restore sessions: %w", err)
		}
		if err := s.streaks.Restore(ctx, doc.Streak); err != nil {
			return fmt.Errorf("restore streak: %w", err)
		}
		if err := s.achievements.RestoreProgress(ctx, progress); err != nil {
			return fmt.Errorf("restore achievements: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("import failed", "id", doc.ID, "err", err)
		return err
	}
	s.logger.Info("backup imported", "id", doc.ID, "sessions", len(doc.Sessions))
	return nil
}

func (s *BackupService) Wipe(ctx context.Context) error {
	err := s.tx.Within(ctx, func(ctx context.Context) error {
		if err := s.sessions.Clear(ctx); err != nil {
			return fmt.Errorf("clear sessions: %w", err)
		}
		if err := s.streaks.Reset(ctx); err != nil {
			return fmt.Errorf("clear streak: %w", err)
		}
		if err := s.achievements.Reset(ctx); err != nil {
			return fmt.Errorf("clear achievements: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("wipe failed", "err", err)
		return err
	}
	s.logger.Warn("all data wiped")
	return nil
}
