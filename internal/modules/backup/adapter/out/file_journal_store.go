package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	backupout "stillpoint/internal/modules/backup/port/out"
)

type FileJournalStore struct{}

func NewFileJournalStore() backupout.JournalStore {
	return FileJournalStore{}
}

func (FileJournalStore) Read(_ context.Context, path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read journal: %w", err)
	}
	return string(raw), nil
}

func (FileJournalStore) Write(_ context.Context, path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create journal dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write journal: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("commit journal: %w", err)
	}
	return nil
}
