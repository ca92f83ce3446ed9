package out

import (
	"context"
	"encoding/json"
	"fmt"

	"stillpoint/internal/modules/achievement/domain"
	achievementout "stillpoint/internal/modules/achievement/port/out"
	apperrors "stillpoint/internal/platform/errors"
	"stillpoint/internal/platform/kv"
)

const Key = "achievement_progress"

type KVProgressRepository struct {
	store kv.Store
}

func NewKVProgressRepository(store kv.Store) achievementout.ProgressRepository {
	return &KVProgressRepository{store: store}
}

func (r *KVProgressRepository) Load(ctx context.Context) (domain.ProgressMap, error) {
	raw, ok, err := r.store.Get(ctx, Key)
	if err != nil {
		return nil, fmt.Errorf("read achievement progress: %w", err)
	}
	progress := domain.ProgressMap{}
	if !ok || raw == "" {
		return progress, nil
	}
	if err := json.Unmarshal([]byte(raw), &progress); err != nil {
		return nil, fmt.Errorf("%w: decode achievement progress: %v", apperrors.ErrCorruptData, err)
	}
	if progress == nil {
		progress = domain.ProgressMap{}
	}
	return progress, nil
}

func (r *KVProgressRepository) Store(ctx context.Context, progress domain.ProgressMap) error {
	payload, err := json.Marshal(progress)
	if err != nil {
		return fmt.Errorf("encode achievement progress: %w", err)
	}
	if err := r.store.Set(ctx, Key, string(payload)); err != nil {
		return fmt.Errorf("write achievement progress: %w", err)
	}
	return nil
}

func (r *KVProgressRepository) Clear(ctx context.Context) error {
	if err := r.store.Remove(ctx, Key); err != nil {
		return fmt.Errorf("clear achievement progress: %w", err)
	}
	return nil
}
