package out

import (
	"context"
	"encoding/json"
	"fmt"

	"stillpoint/internal/modules/streak/domain"
	streakout "stillpoint/internal/modules/streak/port/out"
	apperrors "stillpoint/internal/platform/errors"
	"stillpoint/internal/platform/kv"
)

const Key = "streak"

type KVStreakRepository struct {
	store kv.Store
}

func NewKVStreakRepository(store kv.Store) streakout.StreakRepository {
	return &KVStreakRepository{store: store}
}

func (r *KVStreakRepository) Load(ctx context.Context) (domain.StreakData, error) {
	raw, ok, err := r.store.Get(ctx, Key)
	if err != nil {
		return domain.StreakData{}, fmt.Errorf("read streak: %w", err)
	}
	if !ok || raw == "" {
		return domain.StreakData{}, nil
	}
	data := domain.StreakData{}
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return domain.StreakData{}, fmt.Errorf("%w: decode streak: %v", apperrors.ErrCorruptData, err)
	}
	return data, nil
}

func (r *KVStreakRepository) Store(ctx context.Context, data domain.StreakData) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode streak: %w", err)
	}
	if err := r.store.Set(ctx, Key, string(payload)); err != nil {
		return fmt.Errorf("write streak: %w", err)
	}
	return nil
}

func (r *KVStreakRepository) Clear(ctx context.Context) error {
	if err := r.store.Remove(ctx, Key); err != nil {
		return fmt.Errorf("clear streak: %w", err)
	}
	return nil
}
