package out

import (
	"context"
	"encoding/json"
	"fmt"

	"stillpoint/internal/modules/session/domain"
	sessionout "stillpoint/internal/modules/session/port/out"
	apperrors "stillpoint/internal/platform/errors"
	"stillpoint/internal/platform/kv"
)

const Key = "sessions"

type KVSessionRepository struct {
	store kv.Store
}

func NewKVSessionRepository(store kv.Store) sessionout.SessionRepository {
	return &KVSessionRepository{store: store}
}

func (r *KVSessionRepository) Load(ctx context.Context) ([]domain.Session, error) {
	raw, ok, err := r.store.Get(ctx, Key)
	if err != nil {
		return nil, fmt.Errorf("read sessions: %w", err)
	}
	if !ok || raw == "" {
		return nil, nil
	}
	var sessions []domain.Session
	if err := json.Unmarshal([]byte(raw), &sessions); err != nil {
		return nil, fmt.Errorf("%w: decode sessions: %v", apperrors.ErrCorruptData, err)
	}
	return sessions, nil
}

func (r *KVSessionRepository) Store(ctx context.Context, sessions []domain.Session) error {
	if sessions == nil {
		sessions = []domain.Session{}
	}
	payload, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("encode sessions: %w", err)
	}
	if err := r.store.Set(ctx, Key, string(payload)); err != nil {
		return fmt.Errorf("write sessions: %w", err)
	}
	return nil
}

func (r *KVSessionRepository) Clear(ctx context.Context) error {
	if err := r.store.Remove(ctx, Key); err != nil {
		return fmt.Errorf("clear sessions: %w", err)
	}
	return nil
}
