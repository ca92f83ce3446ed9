package out

import (
	"context"
	"time"
)

// Ticker calls fn every interval until stop is called. fn may still run once
// after stop returns.
type Ticker interface {
	Start(interval time.Duration, fn func()) (stop func())
}

// SoundPlayer plays the completion sound referenced by ref.
type SoundPlayer interface {
	Play(ctx context.Context, ref string) error
}
