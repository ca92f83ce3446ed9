package out

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"

	timerout "stillpoint/internal/modules/timer/port/out"
	apperrors "stillpoint/internal/platform/errors"
)

// DefaultSoundCommand is the audio player used when none is configured.
func DefaultSoundCommand() string {
	switch runtime.GOOS {
	case "darwin":
		return "afplay"
	case "linux":
		return "paplay"
	default:
		return ""
	}
}

// ExecSoundPlayer runs an external player with the sound file as its last
// argument and waits for it to exit.
type ExecSoundPlayer struct {
	name string
	args []string
}

func NewExecSoundPlayer(command string) (ExecSoundPlayer, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ExecSoundPlayer{}, fmt.Errorf("%w: no sound command for %s", apperrors.ErrInvalidConfig, runtime.GOOS)
	}
	return ExecSoundPlayer{name: fields[0], args: fields[1:]}, nil
}

func (p ExecSoundPlayer) Play(ctx context.Context, ref string) error {
	if strings.TrimSpace(ref) == "" {
		return nil
	}
	if _, err := os.Stat(ref); err != nil {
		return fmt.Errorf("sound file: %w", err)
	}
	args := append(append([]string{}, p.args...), ref)
	cmd := exec.CommandContext(ctx, p.name, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", p.name, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// BellPlayer rings the terminal bell instead of playing a file.
type BellPlayer struct {
	mu sync.Mutex
	w  io.Writer
}

func NewBellPlayer(w io.Writer) *BellPlayer {
	return &BellPlayer{w: w}
}

func (p *BellPlayer) Play(context.Context, string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, err := io.WriteString(p.w, "\a")
	return err
}

type NoopPlayer struct{}

func (NoopPlayer) Play(context.Context, string) error { return nil }

// FallbackPlayer tries primary and uses fallback when it fails. The primary
// error is still returned so it gets logged.
type FallbackPlayer struct {
	primary  timerout.SoundPlayer
	fallback timerout.SoundPlayer
}

func NewFallbackPlayer(primary, fallback timerout.SoundPlayer) FallbackPlayer {
	return FallbackPlayer{primary: primary, fallback: fallback}
}

func (p FallbackPlayer) Play(ctx context.Context, ref string) error {
	err := p.primary.Play(ctx, ref)
	if err == nil {
		return nil
	}
	if fbErr := p.fallback.Play(ctx, ref); fbErr != nil {
		return errors.Join(err, fbErr)
	}
	return err
}
