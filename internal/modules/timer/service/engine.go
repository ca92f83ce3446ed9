package service

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	achievementdto "stillpoint/internal/modules/achievement/dto"
	achievementin "stillpoint/internal/modules/achievement/port/in"
	sessiondto "stillpoint/internal/modules/session/dto"
	sessionin "stillpoint/internal/modules/session/port/in"
	streakin "stillpoint/internal/modules/streak/port/in"
	"stillpoint/internal/modules/timer/domain"
	timerdto "stillpoint/internal/modules/timer/dto"
	timerout "stillpoint/internal/modules/timer/port/out"
	"stillpoint/internal/platform/clock"
	"stillpoint/internal/platform/id"
)

type Settings struct {
	DefaultMinutes int
	Presets        []int
	SoundRef       string
	// Interval between ticks; one second when zero.
	Interval time.Duration
	// SoundGrace bounds how long Close waits for a completion sound.
	SoundGrace time.Duration
}

const defaultSoundGrace = 3 * time.Second

type Dependencies struct {
	Clock        clock.Clock
	Ticker       timerout.Ticker
	Sound        timerout.SoundPlayer
	IDs          id.Generator
	Logger       *log.Logger
	Sessions     sessionin.Usecase
	Streaks      streakin.Usecase
	Achievements achievementin.Usecase
}

// Engine drives one countdown. opMu serializes every operation and tick so
// the completion sequence is atomic with respect to the tick source; mu only
// guards the fields read by State.
type Engine struct {
	settings Settings
	deps     Dependencies
	logger   *log.Logger

	opMu       sync.Mutex
	mu         sync.RWMutex
	state      domain.State
	runID      string
	generation uint64
	stop       func()
	runCtx     context.Context
	runLogger  *log.Logger

	hooksMu sync.RWMutex
	hooks   timerdto.Hooks

	// sounds tracks completion sounds still playing. soundCtx is cancelled
	// when Close gives up waiting on them.
	sounds      sync.WaitGroup
	soundCtx    context.Context
	soundCancel context.CancelFunc
}

func NewEngine(settings Settings, deps Dependencies) (*Engine, error) {
	if len(settings.Presets) == 0 {
		settings.Presets = slices.Clone(domain.DefaultPresets)
	}
	for _, p := range settings.Presets {
		if err := domain.ValidateMinutes(p); err != nil {
			return nil, fmt.Errorf("preset: %w", err)
		}
	}
	if settings.DefaultMinutes == 0 {
		settings.DefaultMinutes = settings.Presets[0]
	}
	state, err := domain.NewState(settings.DefaultMinutes)
	if err != nil {
		return nil, fmt.Errorf("default length: %w", err)
	}
	if settings.Interval <= 0 {
		settings.Interval = time.Second
	}
	if settings.SoundGrace <= 0 {
		settings.SoundGrace = defaultSoundGrace
	}
	logger := deps.Logger.WithPrefix("timer")
	soundCtx, soundCancel := context.WithCancel(context.Background())
	return &Engine{
		settings:    settings,
		deps:        deps,
		logger:      logger,
		state:       state,
		runCtx:      context.Background(),
		runLogger:   logger,
		soundCtx:    soundCtx,
		soundCancel: soundCancel,
	}, nil
}

func (e *Engine) Presets() []int {
	return slices.Clone(e.settings.Presets)
}

func (e *Engine) Snapshot() (domain.State, string) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state, e.runID
}

func (e *Engine) SetHooks(h timerdto.Hooks) {
	e.hooksMu.Lock()
	e.hooks = h
	e.hooksMu.Unlock()
}

func (e *Engine) currentHooks() timerdto.Hooks {
	e.hooksMu.RLock()
	defer e.hooksMu.RUnlock()
	return e.hooks
}

func (e *Engine) SelectPreset(minutes int) (domain.State, error) {
	e.opMu.Lock()
	defer e.opMu.Unlock()
	next, err := e.current().SelectPreset(minutes)
	if err != nil {
		return e.current(), err
	}
	e.haltTicker()
	e.set(next, "")
	e.logger.Debug("preset selected", "minutes", minutes)
	return next, nil
}

func (e *Engine) Start(ctx context.Context) (domain.State, error) {
	e.opMu.Lock()
	defer e.opMu.Unlock()
	prev := e.current()
	next, err := prev.Start()
	if err != nil {
		return prev, err
	}
	runID := e.currentRunID()
	if prev.Phase == domain.PhaseIdle {
		runID = e.deps.IDs.New()
		e.runCtx = context.WithoutCancel(ctx)
		e.runLogger = e.logger.With("run", runID)
		e.runLogger.Info("countdown started", "seconds", next.TotalSeconds)
	} else {
		e.runLogger.Debug("countdown resumed", "remaining", next.RemainingSeconds)
	}
	e.set(next, runID)
	e.armTicker()
	return next, nil
}

func (e *Engine) Pause() (domain.State, error) {
	e.opMu.Lock()
	defer e.opMu.Unlock()
	next, err := e.current().Pause()
	if err != nil {
		return e.current(), err
	}
	e.haltTicker()
	e.set(next, e.currentRunID())
	e.runLogger.Debug("countdown paused", "remaining", next.RemainingSeconds)
	return next, nil
}

// Reset abandons the countdown without recording a session.
func (e *Engine) Reset() domain.State {
	e.opMu.Lock()
	defer e.opMu.Unlock()
	e.haltTicker()
	next := e.current().Reset()
	e.set(next, "")
	return next
}

// Close stops the tick source and waits up to SoundGrace for completion
// sounds still playing, cancelling whatever outlasts it. The engine stays
// usable.
func (e *Engine) Close() {
	e.opMu.Lock()
	e.haltTicker()
	e.opMu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), e.settings.SoundGrace)
	defer cancel()
	if err := e.waitSounds(ctx); err != nil {
		e.logger.Warn("completion sound cut short", "err", err)
		e.opMu.Lock()
		e.soundCancel()
		e.soundCtx, e.soundCancel = context.WithCancel(context.Background())
		e.opMu.Unlock()
	}
}

func (e *Engine) waitSounds(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		e.sounds.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// playSound runs with opMu held and returns once the sound is requested.
func (e *Engine) playSound(ctx context.Context, logger *log.Logger) {
	playCtx, cancel := context.WithCancel(ctx)
	detach := context.AfterFunc(e.soundCtx, cancel)
	e.sounds.Add(1)
	go func(sound timerout.SoundPlayer, ref string) {
		defer e.sounds.Done()
		defer detach()
		defer cancel()
		if err := sound.Play(playCtx, ref); err != nil {
			logger.Warn("completion sound failed", "ref", ref, "err", err)
		}
	}(e.deps.Sound, e.settings.SoundRef)
}

func (e *Engine) current() domain.State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

func (e *Engine) currentRunID() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.runID
}

func (e *Engine) set(s domain.State, runID string) {
	e.mu.Lock()
	e.state = s
	e.runID = runID
	e.mu.Unlock()
	if h := e.currentHooks(); h.OnTick != nil {
		h.OnTick(Output(s, runID))
	}
}

// armTicker and haltTicker run with opMu held.
func (e *Engine) armTicker() {
	e.haltTicker()
	gen := e.generation
	e.stop = e.deps.Ticker.Start(e.settings.Interval, func() { e.tick(gen) })
}

func (e *Engine) haltTicker() {
	e.generation++
	if e.stop != nil {
		e.stop()
		e.stop = nil
	}
}

func (e *Engine) tick(gen uint64) {
	e.opMu.Lock()
	defer e.opMu.Unlock()
	if gen != e.generation {
		return
	}
	next, done, err := e.current().Tick()
	if err != nil {
		e.runLogger.Debug("tick ignored", "err", err)
		return
	}
	e.set(next, e.currentRunID())
	if done {
		e.complete(next)
	}
}

// complete runs with opMu held, so no tick or operation interleaves with it.
func (e *Engine) complete(finished domain.State) {
	e.haltTicker()
	ctx, logger := e.runCtx, e.runLogger
	hooks := e.currentHooks()

	defer func() {
		e.set(finished.Reset(), "")
		logger.Info("countdown complete", "seconds", finished.TotalSeconds)
	}()

	e.playSound(ctx, logger)

	var pending []int
	err := e.deps.Sessions.Save(ctx, sessiondto.SaveInput{
		Duration:    finished.TotalSeconds,
		CompletedAt: e.deps.Clock.Now(),
	})
	if err != nil {
		logger.Error("session not recorded", "seconds", finished.TotalSeconds, "err", err)
		pending = append(pending, finished.TotalSeconds)
	}

	if _, err := e.deps.Streaks.Update(ctx); err != nil {
		logger.Error("streak not recorded", "err", err)
	}

	unlocked, err := e.deps.Achievements.CheckAndUnlock(ctx, achievementdto.CheckInput{PendingDurations: pending})
	if err != nil {
		logger.Error("achievement progress not recorded", "err", err)
	}
	if len(unlocked) > 0 {
		logger.Info("achievements unlocked", "count", len(unlocked))
		if hooks.OnNewAchievements != nil {
			hooks.OnNewAchievements(unlocked)
		}
	}

	if hooks.OnSessionComplete != nil {
		hooks.OnSessionComplete()
	}
}

func Output(s domain.State, runID string) timerdto.TimerOutput {
	return timerdto.TimerOutput{
		Phase:            string(s.Phase),
		TotalSeconds:     s.TotalSeconds,
		RemainingSeconds: s.RemainingSeconds,
		Progress:         s.Progress(),
		Clock:            s.Clock(),
		RunID:            runID,
	}
}
