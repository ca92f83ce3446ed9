package bootstrap

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	achievementinadapter "stillpoint/internal/modules/achievement/adapter/in"
	achievementoutadapter "stillpoint/internal/modules/achievement/adapter/out"
	achievementdomain "stillpoint/internal/modules/achievement/domain"
	achievementservice "stillpoint/internal/modules/achievement/service"
	achievementusecase "stillpoint/internal/modules/achievement/usecase"
	analyticsinadapter "stillpoint/internal/modules/analytics/adapter/in"
	analyticsservice "stillpoint/internal/modules/analytics/service"
	analyticsusecase "stillpoint/internal/modules/analytics/usecase"
	backupinadapter "stillpoint/internal/modules/backup/adapter/in"
	backupoutadapter "stillpoint/internal/modules/backup/adapter/out"
	backupservice "stillpoint/internal/modules/backup/service"
	backupusecase "stillpoint/internal/modules/backup/usecase"
	breathinginadapter "stillpoint/internal/modules/breathing/adapter/in"
	breathingdomain "stillpoint/internal/modules/breathing/domain"
	breathingservice "stillpoint/internal/modules/breathing/service"
	breathingusecase "stillpoint/internal/modules/breathing/usecase"
	sessioninadapter "stillpoint/internal/modules/session/adapter/in"
	sessionoutadapter "stillpoint/internal/modules/session/adapter/out"
	sessionservice "stillpoint/internal/modules/session/service"
	sessionusecase "stillpoint/internal/modules/session/usecase"
	streakinadapter "stillpoint/internal/modules/streak/adapter/in"
	streakoutadapter "stillpoint/internal/modules/streak/adapter/out"
	streakservice "stillpoint/internal/modules/streak/service"
	streakusecase "stillpoint/internal/modules/streak/usecase"
	timerinadapter "stillpoint/internal/modules/timer/adapter/in"
	timeroutadapter "stillpoint/internal/modules/timer/adapter/out"
	timerout "stillpoint/internal/modules/timer/port/out"
	timerservice "stillpoint/internal/modules/timer/service"
	timerusecase "stillpoint/internal/modules/timer/usecase"
	"stillpoint/internal/platform/clock"
	"stillpoint/internal/platform/config"
	apperrors "stillpoint/internal/platform/errors"
	"stillpoint/internal/platform/id"
	"stillpoint/internal/platform/kv"
	"stillpoint/internal/platform/logging"
	"stillpoint/internal/platform/tx"
	uiapp "stillpoint/internal/ui/app"
)

// App is the explicit context object built once per process. Close releases
// the store and stops any running countdown.
type App struct {
	Config         config.Config
	Logger         *log.Logger
	SessionCLI     sessioninadapter.CLIHandler
	StreakCLI      streakinadapter.CLIHandler
	AchievementCLI achievementinadapter.CLIHandler
	AnalyticsCLI   analyticsinadapter.CLIHandler
	TimerCLI       timerinadapter.CLIHandler
	TimerTUI       timerinadapter.TUIHandler
	BackupCLI      backupinadapter.CLIHandler
	BreathingCLI   breathinginadapter.CLIHandler
	BreathingTUI   breathinginadapter.TUIHandler

	closers []func() error
}

// Options carries process-level collaborators. Zero values select the
// defaults used by the CLI.
type Options struct {
	LogWriter  io.Writer
	BellWriter io.Writer
	Clock      clock.Clock
	Ticker     timerout.Ticker
}

func New(cfg config.Config, opts Options) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if opts.LogWriter == nil {
		opts.LogWriter = os.Stderr
	}
	if opts.BellWriter == nil {
		opts.BellWriter = os.Stdout
	}
	if opts.Clock == nil {
		opts.Clock = clock.SystemClock{}
	}
	if opts.Ticker == nil {
		opts.Ticker = timeroutadapter.NewIntervalTicker()
	}
	logger := logging.New(opts.LogWriter, cfg.LogLevel)
	ids := id.UUID{}

	breathingCatalog, err := breathingdomain.NewCatalog(breathingdomain.DefaultPatterns())
	if err != nil {
		return nil, fmt.Errorf("breathing catalog: %w", err)
	}
	if cfg.Breathing != "" {
		if _, err := breathingCatalog.Get(cfg.Breathing); err != nil {
			return nil, fmt.Errorf("%w: breathing: %v", apperrors.ErrInvalidConfig, err)
		}
	}

	app := &App{Config: cfg, Logger: logger}
	store, txManager, err := openStore(cfg, app)
	if err != nil {
		return nil, err
	}
	store = kv.NewNamespaced(cfg.Namespace(), store)
	logger.Debug("store ready", "backend", cfg.Backend, "namespace", cfg.Namespace())

	sessionUC := sessionusecase.NewInteractor(sessionservice.NewSessionService(
		sessionoutadapter.NewKVSessionRepository(store),
		logger,
		cfg.MaxSessions,
	))
	streakUC := streakusecase.NewInteractor(streakservice.NewStreakService(
		opts.Clock,
		streakoutadapter.NewKVStreakRepository(store),
		logger,
	))
	achievementUC := achievementusecase.NewInteractor(achievementservice.NewAchievementService(
		achievementdomain.DefaultCatalog(),
		achievementoutadapter.NewKVProgressRepository(store),
		sessionUC,
		streakUC,
		opts.Clock,
		logger,
	))
	analyticsUC := analyticsusecase.NewInteractor(analyticsservice.NewAnalyticsService(sessionUC, streakUC, opts.Clock))
	backupUC := backupusecase.NewInteractor(backupservice.NewBackupService(
		sessionUC,
		streakUC,
		achievementUC,
		backupoutadapter.NewFileJournalStore(),
		txManager,
		opts.Clock,
		ids,
		logger,
	))

	engine, err := timerservice.NewEngine(timerservice.Settings{
		DefaultMinutes: cfg.DefaultMinutes,
		Presets:        cfg.Presets,
		SoundRef:       resolveSound(cfg),
	}, timerservice.Dependencies{
		Clock:        opts.Clock,
		Ticker:       opts.Ticker,
		Sound:        soundPlayer(cfg, opts.BellWriter, logger),
		IDs:          ids,
		Logger:       logger,
		Sessions:     sessionUC,
		Streaks:      streakUC,
		Achievements: achievementUC,
	})
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("new timer: %w", err)
	}
	timerUC := timerusecase.NewInteractor(engine)
	app.closers = append(app.closers, func() error {
		timerUC.Close()
		return nil
	})

	app.SessionCLI = sessioninadapter.NewCLIHandler(sessionUC)
	app.StreakCLI = streakinadapter.NewCLIHandler(streakUC)
	app.AchievementCLI = achievementinadapter.NewCLIHandler(achievementUC)
	app.AnalyticsCLI = analyticsinadapter.NewCLIHandler(analyticsUC)
	app.TimerCLI = timerinadapter.NewCLIHandler(timerUC)
	app.TimerTUI = timerinadapter.NewTUIHandler(timerUC)
	app.BackupCLI = backupinadapter.NewCLIHandler(backupUC)
	breathingUC := breathingusecase.NewInteractor(breathingservice.NewBreathingService(breathingCatalog, logger))
	app.BreathingCLI = breathinginadapter.NewCLIHandler(breathingUC)
	app.BreathingTUI = breathinginadapter.NewTUIHandler(breathingUC)
	return app, nil
}

func openStore(cfg config.Config, app *App) (kv.Store, tx.Manager, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		store, err := kv.OpenSQLite(cfg.ResolvedDBPath())
		if err != nil {
			return nil, nil, fmt.Errorf("open store: %w", err)
		}
		app.closers = append(app.closers, store.Close)
		return store, store.TxManager(), nil
	case config.BackendFile:
		return kv.NewFileStore(cfg.StoreDir()), tx.NoopManager{}, nil
	default:
		return kv.NewMemory(), tx.NoopManager{}, nil
	}
}

// resolveSound makes a relative sound file relative to the data dir.
func resolveSound(cfg config.Config) string {
	ref := strings.TrimSpace(cfg.SoundFile)
	if ref == "" || filepath.IsAbs(ref) {
		return ref
	}
	return filepath.Join(cfg.DataDir, ref)
}

func soundPlayer(cfg config.Config, bell io.Writer, logger *log.Logger) timerout.SoundPlayer {
	switch strings.ToLower(strings.TrimSpace(cfg.SoundCommand)) {
	case "none", "off":
		return timeroutadapter.NoopPlayer{}
	case "bell":
		return timeroutadapter.NewBellPlayer(bell)
	}
	command := cfg.SoundCommand
	if strings.TrimSpace(command) == "" {
		command = timeroutadapter.DefaultSoundCommand()
	}
	player, err := timeroutadapter.NewExecSoundPlayer(command)
	if err != nil {
		logger.Debug("no audio player, using terminal bell", "err", err)
		return timeroutadapter.NewBellPlayer(bell)
	}
	return timeroutadapter.NewFallbackPlayer(player, timeroutadapter.NewBellPlayer(bell))
}

func (a *App) Close() error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.TimerTUI, app.BreathingTUI, app.Config.Breathing, app.AnalyticsCLI, app.AchievementCLI, app.SessionCLI)
	defer model.Close()
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
