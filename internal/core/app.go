package core

import (
	"context"
	"sync"
	"time"

	"hwbot/internal/config"
	"hwbot/internal/monitor"
	"hwbot/internal/notify"
	"hwbot/internal/practicum"
	"hwbot/internal/storage"
	"hwbot/internal/telegram"
	"hwbot/pkg/logx"
)

// App wires the bot together: secrets -> config -> logging -> telegram ->
// storage -> notifier -> API client -> monitor.
type App struct {
	cfgMgr   *config.Manager
	logSvc   *logx.Service
	log      logx.Logger
	store    storage.Store
	notifier *notify.Service
	monitor  *monitor.Monitor

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewApp(cfgPath string) (*App, error) {
	secrets, err := config.LoadSecrets()
	if err != nil {
		return nil, err
	}
	chatID, err := secrets.ChatID()
	if err != nil {
		return nil, err
	}

	cfgMgr := config.NewManager(cfgPath)
	cfg, err := cfgMgr.Load()
	if err != nil {
		return nil, err
	}

	logSvc, log := logx.New(logx.Config{
		Level:   cfg.Logging.Level,
		Console: cfg.Logging.Console,
		File:    logx.FileConfig{Enabled: cfg.Logging.File.Enabled, Path: cfg.Logging.File.Path},
	})

	sendTimeout, _ := config.ParseDurationOrDefault("telegram.send_timeout", cfg.Telegram.SendTimeout, 10*time.Second)
	adapter, err := telegram.New(telegram.Config{
		Token:       secrets.TelegramToken,
		ChatID:      chatID,
		SendTimeout: sendTimeout,
	}, log.With(logx.String("component", "telegram")))
	if err != nil {
		_ = logSvc.Close()
		return nil, err
	}

	busyTimeout, _ := config.ParseDurationField("storage.busy_timeout", cfg.Storage.BusyTimeout)
	store, err := storage.Open(storage.Config{
		Path:        cfg.Storage.Path,
		BusyTimeout: busyTimeout,
	}, log.With(logx.String("component", "storage")))
	if err != nil {
		_ = logSvc.Close()
		return nil, err
	}

	notifier := notify.New(
		notify.Config{RatePerSec: cfg.Notifier.RatePerSec},
		adapter, store,
		log.With(logx.String("component", "notify")),
	)

	apiTimeout, _ := config.ParseDurationOrDefault("practicum.timeout", cfg.Practicum.Timeout, 10*time.Second)
	client := practicum.New(practicum.Config{
		Endpoint: cfg.Practicum.Endpoint,
		Token:    secrets.PracticumToken,
		Timeout:  apiTimeout,
	}, log.With(logx.String("component", "practicum")))

	mon, err := monitor.New(client, notifier, monitor.Config{
		Schedule:      cfg.Poll.Schedule,
		SeedTimestamp: cfg.Poll.SeedTimestamp,
	}, log.With(logx.String("component", "monitor")))
	if err != nil {
		_ = store.Close()
		_ = logSvc.Close()
		return nil, err
	}

	return &App{
		cfgMgr:   cfgMgr,
		logSvc:   logSvc,
		log:      log,
		store:    store,
		notifier: notifier,
		monitor:  mon,
	}, nil
}

func (a *App) Start(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	// Surface where the bot left off, if history is enabled.
	if rec, ok, err := a.store.LastSend(runCtx); err == nil && ok {
		a.log.Info("last recorded notification",
			logx.Time("at", rec.At), logx.Bool("delivered", rec.Delivered))
	}

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		_ = a.cfgMgr.Watch(runCtx)
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.applyReloads(runCtx)
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		runWatchdog(runCtx, a.log)
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		_ = a.monitor.Run(runCtx)
	}()

	notifyReady(a.log)
	a.log.Info("hwbot started")
	return nil
}

// applyReloads pushes reloaded config into the live services.
func (a *App) applyReloads(ctx context.Context) {
	ch := a.cfgMgr.Subscribe(1)
	for {
		select {
		case <-ctx.Done():
			return
		case cfg := <-ch:
			if cfg == nil {
				continue
			}
			a.logSvc.Apply(logx.Config{
				Level:   cfg.Logging.Level,
				Console: cfg.Logging.Console,
				File:    logx.FileConfig{Enabled: cfg.Logging.File.Enabled, Path: cfg.Logging.File.Path},
			})
			a.notifier.Apply(notify.Config{RatePerSec: cfg.Notifier.RatePerSec})
			if err := a.monitor.Apply(monitor.Config{
				Schedule:      cfg.Poll.Schedule,
				SeedTimestamp: cfg.Poll.SeedTimestamp,
			}); err != nil {
				a.log.Warn("reloaded poll schedule rejected", logx.Err(err))
			}
			a.log.Info("configuration reloaded")
		}
	}
}

func (a *App) Stop(ctx context.Context) error {
	notifyStopping(a.log)
	if a.cancel != nil {
		a.cancel()
	}

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		a.log.Warn("shutdown grace elapsed; continuing")
	}

	if err := a.store.Close(); err != nil {
		a.log.Warn("closing send history store", logx.Err(err))
	}
	a.log.Info("hwbot stopped")
	return a.logSvc.Close()
}
