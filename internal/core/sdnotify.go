package core

import (
	"context"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"

	"hwbot/pkg/logx"
)

// systemd integration is best-effort: every call is a no-op when the process
// is not running under a systemd service with NotifyAccess.

func notifyReady(log logx.Logger) {
	sent, err := daemon.SdNotify(false, daemon.SdNotifyReady)
	if err != nil {
		log.Warn("sd_notify READY failed", logx.Err(err))
		return
	}
	if sent {
		log.Debug("sd_notify READY sent")
	}
}

func notifyStopping(log logx.Logger) {
	if sent, _ := daemon.SdNotify(false, daemon.SdNotifyStopping); sent {
		log.Debug("sd_notify STOPPING sent")
	}
}

// runWatchdog sends WATCHDOG=1 keepalives when WatchdogSec is configured.
// It runs outside the poll loop so a long poll sleep cannot starve it.
func runWatchdog(ctx context.Context, log logx.Logger) {
	interval, err := daemon.SdWatchdogEnabled(false)
	if err != nil {
		log.Warn("sd_watchdog detection failed", logx.Err(err))
		return
	}
	if interval <= 0 {
		return
	}

	tick := interval / 2
	if tick < time.Second {
		tick = time.Second
	}
	log.Debug("systemd watchdog enabled", logx.Duration("interval", interval))

	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = daemon.SdNotify(false, daemon.SdNotifyWatchdog)
		}
	}
}
