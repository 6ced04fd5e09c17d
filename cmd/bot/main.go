package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"hwbot/internal/config"
	"hwbot/internal/core"
	"hwbot/pkg/logx"
)

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "./config.yaml", "path to config yaml/json")
	flag.Parse()

	boot := logx.NewConsole("info")

	// .env is a development convenience; absence is not an error.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		boot.Warn("loading .env failed", logx.Err(err))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	app, err := core.NewApp(cfgPath)
	if err != nil {
		var missing *config.MissingVarsError
		if errors.As(err, &missing) {
			boot.Fatal("startup aborted: required configuration is missing",
				logx.Any("missing", missing.Names))
		} else {
			boot.Fatal("startup failed", logx.Err(err))
		}
		os.Exit(1)
	}

	if err := app.Start(ctx); err != nil {
		boot.Fatal("start failed", logx.Err(err))
		os.Exit(1)
	}

	<-ctx.Done()
	_ = app.Stop(context.Background())
}
