package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"findcourse/internal/cli/api"
	"findcourse/internal/cli/commands"
	"findcourse/internal/config"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	// Load unified config (env + flags)
	cfg := config.NewConfig()

	if cfg.Version {
		printVersion()
		return
	}

	if cfg.Verbose {
		logger, err := zap.NewDevelopment()
		if err == nil {
			defer logger.Sync() //nolint:errcheck
			api.SetLogger(logger.Sugar())
			commands.SetLogger(logger.Sugar())
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// dispatcher
	exitCode := commands.Dispatch(ctx, cfg, flag.Args())
	if exitCode == 0 {
		return
	}
	os.Exit(exitCode)
}

func printVersion() {
	fmt.Printf("findcourse CLI\nVersion: %s\nBuild date: %s\n", version, buildDate)
}
