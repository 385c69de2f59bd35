package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"debt-ledger-go/internal/common"
	"debt-ledger-go/internal/config"
	"debt-ledger-go/internal/console"

	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// the store notifies on the shell's own goroutine, so the hook can reach it directly
	var shell *console.Shell
	services, err := common.InitializeServices(ctx, cfg, func() {
		if shell != nil {
			shell.Changed()
		}
	})
	if err != nil {
		logger.Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	shell = console.NewShell(console.ShellConfig{
		Session:        console.NewSession(services.Ledger),
		In:             os.Stdin,
		Out:            os.Stdout,
		SearchDebounce: cfg.Console.SearchDebounce,
	})

	logger.Info("Console started", zap.Int("records", services.Ledger.Len()))
	if err := shell.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("Console stopped", zap.Error(err))
	}
	logger.Info("Console stopped")
}
