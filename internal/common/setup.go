package common

import (
	"context"
	"log"
	"strings"

	"debt-ledger-go/internal/database"
	"debt-ledger-go/internal/ledger"
	"debt-ledger-go/internal/models"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// init loads environment variables from .env file if it exists
func init() {
	// Environment variables can also be set via shell export, docker, etc.
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: No .env file found or unable to load it: %v\n", err)
	}
}

type Services struct {
	DbService *database.Service
	Ledger    *ledger.Store
}

func InitializeLogger() (*zap.Logger, func()) {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	zap.ReplaceGlobals(logger)

	cleanup := func() {
		if err := logger.Sync(); err != nil {
			if !isIgnorableSyncError(err) {
				log.Printf("Failed to sync logger: %v\n", err)
			}
		}
	}

	return logger, cleanup
}

// InitializeServices opens the database and hydrates the ledger from it.
// onChange may be nil; it is called after every ledger mutation.
func InitializeServices(ctx context.Context, cfg *models.Config, onChange func()) (*Services, error) {
	dbService, err := database.NewService(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	ledgerCfg := ledger.Config{
		Snapshots: dbService,
		OnChange:  onChange,
	}
	if cfg.Database.JournalEnabled {
		ledgerCfg.Journal = dbService
	} else {
		zap.L().Info("Skipping journal (JOURNAL_ENABLED=false)")
	}

	store, err := ledger.Open(ctx, ledgerCfg)
	if err != nil {
		dbService.Close()
		return nil, err
	}

	return &Services{
		DbService: dbService,
		Ledger:    store,
	}, nil
}

func (cs *Services) Close() {
	if cs.DbService != nil {
		cs.DbService.Close()
	}
}

func isIgnorableSyncError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "sync /dev/stderr: inappropriate ioctl for device") ||
		strings.Contains(msg, "sync /dev/stdout: inappropriate ioctl for device")
}
