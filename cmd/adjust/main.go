package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"debt-ledger-go/internal/common"
	"debt-ledger-go/internal/config"
	"debt-ledger-go/internal/console"
	"debt-ledger-go/internal/ledger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	logger, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	rowFlag := flag.Int("row", 0, "Row number as shown by balances")
	userFlag := flag.String("user", "", "Name of the user (first match), used when -row is not given")
	deltaFlag := flag.String("delta", "1", "Amount to add; negative values decrease the debt but never below 0")
	flag.Parse()

	delta, err := decimal.NewFromString(*deltaFlag)
	if err != nil {
		logger.Fatal("Invalid delta", zap.String("delta", *deltaFlag), zap.Error(err))
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	services, err := common.InitializeServices(ctx, cfg, nil)
	if err != nil {
		logger.Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	session := console.NewSession(services.Ledger)
	index, err := session.ResolveTarget(*rowFlag, *userFlag)
	if err != nil {
		logger.Fatal("Failed to find user", zap.Error(err))
	}

	record, changed, err := services.Ledger.AdjustDebt(ctx, index, delta)
	if err != nil {
		logger.Fatal("Failed to adjust debt", zap.Int("index", index), zap.Error(err))
	}

	if !changed {
		fmt.Printf("✗ %s: debt is already %s €, nothing to decrease\n", record.Name, ledger.FormatAmount(record.Debt))
		return
	}

	fmt.Printf("✓ %s: %s €\n", record.Name, ledger.FormatAmount(record.Debt))
	console.Render(os.Stdout, session)
}
