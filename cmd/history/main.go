package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"debt-ledger-go/internal/common"
	"debt-ledger-go/internal/config"
	"debt-ledger-go/internal/ledger"
	"debt-ledger-go/internal/models"

	"go.uber.org/zap"
)

func printEntry(entry models.JournalEntry, isLast bool) {
	fmt.Printf("%s %-19s %-9s %-20s %12s € (%s)\n",
		common.BoxPrefix(isLast),
		entry.CreatedAt.Local().Format("2006-01-02 15:04:05"),
		entry.Action,
		entry.Name,
		ledger.FormatAmount(entry.Debt),
		entry.Delta.StringFixed(2))
}

func main() {
	ctx := context.Background()

	logger, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	limitFlag := flag.Int("limit", 20, "Number of entries to show (0 for all)")
	offsetFlag := flag.Int("offset", 0, "Number of newest entries to skip")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	services, err := common.InitializeServices(ctx, cfg, nil)
	if err != nil {
		logger.Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	entries, err := services.DbService.GetJournal(ctx, *limitFlag, *offsetFlag)
	if err != nil {
		logger.Fatal("Failed to read journal", zap.Error(err))
	}

	common.PrintHeader(os.Stdout, "LEDGER HISTORY", common.WideWidth)
	if len(entries) == 0 {
		fmt.Println("No changes recorded.")
	}
	for i, entry := range entries {
		printEntry(entry, i == len(entries)-1)
	}
	common.PrintFooter(os.Stdout, fmt.Sprintf("SUMMARY: %d entries shown", len(entries)), common.WideWidth)
}
