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

	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	logger, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	rowFlag := flag.Int("row", 0, "Row number as shown by balances")
	userFlag := flag.String("user", "", "Name of the user to edit (first match), used when -row is not given")
	nameFlag := flag.String("name", "", "New name (default: keep the current name)")
	debtFlag := flag.String("debt", "", "New debt (default: keep the current debt); unparsable values count as 0")
	flag.Parse()

	debtSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "debt" {
			debtSet = true
		}
	})

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

	current, err := services.Ledger.Record(index)
	if err != nil {
		logger.Fatal("Failed to read user", zap.Error(err))
	}

	name := *nameFlag
	if name == "" {
		name = current.Name
	}
	rawDebt := *debtFlag
	if !debtSet {
		rawDebt = current.Debt.String()
	}

	record, err := services.Ledger.EditRecord(ctx, index, name, rawDebt)
	if err != nil {
		logger.Fatal("Failed to edit user", zap.Int("index", index), zap.Error(err))
	}

	fmt.Printf("✓ %s: %s € -> %s: %s €\n",
		current.Name, ledger.FormatAmount(current.Debt),
		record.Name, ledger.FormatAmount(record.Debt))
	console.Render(os.Stdout, session)
}
