package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"debt-ledger-go/internal/common"
	"debt-ledger-go/internal/config"
	"debt-ledger-go/internal/console"

	"go.uber.org/zap"
)

func confirm(question string) bool {
	fmt.Printf("%s [y/N] ", question)
	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func main() {
	ctx := context.Background()

	logger, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	rowFlag := flag.Int("row", 0, "Row number as shown by balances")
	userFlag := flag.String("user", "", "Name of the user (first match), used when -row is not given")
	yesFlag := flag.Bool("yes", false, "Skip the confirmation question")
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

	session := console.NewSession(services.Ledger)
	index, err := session.ResolveTarget(*rowFlag, *userFlag)
	if err != nil {
		logger.Fatal("Failed to find user", zap.Error(err))
	}

	question, err := session.RequestDelete(index)
	if err != nil {
		logger.Fatal("Failed to prepare delete", zap.Error(err))
	}

	if !*yesFlag && !confirm(question) {
		session.CancelDelete()
		fmt.Println("Delete cancelled.")
		return
	}

	removed, err := session.ConfirmDelete(ctx)
	if err != nil {
		logger.Fatal("Failed to delete user", zap.Int("index", index), zap.Error(err))
	}

	fmt.Printf("✓ Deleted %s\n", removed.Name)
	console.Render(os.Stdout, session)
}
