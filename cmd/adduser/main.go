/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"debt-ledger-go/internal/common"
	"debt-ledger-go/internal/config"
	"debt-ledger-go/internal/ledger"

	"go.uber.org/zap"
)

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name cannot be empty")
	}
	return nil
}

func main() {
	ctx := context.Background()

	logger, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	nameFlag := flag.String("name", "", "Name of the person (required)")
	debtFlag := flag.String("debt", "0", "Amount owed; unparsable values count as 0")
	flag.Parse()

	if err := validateName(*nameFlag); err != nil {
		logger.Fatal("Invalid name", zap.Error(err))
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

	record, err := services.Ledger.AddRecord(ctx, *nameFlag, *debtFlag)
	if err != nil {
		logger.Fatal("Failed to add user", zap.String("name", *nameFlag), zap.Error(err))
	}

	common.PrintHeader(os.Stdout, "USER ADDED", common.DefaultWidth)
	fmt.Printf("Name:  %s\n", record.Name)
	fmt.Printf("Debt:  %s €\n", ledger.FormatAmount(record.Debt))
	fmt.Printf("Row:   %d\n", services.Ledger.Len())
	common.PrintFooter(os.Stdout, fmt.Sprintf("Total debt: %s €", ledger.FormatAmount(services.Ledger.TotalDebt())), common.DefaultWidth)
}
