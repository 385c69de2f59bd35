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
	"os"

	"debt-ledger-go/internal/common"
	"debt-ledger-go/internal/config"
	"debt-ledger-go/internal/console"
	"debt-ledger-go/internal/models"

	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	logger, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	// Parse command line flags
	sortFlag := flag.String("sort", "", "Sort column: name (ascending) or debt (highest first)")
	reverseFlag := flag.Bool("reverse", false, "Reverse the sort direction")
	searchFlag := flag.String("search", "", "Only show users whose name contains this text (optional)")
	flag.Parse()

	logger.Info("Starting balance query")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Connecting to database", zap.String("path", cfg.Database.Path))
	services, err := common.InitializeServices(ctx, cfg, nil)
	if err != nil {
		logger.Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	// Sorting only reorders the in-memory view; nothing is persisted here.
	if *sortFlag != "" {
		column := models.SortColumn(*sortFlag)
		passes := 1
		if *reverseFlag {
			passes = 2
		}
		for i := 0; i < passes; i++ {
			if err := services.Ledger.SortBy(column); err != nil {
				logger.Fatal("Failed to sort", zap.Error(err))
			}
		}
	}

	session := console.NewSession(services.Ledger)
	session.SetFilter(*searchFlag)
	console.Render(os.Stdout, session)

	logger.Info("Balance query completed",
		zap.Int("records", services.Ledger.Len()),
		zap.Int("shown", len(session.Rows())),
		zap.String("total_debt", services.Ledger.TotalDebt().String()))
}
