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

	"debt-ledger-go/internal/common"
	"debt-ledger-go/internal/config"
	"debt-ledger-go/internal/console"
	"debt-ledger-go/internal/store"

	"go.uber.org/zap"
)

type seedStats struct {
	added  int
	failed []string
}

func seedUsers(ctx context.Context, services *common.Services, users []common.SeedUser) seedStats {
	stats := seedStats{}
	for _, user := range users {
		if _, err := services.Ledger.AddRecord(ctx, user.Name, user.Debt); err != nil {
			zap.L().Error("Failed to add seed user", zap.String("name", user.Name), zap.Error(err))
			stats.failed = append(stats.failed, user.Name)
			continue
		}
		stats.added++
	}
	return stats
}

// importExport replaces the persisted users with a JSON array exported from
// another copy of the ledger. The data is validated before anything is written.
func importExport(ctx context.Context, services *common.Services, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("unable to read %s: %w", path, err)
	}

	snapshot, err := store.DecodeSnapshot(map[string]string{store.KeyUsers: string(data)})
	if err != nil {
		return fmt.Errorf("unable to import %s: %w", path, err)
	}

	if err := services.DbService.SetRaw(ctx, store.KeyUsers, string(data)); err != nil {
		return err
	}
	if err := services.Ledger.Load(ctx); err != nil {
		return err
	}

	zap.L().Info("Imported users", zap.String("file", path), zap.Int("count", len(snapshot.Users)))
	return nil
}

func main() {
	ctx := context.Background()

	logger, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	fileFlag := flag.String("file", "", "YAML seed file (default: SEED_FILE or seed.yaml)")
	importFlag := flag.String("import", "", "JSON users array to import, replacing the current list")
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

	if *importFlag != "" {
		if err := importExport(ctx, services, *importFlag); err != nil {
			logger.Fatal("Failed to import users", zap.Error(err))
		}
		console.Render(os.Stdout, console.NewSession(services.Ledger))
		return
	}

	seedFile := *fileFlag
	if seedFile == "" {
		seedFile = cfg.SeedFile
	}

	users, err := common.LoadSeedFile(seedFile)
	if err != nil {
		logger.Fatal("Failed to load seed file", zap.String("file", seedFile), zap.Error(err))
	}
	if len(users) == 0 {
		fmt.Printf("No users in %s\n", seedFile)
		return
	}

	stats := seedUsers(ctx, services, users)
	console.Render(os.Stdout, console.NewSession(services.Ledger))

	summary := fmt.Sprintf("SUMMARY: %d of %d users added", stats.added, len(users))
	common.PrintFooter(os.Stdout, summary, common.DefaultWidth)
	if len(stats.failed) > 0 {
		logger.Warn("Some seed users failed", zap.Strings("names", stats.failed))
	}
}
