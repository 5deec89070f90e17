//cmd/seeder/main.go
package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/unclebandit/patoche-etl/internal/config"
	"github.com/unclebandit/patoche-etl/internal/db"
	"github.com/unclebandit/patoche-etl/internal/repository"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	cfg := config.Load(logger)
	if err := seed(context.Background(), cfg, logger); err != nil {
		logger.Error("seeding failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	fmt.Println("Database seeding completed successfully!")
}

// seed prepares the schema and executes each fixture file in order.
func seed(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	conn, dialect, err := db.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := db.EnsureSchema(ctx, conn, dialect); err != nil {
		return err
	}

	for _, file := range cfg.SeedFiles {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}

		if _, err := conn.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("failed to execute %s: %w", file, err)
		}
		logger.Info("seeded", zap.String("file", file))
	}

	customers, err := (&repository.CustomerRepository{DB: conn}).Count(ctx)
	if err != nil {
		return fmt.Errorf("count customers: %w", err)
	}
	orders, err := (&repository.OrderRepository{DB: conn}).Count(ctx)
	if err != nil {
		return fmt.Errorf("count orders: %w", err)
	}
	logger.Info("store contents after seeding", zap.Int("customers", customers), zap.Int("orders", orders))
	return nil
}
