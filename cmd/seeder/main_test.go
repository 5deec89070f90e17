package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/unclebandit/patoche-etl/internal/config"
	"github.com/unclebandit/patoche-etl/internal/db"
	"github.com/unclebandit/patoche-etl/internal/repository"
)

func TestSeed_AppliesFixturesOnce(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{
		DBDriver: db.DriverSQLite,
		DBPath:   filepath.Join(t.TempDir(), "seed.db"),
		SeedFiles: []string{
			filepath.Join("..", "..", "seed", "customers.sql"),
			filepath.Join("..", "..", "seed", "orders.sql"),
		},
	}

	require.NoError(t, seed(ctx, cfg, zap.NewNop()))

	core, logs := observer.New(zapcore.InfoLevel)
	require.NoError(t, seed(ctx, cfg, zap.New(core)))

	entries := logs.FilterMessage("store contents after seeding").All()
	require.Len(t, entries, 1)
	assert.EqualValues(t, 2, entries[0].ContextMap()["customers"])
	assert.EqualValues(t, 2, entries[0].ContextMap()["orders"])

	conn, _, err := db.Open(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	defer conn.Close()

	customers, err := (&repository.CustomerRepository{DB: conn}).Count(ctx)
	require.NoError(t, err)
	orders, err := (&repository.OrderRepository{DB: conn}).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, customers)
	assert.Equal(t, 2, orders)
}

func TestSeed_MissingFileFails(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		DBDriver:  db.DriverSQLite,
		DBPath:    filepath.Join(dir, "seed.db"),
		SeedFiles: []string{filepath.Join(dir, "nope.sql")},
	}

	err := seed(context.Background(), cfg, zap.NewNop())
	assert.ErrorContains(t, err, "failed to read")
}

func TestSeed_BadSQLFails(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.sql")
	require.NoError(t, os.WriteFile(bad, []byte("INSERT INTO nowhere VALUES (1);"), 0o644))
	cfg := &config.Config{
		DBDriver:  db.DriverSQLite,
		DBPath:    filepath.Join(dir, "seed.db"),
		SeedFiles: []string{bad},
	}

	err := seed(context.Background(), cfg, zap.NewNop())
	assert.ErrorContains(t, err, "failed to execute")
}
