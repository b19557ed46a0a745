//go:build integration

// Package integration_test connects repository tests to a migrated Postgres.
// POSTGRES_* variables select an existing server; without POSTGRES_HOST a
// disposable container is started.
package integration_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"grubdash/internal/pkg/config"
	"grubdash/internal/pkg/postgres"
	"grubdash/pkg/logger/zap_adapter"
	"grubdash/pkg/querier"
	"grubdash/pkg/tx"
)

const postgresImage = "postgres:16-alpine"

var (
	querierInstance *querier.Querier
	txManager       *tx.Manager
	setupErr        error
	setupOnce       sync.Once
)

func setup() {
	ctx := context.Background()
	log := zap_adapter.NewNop()

	cfg, err := databaseConfig(ctx)
	if err != nil {
		setupErr = err
		return
	}

	pool, err := postgres.NewConnPool(ctx, log, cfg)
	if err != nil {
		setupErr = fmt.Errorf("connect: %w", err)
		return
	}

	if err := postgres.Migrate(ctx, log, pool); err != nil {
		setupErr = fmt.Errorf("migrate: %w", err)
		return
	}

	querierInstance = querier.New(pool, pgxv5.DefaultCtxGetter)
	txManager = tx.New(pool)
}

func databaseConfig(ctx context.Context) (*config.Database, error) {
	if os.Getenv("POSTGRES_HOST") != "" {
		return &config.Database{
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     os.Getenv("POSTGRES_PORT"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DBName:   os.Getenv("POSTGRES_DB"),
			SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
		}, nil
	}

	container, err := tcpostgres.Run(ctx, postgresImage,
		tcpostgres.WithDatabase("grubdash_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("start postgres container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, fmt.Errorf("container host: %w", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		return nil, fmt.Errorf("container port: %w", err)
	}

	return &config.Database{
		Host:     host,
		Port:     port.Port(),
		User:     "test",
		Password: "test",
		DBName:   "grubdash_test",
		SSLMode:  "disable",
	}, nil
}

func GetQuerier(t *testing.T) *querier.Querier {
	t.Helper()
	setupOnce.Do(setup)
	require.NoError(t, setupErr)
	return querierInstance
}

func GetTxManager(t *testing.T) *tx.Manager {
	t.Helper()
	setupOnce.Do(setup)
	require.NoError(t, setupErr)
	return txManager
}

func SetupDB(t *testing.T, setupSql string) {
	t.Helper()

	q := GetQuerier(t)
	if setupSql == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := q.Exec(ctx, setupSql)
	require.NoError(t, err)
}

func TeardownDB(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := GetQuerier(t).Exec(ctx, `TRUNCATE TABLE orders RESTART IDENTITY`)
	require.NoError(t, err)
}
