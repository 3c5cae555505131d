//go:build integration

// Package testsupport starts throwaway backing services for integration tests.
package testsupport

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"lindas-hydro/internal/infra/database/sqlc"
	"lindas-hydro/pkg/redis"
)

func start(t testing.TB, request testcontainers.ContainerRequest) testcontainers.Container {
	t.Helper()

	container, err := testcontainers.GenericContainer(context.Background(), testcontainers.GenericContainerRequest{
		ContainerRequest: request,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })
	return container
}

// Redis returns a client connected to a fresh Redis container.
func Redis(t testing.TB) *redis.Client {
	t.Helper()
	ctx := context.Background()
	container := start(t, testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379/tcp")
	require.NoError(t, err)

	config := redis.NewRedisConfig().WithHost(host).WithPort(port.Int()).WithKeyPrefix("lindas-hydro-test")

	client, err := redis.NewClient(config)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

// Postgres returns a connection to a fresh Postgres container.
func Postgres(t testing.TB) *sql.DB {
	t.Helper()
	ctx := context.Background()
	container := start(t, testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "hydro",
			"POSTGRES_PASSWORD": "hydro",
			"POSTGRES_DB":       "hydro",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(time.Minute),
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	db, err := sqlc.Open(ctx, sqlc.Settings{
		Host:     host,
		Port:     port.Port(),
		Username: "hydro",
		Password: "hydro",
		Database: "hydro",
		Schema:   "public",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}
