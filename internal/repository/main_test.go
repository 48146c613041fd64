package repository_test

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/shopnavy/pos/internal/config"
	"github.com/shopnavy/pos/internal/storage/db"
)

var (
	testClient *db.Client
	setupErr   error
)

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	cleanup, err := startPostgres(context.Background())
	setupErr = err

	code := m.Run()
	cleanup()
	os.Exit(code)
}

func startPostgres(ctx context.Context) (func(), error) {
	noop := func() {}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:14-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "pos",
				"POSTGRES_PASSWORD": "pos",
				"POSTGRES_DB":       "pos",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return noop, fmt.Errorf("start postgres container: %w", err)
	}

	terminate := func() {
		if err := container.Terminate(context.Background()); err != nil {
			fmt.Printf("terminate postgres container: %v\n", err)
		}
	}

	host, err := container.Host(ctx)
	if err != nil {
		terminate()
		return noop, fmt.Errorf("container host: %w", err)
	}

	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		terminate()
		return noop, fmt.Errorf("container port: %w", err)
	}

	portNum, err := strconv.Atoi(port.Port())
	if err != nil {
		terminate()
		return noop, fmt.Errorf("parse container port: %w", err)
	}

	pool, err := db.NewPgxPool(ctx, config.Postgres{
		Host:            host,
		Port:            portNum,
		User:            "pos",
		Password:        "pos",
		DB:              "pos",
		SSLMode:         "disable",
		MaxConns:        4,
		MinConns:        1,
		MaxConnLifetime: time.Minute,
		MaxConnIdleTime: time.Minute,
	})
	if err != nil {
		terminate()
		return noop, err
	}

	if err := db.Migrate(ctx, pool); err != nil {
		pool.Close()
		terminate()
		return noop, err
	}

	testClient = db.NewClient(pool)

	return func() {
		pool.Close()
		terminate()
	}, nil
}

// pgClient returns a client on an empty schema, skipping the test when PostgreSQL
// is not available.
func pgClient(t *testing.T) *db.Client {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}
	if setupErr != nil {
		t.Skipf("postgres unavailable: %v", setupErr)
	}

	_, err := testClient.Exec(context.Background(),
		`TRUNCATE products, sales, sale_items, outbox_messages RESTART IDENTITY CASCADE`)
	if err != nil {
		t.Fatalf("truncate tables: %v", err)
	}

	return testClient
}
