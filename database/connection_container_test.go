package database

import (
	"context"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/webfolio/api/metal/env"
)

// Spins up a throwaway postgres to exercise the real driver path. Skipped in
// short mode and when no container runtime is available.
func TestMakeConnectionAgainstPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("webfolio_db"),
		tcpostgres.WithUsername("webfolio"),
		tcpostgres.WithPassword("secret"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)

	if err != nil {
		t.Skipf("container runtime unavailable: %v", err)
	}

	defer func() {
		_ = container.Terminate(ctx)
	}()

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("container host err: %v", err)
	}

	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("container port err: %v", err)
	}

	environment := &env.Environment{
		DB: env.DBEnvironment{
			UserName:     "webfolio",
			UserPassword: "secret",
			DatabaseName: "webfolio_db",
			Port:         port.Int(),
			Host:         host,
			DriverName:   DriverName,
			SSLMode:      "disable",
			TimeZone:     "UTC",
		},
	}

	conn, err := MakeConnection(environment)
	if err != nil {
		t.Fatalf("make connection err: %v", err)
	}

	if err = conn.Sql().AutoMigrate(&User{}, &Tag{}, &Post{}, &Project{}, &PostTag{}, &ProjectTag{}, &Image{}); err != nil {
		t.Fatalf("migrate err: %v", err)
	}

	user := User{
		UUID:         "c3e1b2a4-5d6f-4a7b-8c9d-0e1f2a3b4c5d",
		Username:     "roundtrip",
		Email:        "roundtrip@example.com",
		PasswordHash: "hash",
		Role:         UserRole,
	}

	if err = conn.Sql().Create(&user).Error; err != nil {
		t.Fatalf("create user err: %v", err)
	}

	var found User
	if err = conn.Sql().Where("username = ?", "roundtrip").First(&found).Error; err != nil {
		t.Fatalf("find user err: %v", err)
	}

	if found.ID != user.ID {
		t.Fatalf("round trip mismatch: %d vs %d", found.ID, user.ID)
	}

	if !conn.Close() {
		t.Fatalf("expected a clean close")
	}
}
