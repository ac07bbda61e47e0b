package backup

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/webfolio/api/metal/env"
)

type fakeRunner struct {
	calls []fakeCall
	err   error
}

type fakeCall struct {
	name string
	args []string
	env  map[string]string
}

func (f *fakeRunner) Run(_ context.Context, name string, args []string, envVars map[string]string) error {
	f.calls = append(f.calls, fakeCall{name: name, args: args, env: envVars})

	return f.err
}

func makeBackupEnv(t *testing.T) *env.Environment {
	t.Helper()

	return &env.Environment{
		DB: env.DBEnvironment{
			UserName:     "webfolio",
			UserPassword: "secret",
			DatabaseName: "webfolio_db",
			Port:         5432,
			Host:         "localhost",
			DriverName:   "postgres",
			SSLMode:      "disable",
			TimeZone:     "UTC",
		},
		Backup: env.BackupEnvironment{
			Cron:    "0 3 * * *",
			Dir:     t.TempDir(),
			MaxKeep: 2,
		},
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewSchedulerRejectsBadCron(t *testing.T) {
	environment := makeBackupEnv(t)
	environment.Backup.Cron = "not a cron"

	if _, err := NewScheduler(environment); err == nil {
		t.Fatalf("expected an error for a bad cron expression")
	}

	if _, err := NewScheduler(nil); err == nil {
		t.Fatalf("expected an error for a nil environment")
	}
}

func TestRunInvokesPgDump(t *testing.T) {
	environment := makeBackupEnv(t)
	runner := &fakeRunner{}

	when := time.Date(2026, 3, 15, 4, 30, 0, 0, time.UTC)

	scheduler, err := NewScheduler(
		environment,
		WithCommandRunner(runner),
		WithLogger(quietLogger()),
		WithNow(func() time.Time { return when }),
	)

	if err != nil {
		t.Fatalf("new scheduler err: %v", err)
	}

	if err = scheduler.Run(context.Background()); err != nil {
		t.Fatalf("run err: %v", err)
	}

	if len(runner.calls) != 1 {
		t.Fatalf("expected 1 command got %d", len(runner.calls))
	}

	call := runner.calls[0]

	if call.name != "pg_dump" {
		t.Fatalf("expected pg_dump got %s", call.name)
	}

	joined := strings.Join(call.args, " ")

	if !strings.Contains(joined, "--host localhost") || !strings.Contains(joined, "--username webfolio") {
		t.Fatalf("connection args missing: %s", joined)
	}

	if !strings.Contains(joined, "backup-20260315T043000Z.sql") {
		t.Fatalf("timestamped file missing: %s", joined)
	}

	if call.env["PGPASSWORD"] != "secret" || call.env["PGSSLMODE"] != "disable" {
		t.Fatalf("credentials not passed through the environment: %v", call.env)
	}
}

func TestRunPrefixesBinDir(t *testing.T) {
	environment := makeBackupEnv(t)
	environment.DB.BinDir = "/opt/pg/bin"

	runner := &fakeRunner{}

	scheduler, err := NewScheduler(environment, WithCommandRunner(runner), WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("new scheduler err: %v", err)
	}

	if err = scheduler.Run(context.Background()); err != nil {
		t.Fatalf("run err: %v", err)
	}

	if runner.calls[0].name != filepath.Join("/opt/pg/bin", "pg_dump") {
		t.Fatalf("expected the prefixed binary got %s", runner.calls[0].name)
	}
}

func TestRunSurfacesCommandFailure(t *testing.T) {
	environment := makeBackupEnv(t)
	boom := errors.New("pg_dump exploded")

	scheduler, err := NewScheduler(environment, WithCommandRunner(&fakeRunner{err: boom}), WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("new scheduler err: %v", err)
	}

	if err = scheduler.Run(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected the runner error got %v", err)
	}
}

func TestRunPrunesOldDumps(t *testing.T) {
	environment := makeBackupEnv(t)
	dir := environment.Backup.Dir

	stale := []string{
		"backup-20260101T000000Z.sql",
		"backup-20260102T000000Z.sql",
		"backup-20260103T000000Z.sql",
	}

	for _, name := range stale {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("-- dump"), 0o644); err != nil {
			t.Fatalf("seed dump err: %v", err)
		}
	}

	// An unrelated file must survive the prune.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("keep"), 0o644); err != nil {
		t.Fatalf("seed notes err: %v", err)
	}

	scheduler, err := NewScheduler(environment, WithCommandRunner(&fakeRunner{}), WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("new scheduler err: %v", err)
	}

	if err = scheduler.Run(context.Background()); err != nil {
		t.Fatalf("run err: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir err: %v", err)
	}

	var dumps []string
	var extras []string

	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".sql") {
			dumps = append(dumps, entry.Name())
		} else {
			extras = append(extras, entry.Name())
		}
	}

	if len(dumps) != environment.Backup.MaxKeep {
		t.Fatalf("expected %d dumps got %v", environment.Backup.MaxKeep, dumps)
	}

	for _, name := range dumps {
		if name == stale[0] {
			t.Fatalf("the oldest dump should be gone, found %s", name)
		}
	}

	if len(extras) != 1 || extras[0] != "notes.txt" {
		t.Fatalf("unrelated files must survive, got %v", extras)
	}
}

func TestStartAndStop(t *testing.T) {
	environment := makeBackupEnv(t)

	scheduler, err := NewScheduler(environment, WithCommandRunner(&fakeRunner{}), WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("new scheduler err: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err = scheduler.Start(ctx); err != nil {
		t.Fatalf("start err: %v", err)
	}

	if err = scheduler.Start(ctx); err == nil {
		t.Fatalf("a second start must fail")
	}

	scheduler.Stop()
	scheduler.Stop()
}
