package db

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestConnectEmptyURL(t *testing.T) {
	_, err := Connect(context.Background(), "   ", DefaultServerOptions())
	if err == nil {
		t.Fatalf("expected error for empty DATABASE_URL")
	}
}

func TestConnectOpensAndPings(t *testing.T) {
	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}

	orig := openDB
	openDB = func(driver, dsn string) (*sql.DB, error) {
		if driver != "pgx" {
			t.Errorf("driver = %q, want pgx", driver)
		}
		return mockDB, nil
	}
	t.Cleanup(func() { openDB = orig })

	mock.ExpectPing()

	conn, err := Connect(context.Background(), "postgres://localhost/summarizer", DefaultServerOptions())
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer conn.Close()

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
	if got := conn.Stats().MaxOpenConnections; got != DefaultServerOptions().MaxOpenConns {
		t.Fatalf("MaxOpenConnections = %d, want %d", got, DefaultServerOptions().MaxOpenConns)
	}
}

func TestConnectClosesOnPingFailure(t *testing.T) {
	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}

	orig := openDB
	openDB = func(driver, dsn string) (*sql.DB, error) { return mockDB, nil }
	t.Cleanup(func() { openDB = orig })

	mock.ExpectPing().WillReturnError(fmt.Errorf("connection refused"))
	mock.ExpectClose()

	if _, err := Connect(context.Background(), "postgres://localhost/summarizer", DefaultServerOptions()); err == nil {
		t.Fatalf("expected ping failure")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOptionsFromEnvOverrides(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "25")
	t.Setenv("DB_MAX_IDLE_CONNS", "8")
	t.Setenv("DB_CONN_MAX_LIFETIME", "30m")
	t.Setenv("DB_PING_TIMEOUT", "2s")

	opts := OptionsFromEnv(DefaultServerOptions())
	if opts.MaxOpenConns != 25 {
		t.Fatalf("MaxOpenConns = %d, want 25", opts.MaxOpenConns)
	}
	if opts.MaxIdleConns != 8 {
		t.Fatalf("MaxIdleConns = %d, want 8", opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime != 30*time.Minute {
		t.Fatalf("ConnMaxLifetime = %v, want 30m", opts.ConnMaxLifetime)
	}
	if opts.PingTimeout != 2*time.Second {
		t.Fatalf("PingTimeout = %v, want 2s", opts.PingTimeout)
	}
}

func TestOptionsFromEnvIgnoresInvalid(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "lots")
	t.Setenv("DB_CONN_MAX_LIFETIME", "soon")

	defaults := DefaultMigrateOptions()
	opts := OptionsFromEnv(defaults)
	if opts != defaults {
		t.Fatalf("opts = %+v, want defaults %+v", opts, defaults)
	}
}
