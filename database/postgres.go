package database

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"time"

	_ "github.com/lib/pq"
)

var PostgresDB *sql.DB

const schema = `
CREATE TABLE IF NOT EXISTS datasets (
    id             UUID PRIMARY KEY,
    name           TEXT NOT NULL,
    file_path      TEXT NOT NULL,
    row_count      INTEGER NOT NULL DEFAULT 0,
    rejected_count INTEGER NOT NULL DEFAULT 0,
    created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

func ConnectPostgres(dsn string) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		slog.Error("Gagal membuka koneksi PostgreSQL", "error", err)
		os.Exit(1)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		slog.Error("PostgreSQL tidak dapat dijangkau", "error", err)
		os.Exit(1)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		slog.Error("Gagal membuat tabel datasets", "error", err)
		os.Exit(1)
	}

	PostgresDB = db
	slog.Info("Berhasil terhubung ke PostgreSQL")
}
