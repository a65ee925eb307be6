package seed

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/legit-games/catalog-service/migrate"
	"github.com/pressly/goose/v3"
)

// seedFS holds embedded SQL seed files in seed/sql. The statements are portable
// between postgres and sqlite.
//
//go:embed sql/*.sql
var seedFS embed.FS

// Options defines how to run seed migrations.
type Options struct {
	Driver  string      // postgres or sqlite
	DSN     string      // e.g. ./catalog.db for sqlite, or a postgres URL
	Command string      // up, down, status, version, up-to, down-to, redo, reset
	Target  int64       // used with up-to/down-to
	Logger  *log.Logger // optional logger
}

// Run executes seed migrations based on provided options. If Driver or DSN are empty, it is a no-op.
func Run(opts Options) error {
	if strings.TrimSpace(opts.Driver) == "" || strings.TrimSpace(opts.DSN) == "" {
		return nil
	}
	if !hasValidSeedFiles(seedFS, opts.Logger) {
		return nil
	}
	dialect, err := migrate.Dialect(opts.Driver)
	if err != nil {
		return err
	}

	if opts.Logger != nil {
		goose.SetLogger(opts.Logger)
	}
	goose.SetBaseFS(seedFS)
	goose.SetTableName("seed_migrations") // separate from schema migrations
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}

	db, err := sql.Open(dialect, opts.DSN)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	return migrate.Exec(db, "sql", opts.Command, opts.Target)
}

// hasValidSeedFiles reports whether fsys/sql holds at least one goose file named VERSION_name.sql.
func hasValidSeedFiles(fsys fs.FS, logger *log.Logger) bool {
	entries, err := fs.ReadDir(fsys, "sql")
	if err != nil {
		if logger != nil {
			logger.Println("no seed SQL directory found, skipping seed")
		}
		return false
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".sql") {
			continue
		}
		if _, err := strconv.ParseInt(strings.SplitN(name, "_", 2)[0], 10, 64); err == nil && strings.Contains(name, "_") {
			return true
		}
	}
	if logger != nil {
		logger.Println("no valid seed SQL files found (files must be named like 00001_name.sql), skipping seed")
	}
	return false
}

// RunFromEnv reads configuration from environment variables and runs seed migrations
// if SEED_ON_START is truthy.
//
// Env vars:
// - SEED_ON_START: if true/1, run seed migrations
// - SEED_DRIVER: postgres or sqlite (falls back to MIGRATE_DRIVER)
// - SEED_DSN: db connection string (falls back to MIGRATE_DSN)
// - SEED_CMD: up, down, status, version, up-to, down-to, redo, reset (default: up)
// - SEED_TARGET: integer version for up-to/down-to
func RunFromEnv() error {
	if !migrate.IsTruthy(os.Getenv("SEED_ON_START")) {
		return nil
	}

	cmd := strings.TrimSpace(os.Getenv("SEED_CMD"))
	if cmd == "" {
		cmd = "up"
	}

	var target int64
	if v := strings.TrimSpace(os.Getenv("SEED_TARGET")); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			target = n
		}
	}

	driver := strings.TrimSpace(os.Getenv("SEED_DRIVER"))
	if driver == "" {
		driver = strings.TrimSpace(os.Getenv("MIGRATE_DRIVER"))
	}
	dsn := strings.TrimSpace(os.Getenv("SEED_DSN"))
	if dsn == "" {
		dsn = strings.TrimSpace(os.Getenv("MIGRATE_DSN"))
	}

	return Run(Options{
		Driver:  driver,
		DSN:     dsn,
		Command: cmd,
		Target:  target,
		Logger:  log.New(os.Stdout, "[seed] ", log.LstdFlags),
	})
}
