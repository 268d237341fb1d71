package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/straye-as/sales-target-api/internal/config"
	"github.com/straye-as/sales-target-api/internal/logger"
	"github.com/straye-as/sales-target-api/migrations"
	"go.uber.org/zap"
)

const usage = "usage: migrate [up|up-to VERSION|down|down-to VERSION|redo|status|version|create NAME]"

// sourceDir is where create writes new files; applied migrations come from the embedded FS
const sourceDir = "./migrations"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Migration error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return errors.New(usage)
	}
	command, arguments := args[0], args[1:]

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&cfg.Logging, &cfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()
	log = log.With(zap.String("command", command))
	goose.SetLogger(gooseLogger{log.Sugar()})

	if command == "create" {
		if len(arguments) == 0 {
			return fmt.Errorf("create requires a migration name")
		}
		if err := goose.Create(nil, sourceDir, arguments[0], "sql"); err != nil {
			return fmt.Errorf("failed to create migration: %w", err)
		}
		log.Info("Migration created", zap.String("name", arguments[0]), zap.String("dir", sourceDir))
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", cfg.Database.ConnectionString())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	start := time.Now()
	if err := migrate(ctx, db, command, arguments); err != nil {
		return err
	}
	log.Info("Migration command finished", zap.Duration("duration", time.Since(start)))
	return nil
}

func migrate(ctx context.Context, db *sql.DB, command string, arguments []string) error {
	const dir = "."

	switch command {
	case "up":
		if err := goose.UpContext(ctx, db, dir); err != nil {
			return fmt.Errorf("failed to run up migrations: %w", err)
		}
	case "up-to":
		version, err := targetVersion(arguments)
		if err != nil {
			return err
		}
		if err := goose.UpToContext(ctx, db, dir, version); err != nil {
			return fmt.Errorf("failed to migrate up to %d: %w", version, err)
		}
	case "down":
		if err := goose.DownContext(ctx, db, dir); err != nil {
			return fmt.Errorf("failed to run down migration: %w", err)
		}
	case "down-to":
		version, err := targetVersion(arguments)
		if err != nil {
			return err
		}
		if err := goose.DownToContext(ctx, db, dir, version); err != nil {
			return fmt.Errorf("failed to migrate down to %d: %w", version, err)
		}
	case "redo":
		if err := goose.RedoContext(ctx, db, dir); err != nil {
			return fmt.Errorf("failed to redo migration: %w", err)
		}
	case "status":
		if err := goose.StatusContext(ctx, db, dir); err != nil {
			return fmt.Errorf("failed to get migration status: %w", err)
		}
	case "version":
		if err := goose.VersionContext(ctx, db, dir); err != nil {
			return fmt.Errorf("failed to get version: %w", err)
		}
	default:
		return fmt.Errorf("unknown command %q; %s", command, usage)
	}
	return nil
}

func targetVersion(arguments []string) (int64, error) {
	if len(arguments) == 0 {
		return 0, fmt.Errorf("a target version is required")
	}
	version, err := strconv.ParseInt(arguments[0], 10, 64)
	if err != nil || version < 0 {
		return 0, fmt.Errorf("invalid target version %q", arguments[0])
	}
	return version, nil
}

// gooseLogger routes goose progress output through zap
type gooseLogger struct {
	log *zap.SugaredLogger
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.log.Infof(format, v...)
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.log.Fatalf(format, v...)
}
