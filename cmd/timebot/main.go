package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jesses-code-adventures/timebot/internal/config"
	"github.com/jesses-code-adventures/timebot/internal/database"
	"github.com/jesses-code-adventures/timebot/internal/notify"
	"github.com/jesses-code-adventures/timebot/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := newLogger(cfg.DevMode)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.NewDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	timebotService := service.NewTimebotService(db, cfg, notify.NewLogNotifier(logger), logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := newRootCmd(timebotService, cfg, logger)
	return rootCmd.ExecuteContext(ctx)
}

// loadConfig picks the connection flags out of args before cobra runs, since
// the database is opened before any command executes.
func loadConfig(args []string) (*config.Config, error) {
	fs := pflag.NewFlagSet("timebot", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	var dbConn, dbDriver string
	addConnectionFlags(fs, &dbConn, &dbDriver)
	_ = fs.Parse(args)

	return config.Load(dbConn, dbDriver, "")
}

func addConnectionFlags(fs *pflag.FlagSet, dbConn, dbDriver *string) {
	fs.StringVar(dbConn, "db", "", "Database URL or path (overrides DATABASE_URL)")
	fs.StringVar(dbDriver, "driver", "", "Database driver: sqlite3, libsql or postgres (overrides DATABASE_DRIVER)")
}

func newLogger(devMode bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if devMode {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}
