package main

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	txStdLib "github.com/Thiht/transactor/stdlib"
	"github.com/charmbracelet/log"
	"github.com/golang-migrate/migrate/v4"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"

	"github.com/pomotrack/pomotrack"
	"github.com/pomotrack/pomotrack/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

func main() {
	// logger
	log.SetReportCaller(true)

	// config
	cfg, err := pomotrack.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	lvl, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal("unknown log level", "level", cfg.LogLevel)
	}
	log.SetLevel(lvl)

	// db
	log.Info("opening db", "path", cfg.DatabasePath)
	db, err := sql.Open("sqlite", cfg.DatabasePath+"?_pragma=foreign_keys(1)")
	if err != nil {
		log.Fatal("failed database open", "err", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatal("failed database ping", "err", err)
	}
	if err := runMigrations(db); err != nil {
		log.Fatal("failed migration", "err", err)
	}
	defer db.Close() //nolint

	tx, dbGetter := txStdLib.NewTransactor(
		db,
		txStdLib.NestedTransactionsSavepoints,
	)

	sessionRepo := sqlite.NewSessionRepo(dbGetter, *log.Default())
	taskRepo := sqlite.NewTaskRepo(dbGetter, *log.Default())
	settingsRepo := sqlite.NewSettingsRepo(dbGetter, *log.Default())
	noteRepo := sqlite.NewNoteRepo(dbGetter, *log.Default())

	recorder := NewSessionRecorder(sessionRepo, taskRepo, tx, *log.Default())
	statsEngine := NewStatsEngine(sessionRepo, taskRepo, *log.Default())
	settings := newSettingsProvider(settingsRepo, tx)

	handler := NewServer(recorder, statsEngine, settings, taskRepo, noteRepo, *log.Default())
	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("pomotrack listening", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", "err", err)
		}
	}()

	// graceful shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc
	log.Info("terminating pomotrack")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shut down gracefully", "err", err)
	}
}

func runMigrations(db *sql.DB) error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return err
	}
	driver, err := sqlitemigrate.WithInstance(db, &sqlitemigrate.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
