package main

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/hydrogen-intake/cliparse"
	"github.com/danielhkuo/hydrogen-intake/db"
	"github.com/danielhkuo/hydrogen-intake/export"
	"github.com/danielhkuo/hydrogen-intake/middleware"
	"github.com/danielhkuo/hydrogen-intake/remote"
	"github.com/danielhkuo/hydrogen-intake/router"
	"github.com/danielhkuo/hydrogen-intake/session"
)

func main() {
	var err error

	// Load .env if present
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Pick the submission log
	var sink export.Sink
	switch cfg.Sink {
	case cliparse.SinkS3:
		sink, err = remote.New(context.Background(), remote.Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			PathStyle:       cfg.S3PathStyle,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
		})
		if err != nil {
			slog.Error("s3 setup failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Submission log in S3", "bucket", cfg.S3Bucket)
	default:
		var dbConn *sql.DB
		dbConn, err = db.Open(cfg.DatabaseType, cfg.DatabaseURL)
		if err != nil {
			slog.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		defer dbConn.Close()

		// Create schema (tables)
		if err := db.CreateSchema(dbConn); err != nil {
			slog.Error("schema creation failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Database schema ready", "type", cfg.DatabaseType)

		sink = db.NewSubmissionLog(dbConn, cfg.DatabaseType)
	}

	// Sessions own the bridge subscriptions
	manager := session.NewManager(sink, cfg.PushType)
	defer manager.Close()

	// Create router
	mux := router.NewRouter(manager, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(cfg.AllowedOrigin, mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
