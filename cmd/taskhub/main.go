package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sufield/taskhub/internal/adapters/inbound/httpapi"
	"github.com/sufield/taskhub/internal/adapters/outbound/gormstore"
	"github.com/sufield/taskhub/internal/adapters/outbound/inmemory"
	"github.com/sufield/taskhub/internal/adapters/outbound/token"
	"github.com/sufield/taskhub/internal/app"
	"github.com/sufield/taskhub/internal/config"
	"github.com/sufield/taskhub/internal/ports"
)

// Version information (set via ldflags during build)
var (
	version = "dev"
	commit  = "none"
)

func main() {
	versionFlag := flag.Bool("version", false, "Print version information and exit")
	configPath := flag.String("config", "", "Path to config file (defaults + env when empty)")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("taskhub %s (commit %s)\n", version, commit)
		os.Exit(0)
	}

	log := newLogger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	users, tasks, err := openStores(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to open store")
	}
	log.WithField("store", cfg.Store).Info("store ready")

	clock := ports.SystemClock
	issuer := token.NewJWTIssuer([]byte(cfg.Token.Secret), cfg.Token.TTL(), clock)
	hasher := token.NewBcryptHasher()

	authService := app.NewAuthService(users, issuer, hasher)
	taskService := app.NewTaskService(tasks, users, clock)

	server := httpapi.NewServer(cfg.ListenAddr, authService, taskService, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.WithError(err).Fatal("server failed")
		}
	case sig := <-stop:
		log.WithField("signal", sig.String()).Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Stop(ctx); err != nil {
			log.WithError(err).Error("graceful shutdown failed")
		}
	}
}

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "ts",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})
	return log
}

func openStores(cfg config.Config) (ports.UserRepository, ports.TaskRepository, error) {
	switch cfg.Store {
	case "memory":
		return inmemory.NewUserStore(), inmemory.NewTaskStore(), nil
	default:
		db, err := gormstore.Open(cfg.Database.DSN())
		if err != nil {
			return nil, nil, err
		}
		return gormstore.NewUserStore(db), gormstore.NewTaskStore(db), nil
	}
}
