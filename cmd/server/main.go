// main wires the verification engine: stores, oracle backend, pattern
// engine, audit sink and the HTTP surface. Business logic lives in the
// internal packages.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"taskproof/internal/audit"
	jwttoken "taskproof/internal/jwt_token"
	"taskproof/internal/oracle"
	"taskproof/internal/pattern"
	"taskproof/internal/platform/config"
	"taskproof/internal/platform/httpserver"
	"taskproof/internal/platform/logger"
	"taskproof/internal/platform/metrics"
	"taskproof/internal/platform/postgres"
	"taskproof/internal/platform/redis"
	"taskproof/internal/record"
	"taskproof/internal/task"
	httptransport "taskproof/internal/transport/http"
	"taskproof/internal/verification"
	verificationhandler "taskproof/internal/verification/handler"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.DefaultRegisterer

	// Pattern store: Redis when configured, in-memory otherwise.
	var patternStore pattern.Store = pattern.NewInMemoryStore()
	redisClient, err := redis.New(cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
		patternStore = pattern.NewRedisStore(redisClient)
		log.Info("pattern store on redis")
	}

	// Task and record stores: Postgres when configured.
	var (
		taskStore   task.Store   = task.NewInMemoryStore()
		recordStore record.Store = record.NewInMemoryStore()
	)
	db, err := postgres.Open(cfg.Postgres)
	if err != nil {
		return err
	}
	if db != nil {
		defer func() { _ = db.Close() }()
		taskStore = task.NewPostgresStore(db)
		recordStore = record.NewPostgresStore(db)
		log.Info("task and record stores on postgres")
	}

	// Audit: Kafka sink when brokers are configured.
	var sink audit.Sink = audit.NewInMemoryStore()
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaSink, err := audit.NewKafkaSink(ctx, cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			return err
		}
		defer kafkaSink.Close()
		sink = kafkaSink
		log.Info("audit events to kafka", "topic", cfg.Kafka.Topic)
	}
	auditor := audit.NewPublisher(sink, log, audit.WithAsyncBuffer(256))
	defer auditor.Close()

	analyzer := oracle.New(oracle.NewGeminiClient(cfg.Oracle))
	fetcher := verification.NewLinkFetcher(cfg.LinkFetchTimeout)

	patternSvc := pattern.NewService(patternStore, log, pattern.NewMetrics(reg))
	verificationSvc := verification.NewService(
		taskStore, recordStore, patternSvc, analyzer, fetcher,
		auditor, log, verification.NewMetrics(reg),
	)

	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, "taskproof")

	var health func(ctx context.Context) error
	if redisClient != nil || db != nil {
		health = func(ctx context.Context) error {
			if redisClient != nil {
				if err := redisClient.Health(ctx); err != nil {
					return fmt.Errorf("redis: %w", err)
				}
			}
			if db != nil {
				if err := db.PingContext(ctx); err != nil {
					return fmt.Errorf("postgres: %w", err)
				}
			}
			return nil
		}
	}

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:       log,
		Metrics:      metrics.New(),
		JWTValidator: jwttoken.NewJWTServiceAdapter(jwtService),
		Verification: verificationhandler.New(verificationSvc, log),
		Health:       health,
	})

	srv := httpserver.New(cfg.Addr, router)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting taskproof", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("shutdown complete")
	return nil
}
