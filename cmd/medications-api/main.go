package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ehospital/medications/internal/config"
	v1 "github.com/ehospital/medications/internal/handler/v1"
	"github.com/ehospital/medications/internal/repository"
	"github.com/ehospital/medications/internal/service"
	"github.com/ehospital/medications/pkg/auth"
	"github.com/ehospital/medications/pkg/database"
	"github.com/ehospital/medications/pkg/logger"
	"github.com/ehospital/medications/pkg/metrics"
	"github.com/ehospital/medications/pkg/tracer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("building logger: %v", err)
	}
	defer zlog.Sync()

	if err := run(cfg, zlog); err != nil {
		zlog.Fatal("service exited with error", zap.Error(err))
	}
}

func run(cfg *config.Config, zlog *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp, err := tracer.Init(cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			zlog.Warn("tracer shutdown failed", zap.Error(err))
		}
	}()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return err
	}
	if err := database.Migrate(db, zlog); err != nil {
		return err
	}

	collector := metrics.NewCollector("medications")
	if sqlDB, err := db.DB(); err == nil {
		go trackDBConnections(ctx, collector, sqlDB)
	}

	uow := repository.NewUnitOfWork(db)
	auditSvc := service.NewAuditService(repository.NewAuditRepository(db), collector, zlog)
	defer auditSvc.Shutdown()

	drugSvc := service.NewDrugService(uow, auditSvc, zlog)
	prescriptionSvc := service.NewPrescriptionService(uow, auditSvc, zlog)

	router := v1.NewRouter(v1.RouterDeps{
		Drugs:         v1.NewDrugHandler(drugSvc, collector),
		Prescriptions: v1.NewPrescriptionHandler(prescriptionSvc, collector),
		Directory:     v1.NewDirectoryHandler(uow),
		JWTManager:    auth.NewJWTManager(cfg.JWT),
		Metrics:       collector,
		Log:           zlog,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zlog.Info("http server listening",
			zap.String("addr", srv.Addr),
			zap.String("environment", cfg.App.Environment),
			zap.String("version", cfg.App.Version),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zlog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func trackDBConnections(ctx context.Context, collector *metrics.Collector, sqlDB *sql.DB) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			collector.DBConnections.Set(float64(sqlDB.Stats().OpenConnections))
		}
	}
}
