package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/JejeDurden2/beyond/internal/auth"
	"github.com/JejeDurden2/beyond/internal/beneficiary"
	"github.com/JejeDurden2/beyond/internal/config"
	"github.com/JejeDurden2/beyond/internal/keepsake"
	"github.com/JejeDurden2/beyond/internal/logger"
	"github.com/JejeDurden2/beyond/internal/server"
	"github.com/JejeDurden2/beyond/internal/storage"
	"github.com/JejeDurden2/beyond/internal/vault"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	zlog, err := logger.Init()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zlog.Sync()

	cfg, err := config.Load()
	if err != nil {
		zlog.Fatal("load config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbPool, err := storage.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		zlog.Fatal("connect postgres", zap.Error(err))
	}
	defer dbPool.Close()

	minioClient, err := storage.NewMinIOClient(cfg.MinIO)
	if err != nil {
		zlog.Fatal("connect minio", zap.Error(err))
	}

	if err := storage.EnsureBucket(ctx, minioClient, cfg.MinIO.Bucket, cfg.MinIO.Region); err != nil {
		zlog.Fatal("ensure bucket", zap.Error(err))
	}

	custodian, err := vault.NewCustodian(cfg.Vault.MasterSecret)
	if err != nil {
		zlog.Fatal("init key custodian", zap.Error(err))
	}

	authRepo := auth.NewRepository(dbPool)
	authService := auth.NewService(authRepo, cfg.Auth)

	vaultRepo := vault.NewRepository(dbPool)
	vaultStore := vault.NewMinIOStore(minioClient, cfg.MinIO.Bucket)
	vaultService := vault.NewService(vaultRepo, vaultStore, custodian, zlog)

	keepsakeRepo := keepsake.NewRepository(dbPool)
	beneficiaryRepo := beneficiary.NewRepository(dbPool)
	beneficiaryService := beneficiary.NewService(beneficiaryRepo, keepsakeRepo)
	keepsakeService := keepsake.NewService(keepsakeRepo, beneficiaryRepo, vaultRepo)

	router := server.NewRouter(server.Dependencies{
		Config:             cfg,
		Logger:             zlog,
		DB:                 dbPool,
		ObjectStore:        minioClient,
		AuthService:        authService,
		BeneficiaryService: beneficiaryService,
		KeepsakeService:    keepsakeService,
		VaultService:       vaultService,
	})

	httpServer := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		zlog.Info("Beyond API listening", zap.String("address", cfg.Server.Address()))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("http server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	zlog.Info("shutting down gracefully")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zlog.Error("shutdown error", zap.Error(err))
	}
}
