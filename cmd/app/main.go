package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"payment-gateway-service/internal/config"
	"payment-gateway-service/internal/domain/ports/repository"
	"payment-gateway-service/internal/infra/adapters/hdfc"
	"payment-gateway-service/internal/infra/adapters/notify"
	"payment-gateway-service/internal/infra/api"
	pg "payment-gateway-service/internal/infra/db/postgres"
	"payment-gateway-service/internal/infra/logging"
	"payment-gateway-service/internal/infra/metrics"
	red "payment-gateway-service/internal/infra/redis"
	"payment-gateway-service/internal/infra/sched"
	"payment-gateway-service/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 10)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()
	tracker := pg.NewTransactionRepo(pool)
	events := pg.NewSecurityEventRepo(pool)

	// ---- Redis (optional; dedupe cache is advisory) ----
	var dedupe repository.DedupeCache
	if cfg.Redis.URL != "" {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer redisClient.Close()
		dedupe = red.NewDedupeCache(redisClient, cfg.Redis.TTL)
	} else {
		logger.Warn().Msg("redis not configured; webhook dedupe relies on the tracker upsert alone")
	}

	// ---- Gateway ----
	gw, err := hdfc.NewClient(hdfc.Config{
		BaseURL:    cfg.Gateway.BaseURL,
		APIKey:     cfg.Gateway.APIKey,
		MerchantID: cfg.Gateway.MerchantID,
		ClientID:   cfg.Gateway.ClientID,
		Timeout:    cfg.Gateway.Timeout,
	})
	if err != nil {
		log.Fatalf("gateway: %v", err)
	}
	logger.Info().
		Str("base_url", cfg.Gateway.BaseURL).
		Str("merchant_id", cfg.Gateway.MerchantID).
		Str("api_key", logging.Redact(cfg.Gateway.APIKey, cfg.Runtime.Dev)).
		Msg("gateway configured")
	verifier, err := hdfc.NewVerifier(cfg.Gateway.ResponseKey)
	if err != nil {
		log.Fatalf("verifier: %v", err)
	}
	ids := hdfc.NewIDGenerator()

	// ---- Use cases ----
	audit := usecase.NewAuditSink(tracker, events, logger)
	notifier := notify.NewLogNotifier(logger)
	checkoutUC := usecase.NewCheckoutUseCase(gw, ids, audit, logger)
	webhookUC := usecase.NewWebhookUseCase(verifier, notifier, dedupe, audit, logger)
	callbackUC := usecase.NewCallbackUseCase(verifier, gw, usecase.RedirectTargets{
		Success: cfg.Redirect.SuccessURL,
		Failure: cfg.Redirect.FailureURL,
		Pending: cfg.Redirect.PendingURL,
		Unknown: cfg.Redirect.UnknownURL,
	}, audit, logger)
	refundUC := usecase.NewRefundUseCase(gw, ids, audit, logger)

	// ---- Reconciler ----
	reconciler := sched.NewStatusReconciler(tracker, gw, cfg.Reconciler.Interval, cfg.Reconciler.StaleAfter, logger)
	go reconciler.Start(ctx)

	// ---- HTTP ----
	srv := api.NewServer(checkoutUC, webhookUC, callbackUC, refundUC, logger)
	httpSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: srv.Router(),
	}
	go func() {
		logger.Info().Int("port", cfg.HTTP.Port).Msg("http server listening")
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server stopped")
			cancel()
		}
	}()

	// ---- Shutdown ----
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sig:
	case <-ctx.Done():
	}
	logger.Info().Msg("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
}
