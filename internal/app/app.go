package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"paybridge/internal/config"
	"paybridge/internal/gateway"
	"paybridge/internal/notify"
	"paybridge/internal/service"
	"paybridge/internal/signature"
	httpt "paybridge/internal/transport/http"
	"paybridge/pkg/cache"
	"paybridge/pkg/logger"
	"paybridge/pkg/metric"

	"golang.org/x/sync/errgroup"
)

const _metricsShutdownTimeout = 5 * time.Second

func Run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	eg, ctx := errgroup.WithContext(ctx)

	metrics := initMetrics(ctx, eg, &cfg.Metrics, log)

	signer := signature.NewSigner([]byte(cfg.Aggregator.Secret))

	urlCache, err := initURLCache(ctx, eg, cfg, log, metrics)
	if err != nil {
		return err
	}

	gatewayClient := gateway.NewYaadClient(
		&cfg.Gateway,
		cfg.Credentials(),
		urlCache,
		log.With("component", "gateway client"),
		metrics.Gateway(),
	)

	paymentService := service.NewPaymentService(
		signer,
		gatewayClient,
		log.With("component", "payment service"),
	)

	callbackService := service.NewCallbackService(
		initNotifier(cfg, signer, log),
		log.With("component", "callback service"),
		metrics.Callback(),
	)

	if err := initHTTPServer(ctx, eg, cfg, paymentService, callbackService, signer, log, metrics); err != nil {
		return err
	}

	return waitForShutdown(eg)
}

// initURLCache builds the signed-URL cache when the signed strategy is
// active and caching is enabled. The cleanup sweep stops on shutdown.
func initURLCache(
	ctx context.Context,
	eg *errgroup.Group,
	cfg *config.Config,
	log logger.Logger,
	metrics metric.Factory,
) (cache.Cache[string, string], error) {
	if cfg.Gateway.Strategy != config.StrategySigned || cfg.Gateway.URLCacheCap == 0 {
		return nil, nil
	}

	urlCache, err := cache.NewLRUCache[string, string](
		"signed_urls",
		cfg.Gateway.URLCacheCap,
		log.With("component", "url cache"),
		metrics.Cache(),
	)
	if err != nil {
		return nil, fmt.Errorf("app.initURLCache: %w", err)
	}

	if ttl := cfg.Gateway.URLCacheTTL; ttl > 0 {
		urlCache.StartCleanup(ttl)
		eg.Go(func() error {
			<-ctx.Done()
			urlCache.StopCleanup()
			return nil
		})
	}

	return urlCache, nil
}

func initMetrics(
	ctx context.Context,
	eg *errgroup.Group,
	cfg *config.Metrics,
	log logger.Logger,
) metric.Factory {
	metrics := metric.NewFactory()

	hostPort := net.JoinHostPort(cfg.Host, cfg.Port)
	metricsServer := &http.Server{
		Addr:              hostPort,
		Handler:           metrics.Handler(),
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	eg.Go(func() error {
		log.Infow("starting metrics server", "port", cfg.Port)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("app.initMetrics: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-ctx.Done()

		// The parent context is already canceled; the shutdown deadline
		// needs its own clock.
		shutdownCtx, cancel := context.WithTimeout(
			context.WithoutCancel(ctx), _metricsShutdownTimeout)
		defer cancel()

		log.Infow("shutting down metrics server")
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("app.initMetrics: shutdown: %w", err)
		}
		return nil
	})

	return metrics
}

func initNotifier(
	cfg *config.Config,
	signer *signature.Signer,
	log logger.Logger,
) notify.Notifier {
	if cfg.Aggregator.ApprovalURL == "" {
		log.Infow("no approval URL configured, approvals will not be reported")
		return notify.NewNop()
	}
	return notify.NewHTTPNotifier(
		cfg.Aggregator.ApprovalURL,
		signer,
		log.With("component", "notifier"),
	)
}

func initHTTPServer(
	ctx context.Context,
	eg *errgroup.Group,
	cfg *config.Config,
	paymentService *service.PaymentService,
	callbackService *service.CallbackService,
	signer *signature.Signer,
	log logger.Logger,
	metrics metric.Factory,
) error {
	httpServer, err := httpt.NewHTTPServer(
		httpt.NewBridgeHandler(
			paymentService,
			callbackService,
			signer,
			cfg.Bridge,
			log,
			metrics.HTTP(),
		),
		&cfg.HTTP,
		log.With("component", "http server"),
	)
	if err != nil {
		return fmt.Errorf("app.initHTTPServer: %w", err)
	}

	eg.Go(func() error {
		return httpServer.Start(ctx)
	})
	return nil
}

func waitForShutdown(eg *errgroup.Group) error {
	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("app.waitForShutdown: application failed: %w", err)
	}
	return nil
}
