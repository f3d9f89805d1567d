package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/iliyamo/storage-booking/internal/config"
	"github.com/iliyamo/storage-booking/internal/handler"
	"github.com/iliyamo/storage-booking/internal/integration"
	"github.com/iliyamo/storage-booking/internal/lock"
	"github.com/iliyamo/storage-booking/internal/queue"
	"github.com/iliyamo/storage-booking/internal/router"
	"github.com/iliyamo/storage-booking/internal/service"
	"github.com/iliyamo/storage-booking/internal/utils"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, config.Load())
		},
	}
}

func serve(ctx context.Context, cfg config.Config) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	store, err := openStore(ctx, cfg, cfg.AutoMigrate)
	if err != nil {
		return err
	}
	defer store.Close(context.Background())

	rdb := config.NewRedisClient(config.LoadRedisConfig())
	if rdb != nil {
		defer rdb.Close()
	}
	locker := lock.New(rdb, cfg.BookingLockTTL)

	// Provider clients: environment first, stored keys layered on top.
	registry := integration.NewRegistry(config.LoadIntegrationConfig())
	integrations := service.NewIntegrations(store, utils.NewSealer(cfg.SecretKey), registry)
	if _, err := integrations.Reload(ctx); err != nil {
		utils.Logger.WithError(err).Warn("stored api keys not loaded; using environment settings only")
	}
	notifier := service.NewNotifier(registry)

	broker := config.LoadBrokerConfig()
	var pub service.BookingPublisher
	if p := queue.NewPublisher(broker.URL, broker.Queue); p != nil {
		pub = p
	}
	dispatcher := service.NewDispatcher(pub, notifier)

	consumerDone := make(chan struct{})
	if broker.URL != "" && broker.ConsumerEnabled {
		audit := utils.NewRotatingFile(broker.AuditLogPath)
		defer audit.Close()
		consumer := queue.NewConsumer(broker.URL, broker.Queue, notifier, audit)
		go func() {
			defer close(consumerDone)
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				utils.Logger.WithError(err).Error("booking consumer stopped")
			}
		}()
	} else {
		close(consumerDone)
	}

	customers := service.NewCustomers(store)
	loyalty := service.NewLoyalty(store)
	catalog := service.NewCatalog(store)
	e := router.New(router.Options{
		CORSOrigins: cfg.CORSOrigins,
		Cache:       config.LoadCacheConfig(),
		RateLimit:   config.LoadRateLimitConfig(),
		Redis:       rdb,
	}, router.Handlers{
		Units:        handler.NewUnitHandler(catalog, service.NewAvailability(store), store),
		Bookings:     handler.NewBookingHandler(service.NewLedger(store, locker, customers, dispatcher)),
		Content:      handler.NewContentHandler(service.NewContent(store)),
		Integrations: handler.NewIntegrationHandler(integrations),
		Payments:     handler.NewPaymentHandler(service.NewPayments(store, registry, loyalty)),
		Customers:    handler.NewCustomerHandler(customers, loyalty),
		Analytics:    handler.NewAnalyticsHandler(service.NewAnalytics(store)),
	})

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		utils.Logger.Infof("listening on %s (env=%s, store=%s)", addr, cfg.Env, cfg.StoreDriver)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	utils.Logger.Info("shutting down")
	shutdownCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
	defer done()
	if err := e.Shutdown(shutdownCtx); err != nil {
		utils.Logger.WithError(err).Warn("http shutdown")
	}
	cancel()
	dispatcher.Wait()
	<-consumerDone
	return nil
}
