package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/adapter/email"
	natsadapter "github.com/Abdurahmanit/GroupProject/storefront-service/internal/adapter/nats"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/adapter/whatsapp"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/app/config"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/metrics"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/tracer"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/port/rest"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/service"
	"github.com/nats-io/nats.go"
)

const metricsNamespace = "storefront"

type App struct {
	cfg           *config.Config
	log           logger.Logger
	server        *rest.Server
	metricsServer *http.Server
	registry      *service.CartRegistry
	natsConn      *nats.Conn
	closeSlots    closeFunc
	stopTracer    func(context.Context) error
}

// NewLogger builds the application logger from cfg.
func NewLogger(cfg *config.Config) (logger.Logger, error) {
	return logger.NewZapLogger(logger.ZapLoggerConfig{
		Level:      cfg.Logger.Level,
		Encoding:   cfg.Logger.Encoding,
		TimeFormat: cfg.Logger.TimeFormat,
	})
}

func New(ctx context.Context, cfg *config.Config, appLogger logger.Logger) (*App, error) {
	appLogger.Infof("Configuration loaded: Env=%s, HTTP Port: %s, Storage: %s", cfg.Env, cfg.HTTPServer.Port, cfg.Storage.Backend)

	stopTracer, err := tracer.Init(ctx, cfg.Tracing.Endpoint, cfg.Tracing.ServiceName)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracer: %w", err)
	}
	if cfg.Tracing.Endpoint != "" {
		appLogger.Infof("Tracing exported to %s", cfg.Tracing.Endpoint)
	}

	m := metrics.NewMetricsManager(metricsNamespace)

	slots, closeSlots, err := OpenCartSlots(ctx, cfg, appLogger)
	if err != nil {
		_ = stopTracer(ctx)
		return nil, err
	}
	appLogger.Info("Cart storage initialized successfully")

	listeners := []service.Listener{service.NewMetricsListener(m)}

	var publisher service.EventPublisher
	var natsConn *nats.Conn
	if cfg.NATS.URL != "" {
		natsConn, err = natsadapter.NewConnection(cfg.NATS, appLogger)
		if err != nil {
			_ = closeSlots(ctx)
			_ = stopTracer(ctx)
			return nil, fmt.Errorf("failed to initialize NATS: %w", err)
		}
		pub, err := natsadapter.NewNATSPublisher(natsConn, cfg.NATS.SubjectPrefix)
		if err != nil {
			natsConn.Close()
			_ = closeSlots(ctx)
			_ = stopTracer(ctx)
			return nil, err
		}
		publisher = pub
		listeners = append(listeners, service.NewEventListener(pub, appLogger))
		appLogger.Infof("NATS publisher connected to %s", cfg.NATS.URL)
	} else {
		appLogger.Info("NATS URL not configured, cart events disabled")
	}

	var mailer service.EmailSender
	if cfg.SMTP.Enabled() {
		sender, err := email.NewSMTPSender(cfg.SMTP, appLogger)
		if err != nil {
			appLogger.Warnf("Order e-mail disabled: %v", err)
		} else {
			mailer = sender
		}
	}

	formatter, err := service.NewOrderFormatter(cfg.Checkout.Locale, cfg.Checkout.CurrencySymbol)
	if err != nil {
		if natsConn != nil {
			natsConn.Close()
		}
		_ = closeSlots(ctx)
		_ = stopTracer(ctx)
		return nil, err
	}

	registry := service.NewCartRegistry(slots, cfg.Storage.Key, appLogger,
		service.WithListeners(listeners...),
		service.WithRegistryMetrics(m),
	)
	checkout := service.NewCheckoutService(
		formatter,
		whatsapp.NewLinkBuilder(cfg.Checkout.WhatsAppNumber),
		publisher,
		mailer,
		m,
		appLogger,
		service.CheckoutServiceConfig{ShopEmail: cfg.SMTP.ShopEmail},
	)

	handler := rest.NewRouter(rest.NewCartHandler(checkout, appLogger), registry, m, appLogger)
	server := rest.NewServer(appLogger, cfg.HTTPServer.Port, cfg.HTTPServer.ReadTimeout, cfg.HTTPServer.WriteTimeout, handler)
	appLogger.Info("HTTP server instance created")

	return &App{
		cfg:           cfg,
		log:           appLogger,
		server:        server,
		metricsServer: metrics.NewMetricsServer(cfg.Metrics.Port, appLogger, m.Registry),
		registry:      registry,
		natsConn:      natsConn,
		closeSlots:    closeSlots,
		stopTracer:    stopTracer,
	}, nil
}

func (a *App) Registry() *service.CartRegistry {
	return a.registry
}

func (a *App) Run() {
	a.log.Info("Starting application components...")

	go func() {
		if err := a.server.Start(); err != nil {
			a.log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	if a.metricsServer != nil {
		go func() {
			a.log.Infof("Prometheus metrics server starting on %s/metrics", a.metricsServer.Addr)
			if err := a.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.log.Errorf("Metrics server failed: %v", err)
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	receivedSignal := <-quit
	a.log.Infof("Received shutdown signal: %v. Shutting down application...", receivedSignal)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTPServer.TimeoutGraceful+5*time.Second)
	defer cancel()

	if err := a.server.Stop(shutdownCtx); err != nil {
		a.log.Errorf("Error during HTTP server graceful shutdown: %v", err)
	}
	if a.metricsServer != nil {
		if err := a.metricsServer.Shutdown(shutdownCtx); err != nil {
			a.log.Errorf("Error stopping metrics server: %v", err)
		}
	}

	a.Close(shutdownCtx)
	a.log.Info("Application shut down successfully")
}

// Close releases the event connection, the cart storage and the tracer.
func (a *App) Close(ctx context.Context) {
	if a.natsConn != nil {
		if err := a.natsConn.Drain(); err != nil {
			a.log.Errorf("Error draining NATS connection: %v", err)
		} else {
			a.log.Info("NATS connection drained")
		}
	}

	if err := a.closeSlots(ctx); err != nil {
		a.log.Errorf("Error closing cart storage: %v", err)
	} else {
		a.log.Info("Cart storage closed successfully")
	}

	if err := a.stopTracer(ctx); err != nil {
		a.log.Errorf("Error shutting down tracer: %v", err)
	}
}
