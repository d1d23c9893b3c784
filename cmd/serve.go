package cmd

import (
	"context"
	"database/sql"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/vibast-solutions/ms-go-payment-notifier/app/controller"
	"github.com/vibast-solutions/ms-go-payment-notifier/app/encryption"
	paymentgrpc "github.com/vibast-solutions/ms-go-payment-notifier/app/grpc"
	"github.com/vibast-solutions/ms-go-payment-notifier/app/metrics"
	"github.com/vibast-solutions/ms-go-payment-notifier/app/repository"
	"github.com/vibast-solutions/ms-go-payment-notifier/app/service"
	"github.com/vibast-solutions/ms-go-payment-notifier/app/worker"
	"github.com/vibast-solutions/ms-go-payment-notifier/config"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP and gRPC servers",
	Long:  "Start both HTTP (Echo) and gRPC servers for the payments service.",
	Run:   runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

type application struct {
	cfg            *config.Config
	registry       *prometheus.Registry
	pool           *worker.Pool
	paymentService *service.PaymentService
	webhookService *service.WebhookService
	cleanup        func()
}

func runServe(_ *cobra.Command, _ []string) {
	app := mustCreateApplication()
	defer app.cleanup()
	cfg := app.cfg

	e := setupHTTPServer(app)
	grpcSrv, healthSrv, lis := setupGRPCServer(app)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		httpAddr := net.JoinHostPort(cfg.HTTP.Host, cfg.HTTP.Port)
		logrus.WithField("addr", httpAddr).Info("Starting HTTP server")
		if err := e.Start(httpAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		logrus.WithField("addr", lis.Addr().String()).Info("Starting gRPC server")
		return grpcSrv.Serve(lis)
	})

	g.Go(func() error {
		<-gctx.Done()
		logrus.Info("Shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
		defer cancel()

		healthSrv.Shutdown()
		if err := e.Shutdown(shutdownCtx); err != nil {
			logrus.WithError(err).Warn("HTTP shutdown error")
		}
		grpcSrv.GracefulStop()
		if err := app.pool.Shutdown(shutdownCtx); err != nil {
			logrus.WithError(err).Warn("Pending webhook notifications abandoned")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logrus.WithError(err).Error("Server error")
	}

	logrus.Info("Server stopped")
}

func setupHTTPServer(app *application) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(ensureRequestID())
	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogRemoteIP:  true,
		LogLatency:   true,
		LogUserAgent: true,
		LogError:     true,
		HandleError:  true,
		LogRequestID: true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			fields := logrus.Fields{
				"remote_ip":  v.RemoteIP,
				"host":       v.Host,
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"latency_ns": v.Latency.Nanoseconds(),
				"user_agent": v.UserAgent,
				"request_id": v.RequestID,
			}
			entry := logrus.WithFields(fields)
			if v.Error != nil {
				entry = entry.WithError(v.Error)
			}
			entry.Info("http_request")
			return nil
		},
	}))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	controller.RegisterRoutes(e,
		controller.NewPaymentController(app.paymentService),
		controller.NewWebhookController(app.webhookService),
	)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{})))

	return e
}

// ensureRequestID propagates X-Request-ID, generating one when the caller
// did not send it.
func ensureRequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			requestID := strings.TrimSpace(ctx.Request().Header.Get(echo.HeaderXRequestID))
			if requestID == "" {
				requestID = uuid.NewString()
				ctx.Request().Header.Set(echo.HeaderXRequestID, requestID)
			}
			ctx.Response().Header().Set(echo.HeaderXRequestID, requestID)
			return next(ctx)
		}
	}
}

func setupGRPCServer(app *application) (*grpc.Server, *health.Server, net.Listener) {
	grpcAddr := net.JoinHostPort(app.cfg.GRPC.Host, app.cfg.GRPC.Port)
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to listen on gRPC port")
	}

	grpcSrv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			paymentgrpc.RecoveryInterceptor(),
			paymentgrpc.RequestIDInterceptor(),
			paymentgrpc.LoggingInterceptor(),
		),
	)
	paymentgrpc.RegisterPaymentsServiceServer(grpcSrv, paymentgrpc.NewServer(app.paymentService, app.webhookService))

	healthSrv := health.NewServer()
	healthSrv.SetServingStatus(paymentgrpc.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcSrv, healthSrv)

	return grpcSrv, healthSrv, lis
}

func mustCreateApplication() *application {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	if err := configureLogging(cfg); err != nil {
		logrus.WithError(err).Fatal("Failed to configure logging")
	}

	encryptor, err := encryption.NewCardEncryptor(cfg.Encryption.Key, cfg.Encryption.Salt)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize card encryption")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(registry)

	var (
		paymentService *service.PaymentService
		webhookService *service.WebhookService
		cleanup        = func() {}
	)
	pool := worker.NewPool(cfg.Notifier.Workers)

	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		logrus.Warn("Using in-memory store, data is lost on restart")
		webhookService = service.NewWebhookService(repository.NewMemoryWebhookRepository())
		notifier := service.NewNotifier(webhookService, pool, cfg.Notifier, collector)
		paymentService = service.NewPaymentService(repository.NewMemoryPaymentRepository(), encryptor, notifier, collector)
	default:
		db := mustOpenMySQL(cfg)
		webhookService = service.NewWebhookService(repository.NewWebhookRepository(db))
		notifier := service.NewNotifier(webhookService, pool, cfg.Notifier, collector)
		paymentService = service.NewPaymentService(repository.NewPaymentRepository(db), encryptor, notifier, collector)
		cleanup = func() {
			if err := db.Close(); err != nil {
				logrus.WithError(err).Warn("Failed to close database")
			}
		}
	}

	return &application{
		cfg:            cfg,
		registry:       registry,
		pool:           pool,
		paymentService: paymentService,
		webhookService: webhookService,
		cleanup:        cleanup,
	}
}

func mustOpenMySQL(cfg *config.Config) *sql.DB {
	dsn, err := mysqlDriver.ParseDSN(cfg.MySQL.DSN)
	if err != nil {
		logrus.WithError(err).Fatal("Invalid MYSQL_DSN")
	}
	dsn.ParseTime = true

	db, err := sql.Open("mysql", dsn.FormatDSN())
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		logrus.WithError(err).Fatal("Failed to ping database")
	}

	return db
}
