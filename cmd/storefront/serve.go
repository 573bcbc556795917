package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/Abhinay142/mom-made-goodies-house/internal/catalog"
	"github.com/Abhinay142/mom-made-goodies-house/internal/checkout"
	"github.com/Abhinay142/mom-made-goodies-house/internal/config"
	"github.com/Abhinay142/mom-made-goodies-house/internal/contact"
	"github.com/Abhinay142/mom-made-goodies-house/internal/db"
	"github.com/Abhinay142/mom-made-goodies-house/internal/events"
	"github.com/Abhinay142/mom-made-goodies-house/internal/handoff"
	httpapi "github.com/Abhinay142/mom-made-goodies-house/internal/http"
	"github.com/Abhinay142/mom-made-goodies-house/internal/order"
	"github.com/Abhinay142/mom-made-goodies-house/internal/profile"
	"github.com/Abhinay142/mom-made-goodies-house/internal/session"
)

const shutdownTimeout = 10 * time.Second

func setup() (config.Config, *logrus.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}
	logger, err := cfg.NewLogger(os.Stdout)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger, nil
}

func migrateOnly(c *cli.Context) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	if !cfg.UsesDatabase() {
		return errors.New("STOREFRONT_DATABASE_DSN is not set")
	}
	return db.RunMigrations(cfg.DatabaseDSN, logger)
}

// stores holds whichever backends the configuration selects, plus their cleanup.
type stores struct {
	orders   order.Repository
	profiles profile.Store
	closers  []func()
}

func (s *stores) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

func openStores(ctx context.Context, cfg config.Config, logger logrus.FieldLogger) (*stores, error) {
	if !cfg.UsesDatabase() {
		logger.Warn("no database configured, orders and profiles are kept in memory")
		return &stores{orders: order.NewMemoryRepository(), profiles: profile.NewMemoryStore()}, nil
	}

	if cfg.RunMigrations {
		if err := db.RunMigrations(cfg.DatabaseDSN, logger); err != nil {
			return nil, errors.Wrap(err, "db migrate")
		}
	}

	s := &stores{}
	sqlDB, err := db.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	s.closers = append(s.closers, func() { closeQuietly(sqlDB, logger) })

	pool, err := db.NewPool(ctx, cfg.DatabaseDSN)
	if err != nil {
		s.close()
		return nil, err
	}
	s.closers = append(s.closers, pool.Close)

	s.orders = order.NewPostgresRepository(sqlDB)
	s.profiles = profile.NewPostgresStore(pool)
	return s, nil
}

func closeQuietly(sqlDB *sql.DB, logger logrus.FieldLogger) {
	if err := sqlDB.Close(); err != nil {
		logger.WithError(err).Warn("close db")
	}
}

func openPublisher(cfg config.Config, logger logrus.FieldLogger) (order.EventPublisher, func(), error) {
	if !cfg.UsesEvents() {
		logger.Info("no RabbitMQ configured, OrderPlaced events are disabled")
		return nil, func() {}, nil
	}

	conn, err := events.Dial(cfg.RabbitMQURL)
	if err != nil {
		return nil, nil, err
	}
	pub, err := events.NewPublisher(conn, logger)
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return pub, func() { closeAMQP(pub, conn, logger) }, nil
}

func closeAMQP(pub *events.Publisher, conn *amqp.Connection, logger logrus.FieldLogger) {
	if err := pub.Close(); err != nil {
		logger.WithError(err).Warn("close amqp channel")
	}
	if err := conn.Close(); err != nil {
		logger.WithError(err).Warn("close amqp connection")
	}
}

func serve(c *cli.Context) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer st.close()

	publisher, closePublisher, err := openPublisher(cfg, logger)
	if err != nil {
		return err
	}
	defer closePublisher()

	orders := order.NewService(st.orders, publisher, logger)
	h := handoff.New(cfg.WhatsAppNumber, handoff.LoggingLauncher{Logger: logger}, logger)

	registry := session.NewRegistry(checkout.Deps{
		Profiles: st.profiles,
		Orders:   orders,
		Handoff:  h,
		Logger:   logger,
		Options: checkout.Options{
			ConfirmationPath: cfg.ConfirmationPath,
			BrowsePath:       cfg.BrowsePath,
			HandoffDelay:     cfg.HandoffDelay,
		},
	})
	go registry.RunSweeper(ctx, cfg.SessionSweepInterval, cfg.SessionIdleTimeout, logger)

	handler := httpapi.NewHandler(httpapi.Deps{
		Catalog:  catalog.NewStaticCatalog(catalog.DefaultProducts()...),
		Sessions: registry,
		Orders:   orders,
		Profiles: st.profiles,
		Contact:  contact.NewAction(orders, h, logger),
		Verifier: checkout.TrustedVerifier{},
		Logger:   logger,
		Timeout:  cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(handler, cfg.CORSAllowOrigins),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("addr", cfg.HTTPAddr).Info("http listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		return errors.Wrap(err, "http server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "http shutdown")
	}

	logger.Info("shutdown complete")
	return nil
}
