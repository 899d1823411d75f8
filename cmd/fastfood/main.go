package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/marcostmunhoz/fiap-tech-challenge-fastfood-monolith/pkg/infrastructure/config"
	"github.com/marcostmunhoz/fiap-tech-challenge-fastfood-monolith/pkg/infrastructure/event"
	"github.com/marcostmunhoz/fiap-tech-challenge-fastfood-monolith/pkg/infrastructure/gateway"
	"github.com/marcostmunhoz/fiap-tech-challenge-fastfood-monolith/pkg/infrastructure/mysql"
	"github.com/marcostmunhoz/fiap-tech-challenge-fastfood-monolith/pkg/infrastructure/transport"
	ordersvc "github.com/marcostmunhoz/fiap-tech-challenge-fastfood-monolith/pkg/order/domain/service"
	paymentmodel "github.com/marcostmunhoz/fiap-tech-challenge-fastfood-monolith/pkg/payment/domain/model"
	paymentsvc "github.com/marcostmunhoz/fiap-tech-challenge-fastfood-monolith/pkg/payment/domain/service"
)

func main() {
	app := &cli.App{
		Name:  "fastfood",
		Usage: "e-commerce backend: orders, customers and payment processing",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "apply pending database migrations",
				Action: runMigrations,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("application failed")
	}
}

func serve(_ *cli.Context) error {
	cfg, err := setup()
	if err != nil {
		return err
	}

	db, err := sqlx.Connect("mysql", cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	customerRepo := mysql.NewCustomerRepository(db)
	orderRepo := mysql.NewOrderRepository(db)
	paymentRepo := mysql.NewPaymentRepository(db)
	dispatcher := event.NewLogDispatcher()
	gatewayClient := gateway.NewClient(cfg.GatewayBaseURL, cfg.GatewayAPIKey)

	orderService := ordersvc.NewOrderService(orderRepo, dispatcher)
	paymentService := paymentsvc.NewPaymentService(
		gatewayClient,
		paymentRepo,
		orderRepo,
		paymentmodel.NewPaymentFactory(),
		dispatcher,
		cfg.GatewayTimeout,
	)

	handler := transport.NewHandler(orderService, paymentService, customerRepo)
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: transport.Router(handler)}

	go func() {
		log.WithField("addr", cfg.HTTPAddr).Info("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("failed to start server")
		}
	}()

	waitForKillSignal()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func runMigrations(_ *cli.Context) error {
	cfg, err := setup()
	if err != nil {
		return err
	}

	db, err := sqlx.Connect("mysql", cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	driver, err := migratemysql.WithInstance(db.DB, &migratemysql.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+cfg.MigrationsPath, "mysql", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}

	log.Info("migrations applied")
	return nil
}

func setup() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log.SetFormatter(&log.JSONFormatter{})
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	return cfg, nil
}

func waitForKillSignal() {
	killSignalChan := make(chan os.Signal, 1)
	signal.Notify(killSignalChan, os.Interrupt, syscall.SIGTERM)

	killSignal := <-killSignalChan
	switch killSignal {
	case os.Interrupt:
		log.Info("got SIGINT...")
	case syscall.SIGTERM:
		log.Info("got SIGTERM...")
	}
}
