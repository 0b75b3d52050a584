package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/banka1/banking-service/internal/adapter/collaborator"
	"github.com/banka1/banking-service/internal/adapter/http/controller"
	"github.com/banka1/banking-service/internal/adapter/http/middleware"
	"github.com/banka1/banking-service/internal/adapter/http/router"
	"github.com/banka1/banking-service/internal/adapter/repository/memory"
	"github.com/banka1/banking-service/internal/adapter/repository/postgres"
	"github.com/banka1/banking-service/internal/config"
	"github.com/banka1/banking-service/internal/domain"
	"github.com/banka1/banking-service/internal/logger"
	"github.com/banka1/banking-service/internal/metrics"
	"github.com/banka1/banking-service/internal/notification"
	"github.com/banka1/banking-service/internal/usecase/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger.Init()
	defer logger.Sync()

	var (
		accountRepo domain.AccountRepository
		txRepo      domain.TransactionRepository
		rateRepo    domain.RateChangeRepository
	)

	if cfg.DatabaseDSN == "" {
		store := memory.NewStore()
		accountRepo = store
		txRepo = store
		rateRepo = store
		logger.Info("running on in-memory store", nil)
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		db, err := postgres.Open(ctx, cfg.DatabaseDSN)
		if err != nil {
			cancel()
			log.Fatalf("open database: %v", err)
		}
		if err := postgres.RunMigrations(ctx, db, cfg.MigrationsDir); err != nil {
			cancel()
			log.Fatalf("run migrations: %v", err)
		}
		cancel()
		defer db.Close()

		accountRepo = postgres.NewAccountRepository(db)
		txRepo = postgres.NewTransactionRepository(db)
		rateRepo = postgres.NewRateChangeRepository(db)
	}

	numberGen, err := services.NewAccountNumberGenerator(cfg.BankPrefix)
	if err != nil {
		log.Fatalf("account number generator: %v", err)
	}

	collector := metrics.NewCollector()
	dispatcher := notification.NewDispatcher(notification.LogSender{}, cfg.DestinationEmail, cfg.NotifyMaxRetries)
	defer dispatcher.Close()

	customers := collaborator.NewCustomerClient(cfg.UserServiceURL)
	cards := collaborator.NewCardClient(cfg.CardServiceURL)

	accountService := services.NewAccountService(
		accountRepo, txRepo, customers, cards,
		dispatcher, collector, numberGen, cfg.AccountNumberTries, nil,
	)
	rateService := services.NewRateService(rateRepo, nil)
	exchangeService := services.NewExchangeService(
		accountRepo, txRepo, rateService, customers,
		dispatcher, collector, nil,
	)

	mux := router.New(
		collector.Handler(),
		controller.NewAccountController(accountService),
		controller.NewExchangeController(exchangeService),
		controller.NewRateController(rateService),
	)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      middleware.Metrics(collector)(mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("banking service listening", logger.Fields{"addr": cfg.HTTPAddr})
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stop:
		logger.Info("shutting down", logger.Fields{"signal": sig.String()})
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("server shutdown", err, nil)
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("serve: %v", err)
		}
	}
}
