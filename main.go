package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finora-server/api"
	"github.com/carson-networks/finora-server/internal/config"
	"github.com/carson-networks/finora-server/internal/logging"
	"github.com/carson-networks/finora-server/internal/operator"
	"github.com/carson-networks/finora-server/internal/recurring"
	"github.com/carson-networks/finora-server/internal/service"
	"github.com/carson-networks/finora-server/internal/storage"
)

func main() {
	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	logger := logging.SetupLogging(envConfig.LogLevel)
	logger.Info("finora-server starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbStorage, err := storage.NewStorage(ctx, envConfig)
	if err != nil {
		logger.WithError(err).Fatal("storage.NewStorage")
		return
	}
	defer dbStorage.Close()

	delegator := operator.NewOperatorDelegator(dbStorage, envConfig.OperatorWorkers, logger)
	delegator.Start()
	defer delegator.Stop()

	svc := service.NewService(dbStorage, delegator, logger, service.Options{
		RecurringConcurrency: envConfig.RecurringConcurrency,
	})

	wg := sync.WaitGroup{}
	if envConfig.RecurringInterval > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			recurring.NewScheduler(svc.Recurring, envConfig.RecurringInterval, logger).Run(ctx)
		}()
	}

	httpRest := api.Rest{
		Logger:  logger,
		Port:    envConfig.HTTPPort,
		Storage: dbStorage,
		Service: svc,
	}
	if err := httpRest.Serve(ctx); err != nil {
		logger.WithError(err).Error("HttpServer.Serve")
	}

	stop()
	wg.Wait()
	logger.Info("finora-server stopped")
}
