package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finora-server/internal/handlers/v1/budget"
	"github.com/carson-networks/finora-server/internal/handlers/v1/category"
	"github.com/carson-networks/finora-server/internal/handlers/v1/forecast"
	"github.com/carson-networks/finora-server/internal/handlers/v1/goal"
	"github.com/carson-networks/finora-server/internal/handlers/v1/portfolio"
	"github.com/carson-networks/finora-server/internal/handlers/v1/recurring"
	"github.com/carson-networks/finora-server/internal/handlers/v1/savings"
	"github.com/carson-networks/finora-server/internal/handlers/v1/stats"
	"github.com/carson-networks/finora-server/internal/handlers/v1/status"
	"github.com/carson-networks/finora-server/internal/handlers/v1/transaction"
	"github.com/carson-networks/finora-server/internal/logging"
	"github.com/carson-networks/finora-server/internal/service"
	"github.com/carson-networks/finora-server/internal/storage"
)

const shutdownTimeout = 10 * time.Second

type registrar interface {
	Register(api huma.API)
}

type Rest struct {
	Logger  *logrus.Logger
	Port    string
	Storage *storage.Storage
	Service *service.Service
}

// Routes builds the mux serving /status and the v1 API.
func (r *Rest) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	statusHandler := status.NewHandler(r.Storage)
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	api := humago.New(mux, huma.DefaultConfig("Finora API", "1.0.0"))
	api.UseMiddleware(logging.Middleware(r.Logger))

	svc := r.Service
	handlers := []registrar{
		transaction.NewCreateTransactionHandler(svc.Transaction),
		transaction.NewGetTransactionHandler(svc.Transaction),
		transaction.NewListTransactionsHandler(svc.Transaction),
		transaction.NewUpdateTransactionHandler(svc.Transaction),
		transaction.NewDeleteTransactionHandler(svc.Transaction),
		category.NewHandler(svc.Category),
		budget.NewHandler(svc.Budget),
		stats.NewHandler(svc.Stats),
		goal.NewCreateGoalHandler(svc.Goal),
		goal.NewUpdateGoalHandler(svc.Goal),
		goal.NewGoalProgressHandler(svc.Goal),
		goal.NewContributionHandler(svc.Goal),
		recurring.NewHandler(svc.Recurring),
		forecast.NewHandler(svc.Forecast),
		savings.NewHandler(svc.Savings),
		portfolio.NewHandler(svc.Portfolio),
	}
	for _, h := range handlers {
		h.Register(api)
	}

	return mux
}

// Serve listens until ctx is cancelled and then drains in-flight requests.
func (r *Rest) Serve(ctx context.Context) error {
	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.Routes(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
			return err
		}
		return nil
	case <-ctx.Done():
	}

	r.Logger.Info("HttpServer.Serve.shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
