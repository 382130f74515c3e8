package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humagin"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/carson-networks/finance-tracker/internal/auth"
	"github.com/carson-networks/finance-tracker/internal/handlers/dashboard"
	"github.com/carson-networks/finance-tracker/internal/handlers/status"
	"github.com/carson-networks/finance-tracker/internal/handlers/transaction"
	"github.com/carson-networks/finance-tracker/internal/handlers/user"
	"github.com/carson-networks/finance-tracker/internal/logging"
	"github.com/carson-networks/finance-tracker/internal/service"
)

const shutdownTimeout = 10 * time.Second

type pinger interface {
	Ping(ctx context.Context) error
}

type Rest struct {
	Logger  *logrus.Logger
	Port    string
	Service *service.Service
	Storage pinger
	Tokens  *auth.TokenIssuer
}

// Handler builds the router: plain status routes on gin and every JSON
// operation through huma.
func (r *Rest) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	statusHandler := status.NewHandler(r.Storage)
	router.GET("/status", gin.WrapF(logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler)))
	router.GET("/", gin.WrapF(logging.LoggingWrapper("Index", r.Logger, status.Index)))

	config := huma.DefaultConfig("Finance Tracker API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		auth.SecuritySchemeName: auth.SecurityScheme(),
	}
	humaAPI := humagin.New(router, config)
	humaAPI.UseMiddleware(logging.HumaMiddleware(r.Logger))
	humaAPI.UseMiddleware(auth.Middleware(humaAPI, r.Tokens))

	user.NewHandlers(r.Service.Auth).Register(humaAPI)
	transaction.NewCreateTransactionHandler(r.Service.Transaction).Register(humaAPI)
	transaction.NewListTransactionsHandler(r.Service.Transaction).Register(humaAPI)
	dashboard.NewGetDashboardHandler(r.Service.Dashboard).Register(humaAPI)

	return otelhttp.NewHandler(router, "finance-tracker")
}

// Serve listens until ctx is cancelled and then drains in-flight requests.
func (r *Rest) Serve(ctx context.Context) error {
	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.Handler(),
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
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
		return err
	case <-ctx.Done():
	}

	r.Logger.Info("HttpServer.Serve.shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.shutdown error")
		return err
	}
	return nil
}
