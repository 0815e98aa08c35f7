package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/Benmwania/ecomart/config"
	"github.com/Benmwania/ecomart/internal/delivery"
	"github.com/Benmwania/ecomart/internal/delivery/http"
	"github.com/Benmwania/ecomart/internal/delivery/http/middleware"
	"github.com/Benmwania/ecomart/internal/delivery/http/router/handler"
	"github.com/Benmwania/ecomart/internal/domain/gateway"
	"github.com/Benmwania/ecomart/internal/infra/backend"
	logs "github.com/Benmwania/ecomart/internal/infra/log"
	"github.com/Benmwania/ecomart/internal/infra/payment"
	"github.com/Benmwania/ecomart/internal/infra/sessionstore"
	"github.com/Benmwania/ecomart/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectGateway(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		backend.NewClient,
	)
}

func injectGateway() fx.Option {
	return fx.Options(
		fx.Provide(
			backend.NewAuthGateway,
			backend.NewCatalogGateway,
			backend.NewCartGateway,
			backend.NewOrderGateway,
			backend.NewPaymentGateway,
			backend.NewAIGateway,
			backend.NewSellerGateway,
			payment.NewStripeConfirmer,
			newSessionStore,
		),
	)
}

// newSessionStore picks Redis-backed session persistence when it is
// configured, falling back to the in-process store for single-instance
// deployments.
func newSessionStore(lc fx.Lifecycle, cfg *config.Config, logger *slog.Logger) (gateway.SessionStore, error) {
	if cfg.Redis != nil && cfg.Redis.Enabled {
		return sessionstore.NewRedisStore(lc, cfg, logger)
	}

	logger.Info("Redis not configured, using in-memory session store")

	return sessionstore.NewMemoryStore(), nil
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewSessionService,
			impl.NewCatalogService,
			impl.NewCartService,
			impl.NewOrderService,
			impl.NewPaymentService,
			impl.NewCheckoutService,
			impl.NewRecommendationService,
			impl.NewSellerService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewSessionMiddleware,
			middleware.NewErrorMiddleware,
			middleware.NewLoggerMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewCatalogHandler,
			handler.NewCartHandler,
			handler.NewOrderHandler,
			handler.NewCheckoutHandler,
			handler.NewRecommendationHandler,
			handler.NewSellerHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
