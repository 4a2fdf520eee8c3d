package main

import (
	"context"
	"log/slog"
	"os"

	"housing/config"
	"housing/internal/delivery"
	"housing/internal/delivery/http"
	"housing/internal/delivery/http/middleware"
	"housing/internal/delivery/http/router/handler"
	"housing/internal/infra/auth"
	logs "housing/internal/infra/log"
	"housing/internal/infra/mail"
	"housing/internal/infra/oauth"
	"housing/internal/infra/persistence/postgres"
	redisinfra "housing/internal/infra/redis"
	"housing/internal/infra/verification"
	"housing/internal/usecase/impl"

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
		injectRepo(),
		injectService(),
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
		postgres.New,
		redisinfra.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewTransactionManager,
			redisinfra.NewRefreshTokenStore,
			redisinfra.NewVerificationCodeStore,
			redisinfra.NewVerificationStatusStore,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			verification.NewCodeGenerator,
			mail.NewSMTPSender,
			fx.Annotate(
				oauth.NewGoogleClient,
				fx.ResultTags(`group:"oauth_clients"`),
			),
			fx.Annotate(
				oauth.NewKakaoClient,
				fx.ResultTags(`group:"oauth_clients"`),
			),
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewEmailVerificationService,
			impl.NewUserService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
			middleware.NewRequestIDMiddleware,
			middleware.NewLoggerMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewEmailHandler,
			handler.NewUserHandler,
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
