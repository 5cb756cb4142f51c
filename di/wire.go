//go:build wireinject
// +build wireinject

package di

import (
	"shareit/config"
	"shareit/infras/otel"
	"shareit/infras/postgres"
	"shareit/infras/redis"
	"shareit/permissions"
	"shareit/shared/cache"
	"shareit/transport/http"
	"shareit/transport/http/middleware"
	"shareit/transport/http/router"

	bookingRepository "shareit/internal/domains/booking/repository"
	bookingService "shareit/internal/domains/booking/service"
	commentRepository "shareit/internal/domains/comment/repository"
	itemRepository "shareit/internal/domains/item/repository"
	itemService "shareit/internal/domains/item/service"
	requestRepository "shareit/internal/domains/request/repository"
	requestService "shareit/internal/domains/request/service"
	userRepository "shareit/internal/domains/user/repository"
	userService "shareit/internal/domains/user/service"

	gatewayClient "shareit/internal/gateway/client"
	gatewayHandler "shareit/internal/gateway/handler"

	bookingHandler "shareit/internal/handlers/booking"
	itemHandler "shareit/internal/handlers/item"
	requestHandler "shareit/internal/handlers/request"
	userHandler "shareit/internal/handlers/user"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	otel.New,
	redis.New,
)

var persistence = wire.NewSet(
	postgres.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewIdentityMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var repositories = wire.NewSet(
	userRepository.New,
	itemRepository.New,
	commentRepository.New,
	requestRepository.New,
	bookingRepository.New,
)

var domains = wire.NewSet(
	repositories,
	userService.New,
	itemService.New,
	bookingService.New,
	requestService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	userHandler.New,
	itemHandler.New,
	bookingHandler.New,
	requestHandler.New,
	router.New,
	wire.Bind(new(http.Routes), new(router.Router)),
)

var gatewayRouting = wire.NewSet(
	gatewayClient.New,
	gatewayHandler.New,
	wire.Bind(new(http.Routes), new(gatewayHandler.Handler)),
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		persistence,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeGateway() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		gatewayRouting,
		http.NewGateway,
	)

	return &http.HTTP{}
}
