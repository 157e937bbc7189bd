package fx

import (
	"go.uber.org/fx"

	"wvw-tracker/internal/api"
	"wvw-tracker/internal/config"
	"wvw-tracker/internal/database"
	"wvw-tracker/internal/logger"
	"wvw-tracker/internal/repository"
	"wvw-tracker/internal/server"
	"wvw-tracker/internal/service"
)

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	// repos
	fx.Provide(repository.NewFightRepository),
	fx.Provide(repository.NewAccountRepository),
	// api client
	fx.Provide(api.NewGW2Client),
	// svc
	fx.Provide(service.NewReportService),
	fx.Provide(service.NewAccountService),
	// server
	fx.Provide(server.New),
)
