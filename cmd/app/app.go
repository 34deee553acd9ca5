package app

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vietanh2810/event-registration-api/internal/api"
	"github.com/vietanh2810/event-registration-api/internal/config"
	"github.com/vietanh2810/event-registration-api/internal/db"
	"github.com/vietanh2810/event-registration-api/internal/logger"
	"github.com/vietanh2810/event-registration-api/internal/repository"
	"github.com/vietanh2810/event-registration-api/internal/repository/dao"
	"github.com/vietanh2810/event-registration-api/internal/service"
)

const defaultConfigPath = "./cmd/app/config.yml"

// bootstrap loads the configuration, the logger and the database shared by
// every command.
func bootstrap(configPath string) (*config.AppConfig, *gorm.DB, error) {
	conf, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger -> %w", err)
	}
	if err = logger.SetLevel(conf.API.LogLevel); err != nil {
		zap.L().Warn("keeping default log level", zap.Error(err))
	}

	dbURL := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database -> %w", err)
	}

	return conf, postgresDB, nil
}

func Start(configPath string) error {
	conf, postgresDB, err := bootstrap(configPath)
	if err != nil {
		return err
	}

	if err = dao.InitTables(postgresDB); err != nil {
		return fmt.Errorf("failed to migrate tables -> %w", err)
	}

	err = config.Watch(configPath, func(updated *config.AppConfig) {
		if err := logger.SetLevel(updated.API.LogLevel); err != nil {
			zap.L().Warn("ignoring log level change", zap.Error(err))
			return
		}
		zap.L().Info("log level changed", zap.Stringer("level", logger.Level()))
	})
	if err != nil {
		zap.L().Warn("config file is not watched", zap.String("path", configPath), zap.Error(err))
	}

	s, err := api.NewServer(conf, postgresDB)
	if err != nil {
		return fmt.Errorf("failed to initialize server -> %w", err)
	}

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}

func Migrate(configPath string) error {
	_, postgresDB, err := bootstrap(configPath)
	if err != nil {
		return err
	}

	if err = dao.InitTables(postgresDB); err != nil {
		return fmt.Errorf("failed to migrate tables -> %w", err)
	}

	zap.L().Info("tables migrated")

	return nil
}

func Seed(ctx context.Context, configPath string) error {
	_, postgresDB, err := bootstrap(configPath)
	if err != nil {
		return err
	}

	if err = dao.InitTables(postgresDB); err != nil {
		return fmt.Errorf("failed to migrate tables -> %w", err)
	}

	events := repository.NewEventRepository(dao.NewEventDAO(postgresDB))
	registrations := repository.NewRegistrationRepository(dao.NewRegistrationDAO(postgresDB))
	svc := service.NewAdminService(events, registrations)

	created, err := seedEvents(ctx, svc, sampleEvents)
	if err != nil {
		return fmt.Errorf("failed to seed events -> %w", err)
	}

	zap.L().Info("events seeded", zap.Int("created", created), zap.Int("skipped", len(sampleEvents)-created))

	return nil
}
