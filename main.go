package main

import (
	"flag"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ghaggin/policy-portal/internal/clock"
	"github.com/ghaggin/policy-portal/internal/config"
	"github.com/ghaggin/policy-portal/internal/middleware"
	"github.com/ghaggin/policy-portal/internal/policyapi"
	"github.com/ghaggin/policy-portal/internal/portal"
	"github.com/ghaggin/policy-portal/internal/repository"
)

func main() {
	var configPath = flag.String("config", "config/config.yaml", "path to the yaml config file")
	flag.Parse()

	newConfig := func() (*config.Config, error) {
		return config.Load(*configPath)
	}

	app := fx.New(
		fx.Provide(
			newConfig,
			newLogger,
			clock.New,
			repository.NewStore,
			middleware.NewSessionManager,
			policyapi.New,
		),
		portal.Module,
		fx.Invoke(portal.RegisterHooks),
	)

	app.Run()
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	if cfg.Env == config.EnvDevelopment {
		zapCfg = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
