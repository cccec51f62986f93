package main

import (
	"Postcraft/internal/api/config"
	"Postcraft/internal/pkg/database"
	"Postcraft/internal/pkg/llm"
	"Postcraft/internal/pkg/logger"
	"Postcraft/internal/pkg/mongo"
	"Postcraft/internal/pkg/redis"
	"Postcraft/internal/pkg/security"
	"Postcraft/internal/wire"
	"context"

	"github.com/spf13/cobra"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
)

var configDir string

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "promptgen",
		Short:         "Postcraft admin tool",
		Long:          "Postcraft admin tool: batch prompt generation, stale prompt archiving and operator tokens.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "./configs", "directory containing config.yaml")

	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newArchiveCmd())
	rootCmd.AddCommand(newTokenCmd())

	return rootCmd
}

func loadConfig() (*config.Config, error) {
	if err := config.LoadConfigFrom(configDir); err != nil {
		return nil, err
	}
	logger.InitLogger()
	security.Configure(config.Cfg.JWT)
	return config.Cfg, nil
}

// bootstrap 建立与 API 服务相同的依赖，返回的 cleanup 释放连接
func bootstrap(ctx context.Context) (*wire.Services, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	dbCfg := cfg.DB
	db, err := database.NewGormDB(&dbCfg)
	if err != nil {
		return nil, nil, err
	}
	if err = redis.InitRedis(cfg.Redis); err != nil {
		return nil, nil, err
	}

	var mongoDB *mongodriver.Database
	if cfg.Mongo.Enabled {
		if mongoDB, err = mongo.InitMongo(cfg.Mongo); err != nil {
			_ = redis.Close()
			return nil, nil, err
		}
	}

	client, err := llm.NewClient(cfg.LLM)
	if err != nil {
		_ = redis.Close()
		return nil, nil, err
	}

	cleanup := func() {
		_ = redis.Close()
		if mongoDB != nil {
			_ = mongoDB.Client().Disconnect(ctx)
		}
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return wire.BuildServices(db, mongoDB, client, cfg), cleanup, nil
}
