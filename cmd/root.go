package cmd

import (
	"fmt"

	"vehicle-catalog-api/config"
	"vehicle-catalog-api/database"
	"vehicle-catalog-api/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var configFile string

// NewRootCommand 创建根命令
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "vehicle-catalog-api",
		Short:         "Vehicle catalog API with cascading brand/model/generation selectors",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default: ./catalog.yaml if present)")
	root.PersistentFlags().String("driver", "", "database driver: mysql or sqlite")
	root.PersistentFlags().String("sqlite", "", "sqlite database path")

	serve := newServeCommand()
	root.AddCommand(serve, newMigrateCommand(), newSeedCommand())

	// 不带子命令时启动服务
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())
	return root
}

// Execute 执行命令
func Execute() error {
	root := NewRootCommand()
	if err := root.Execute(); err != nil {
		utils.Logger().Error("command failed", zap.Error(err))
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
		return err
	}
	return nil
}

// bootstrap 加载配置、初始化日志并连接数据库
func bootstrap(cmd *cobra.Command) (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load(cmd, configFile)
	if err != nil {
		return nil, nil, err
	}

	logger, err := utils.InitLogger(cfg.Server.Mode)
	if err != nil {
		return nil, nil, err
	}
	if cfg.ConfigFile != "" {
		logger.Info("config loaded", zap.String("file", cfg.ConfigFile))
	}

	if err := database.InitDB(cfg.Database); err != nil {
		return nil, nil, err
	}
	logger.Info("database connected", zap.String("driver", cfg.Database.Driver))
	return cfg, database.DB, nil
}

// runSeed 从文件导入种子数据
func runSeed(db *gorm.DB, path string) (*database.SeedStats, error) {
	seed, err := database.LoadSeedFile(path)
	if err != nil {
		return nil, err
	}

	stats, err := database.Seed(db, seed, func(percentage int, text, detail string) {
		utils.Logger().Info(text, zap.Int("progress", percentage), zap.String("brand", detail))
	})
	if err != nil {
		return nil, err
	}

	utils.Logger().Info("seed imported",
		zap.String("file", path),
		zap.Int("brands", stats.Brands),
		zap.Int("models", stats.Models),
		zap.Int("generations", stats.Generations),
		zap.Int("equipment", stats.Equipment))
	return stats, nil
}
