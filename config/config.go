package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// DriverMySQL 生产环境数据库
	DriverMySQL = "mysql"
	// DriverSQLite 本地开发/测试数据库
	DriverSQLite = "sqlite"
)

// Config 应用配置结构
type Config struct {
	Database   DatabaseConfig `mapstructure:"database"`
	Server     ServerConfig   `mapstructure:"server"`
	Session    SessionConfig  `mapstructure:"session"`
	Catalog    CatalogConfig  `mapstructure:"catalog"`
	Seed       SeedConfig     `mapstructure:"seed"`
	ConfigFile string         `mapstructure:"-"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver     string `mapstructure:"driver"`
	Host       string `mapstructure:"host"`
	Port       string `mapstructure:"port"`
	User       string `mapstructure:"user"`
	Password   string `mapstructure:"password"`
	Name       string `mapstructure:"name"`
	SQLitePath string `mapstructure:"sqlite_path"`
	LogLevel   string `mapstructure:"log_level"` // silent/error/warn/info
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // gin模式：debug/release/test
}

// SessionConfig 选择会话配置
type SessionConfig struct {
	MaxSessions     int32         `mapstructure:"max_sessions"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// CatalogConfig 目录数据缓存配置
type CatalogConfig struct {
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// SeedConfig 初始数据配置
type SeedConfig struct {
	File string `mapstructure:"file"`
}

// DSN 构建MySQL连接串
func (d DatabaseConfig) DSN() string {
	mc := mysqldriver.NewConfig()
	mc.User = d.User
	mc.Passwd = d.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(d.Host, d.Port)
	mc.DBName = d.Name
	mc.ParseTime = true
	mc.Loc = time.Local
	mc.Params = map[string]string{"charset": "utf8mb4"}
	return mc.FormatDSN()
}

// Validate 校验配置
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverMySQL:
		if c.Database.Host == "" || c.Database.Name == "" {
			return errors.New("database host and name are required for mysql")
		}
	case DriverSQLite:
		if c.Database.SQLitePath == "" {
			return errors.New("database sqlite_path is required for sqlite")
		}
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	if c.Server.Port == "" {
		return errors.New("server port is required")
	}
	if c.Session.MaxSessions <= 0 {
		return errors.New("session max_sessions must be positive")
	}
	return nil
}

// Load 加载配置：默认值 < 配置文件 < 环境变量(CATALOG_*) < 命令行参数
func Load(cmd *cobra.Command, configFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)
	configureEnv(v)

	if err := configureFile(v, configFile); err != nil {
		return nil, err
	}

	if err := bindFlags(v, cmd); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	cfg.ConfigFile = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults 注册默认值
func setDefaults(v *viper.Viper) {
	v.SetDefault("database.driver", DriverMySQL)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "3306")
	v.SetDefault("database.user", "root")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "vehicle_catalog")
	v.SetDefault("database.sqlite_path", "vehicle_catalog.db")
	v.SetDefault("database.log_level", "warn")

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")

	v.SetDefault("session.max_sessions", 100)
	v.SetDefault("session.ttl", 30*time.Minute)
	v.SetDefault("session.cleanup_interval", 5*time.Minute)

	v.SetDefault("catalog.cache_ttl", 30*time.Second)

	v.SetDefault("seed.file", "")
}

// configureEnv 环境变量，例如 CATALOG_DATABASE_HOST
func configureEnv(v *viper.Viper) {
	v.SetEnvPrefix("CATALOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
}

// configureFile 指定文件必须存在；未指定时在当前目录查找 catalog.yaml
func configureFile(v *viper.Viper, configFile string) error {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %q: %w", configFile, err)
		}
		return nil
	}

	v.SetConfigName("catalog")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "vehicle-catalog"))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

// flagKeys 命令行参数与配置键的对应关系
var flagKeys = map[string]string{
	"port":      "server.port",
	"mode":      "server.mode",
	"driver":    "database.driver",
	"sqlite":    "database.sqlite_path",
	"seed-file": "seed.file",
}

// bindFlags 绑定命令及其父命令上已声明的参数
func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	if cmd == nil {
		return nil
	}

	for name, key := range flagKeys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			flag = cmd.InheritedFlags().Lookup(name)
		}
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("binding flag %q: %w", name, err)
		}
	}
	return nil
}
