package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	globalConfig *Config
	once         sync.Once
)

// LoadConfig 加载配置文件（进程内只加载一次）
func LoadConfig(configFile string) (*Config, error) {
	var err error
	var cfg *Config

	once.Do(func() {
		cfg, err = loadConfigFromFile(configFile)
		if err == nil {
			globalConfig = cfg
		}
	})

	return globalConfig, err
}

// loadConfigFromFile 从文件加载配置
func loadConfigFromFile(configFile string) (*Config, error) {
	// .env 不存在时忽略
	_ = godotenv.Load()

	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// SURVEY_DATABASE_DSN 覆盖 database.dsn
	v.SetEnvPrefix("SURVEY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvKeys(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	setDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("配置验证失败: %w", err)
	}

	return &cfg, nil
}

// bindEnvKeys 让 Unmarshal 能读到配置文件中未出现的环境变量
func bindEnvKeys(v *viper.Viper) {
	for _, key := range []string{
		"database.driver", "database.path", "database.dsn",
		"redis_service.enabled", "redis_service.host", "redis_service.password",
		"jwt.secret_key", "admin.username", "admin.password",
		"storage.upload_dir", "storage.mirror_dir",
		"browser.mode", "browser.bin_path",
		"log.level",
	} {
		_ = v.BindEnv(key)
	}
}

// setDefaults 设置默认值
func setDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3000
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "./database/advisory.db"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Redis.SlotTTL == 0 {
		cfg.Redis.SlotTTL = 120
	}
	if cfg.Redis.SlotKey == "" {
		cfg.Redis.SlotKey = "survey:render_slots:"
	}
	if cfg.JWT.Algorithm == "" {
		cfg.JWT.Algorithm = "HS256"
	}
	if cfg.JWT.ExpireMinutes == 0 {
		cfg.JWT.ExpireMinutes = 720
	}
	if cfg.Admin.Username == "" {
		cfg.Admin.Username = "admin"
	}
	if cfg.CORS.AllowMethods == nil {
		cfg.CORS.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	}
	if cfg.CORS.AllowHeaders == nil {
		cfg.CORS.AllowHeaders = []string{"*"}
	}
	if cfg.Storage.UploadDir == "" {
		cfg.Storage.UploadDir = "./upload_file/uploads"
	}
	if cfg.Storage.MaxUploadMB == 0 {
		cfg.Storage.MaxUploadMB = 20
	}
	if cfg.Browser.Mode == "" {
		cfg.Browser.Mode = BrowserModeDevelopment
	}
	if cfg.Browser.Mode == BrowserModeDeployed && cfg.Browser.BinPath == "" {
		cfg.Browser.BinPath = "/usr/bin/chromium"
	}
	if cfg.Browser.MaxConcurrent == 0 {
		cfg.Browser.MaxConcurrent = 2
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
}

// validateConfig 验证配置
func validateConfig(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("无效的服务器端口: %d", cfg.Server.Port)
	}

	if cfg.JWT.SecretKey == "" {
		return fmt.Errorf("JWT密钥不能为空")
	}

	if cfg.Admin.Password == "" {
		return fmt.Errorf("管理员密码不能为空")
	}

	switch cfg.Database.Driver {
	case "sqlite":
		dbDir := filepath.Dir(cfg.Database.Path)
		if _, err := os.Stat(dbDir); os.IsNotExist(err) {
			if err := os.MkdirAll(dbDir, 0755); err != nil {
				return fmt.Errorf("创建数据库目录失败: %w", err)
			}
		}
	case "postgres":
		if cfg.Database.DSN == "" {
			return fmt.Errorf("postgres 需要配置 database.dsn")
		}
	default:
		return fmt.Errorf("不支持的数据库驱动: %s", cfg.Database.Driver)
	}

	switch cfg.Browser.Mode {
	case BrowserModeDevelopment, BrowserModeDeployed:
	default:
		return fmt.Errorf("无效的浏览器模式: %s", cfg.Browser.Mode)
	}

	if cfg.Redis.Enabled && cfg.Redis.Host == "" {
		return fmt.Errorf("启用 Redis 时必须配置 redis_service.host")
	}

	return nil
}
