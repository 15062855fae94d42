package config

import (
	"fmt"
	"time"
)

// Config 应用配置结构
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis_service"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Admin    AdminConfig    `mapstructure:"admin"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Browser  BrowserConfig  `mapstructure:"browser"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	ProductionMode bool   `mapstructure:"production_mode"`
}

// GetAddress 获取服务器地址
func (s *ServerConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // sqlite, postgres
	Path   string `mapstructure:"path"`
	DSN    string `mapstructure:"dsn"`
}

// RedisConfig Redis配置，仅用于跨实例的渲染槽位限制
type RedisConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	DB          int    `mapstructure:"db"`
	Password    string `mapstructure:"password"`
	SlotTTL     int    `mapstructure:"slot_ttl"`
	SlotKey     string `mapstructure:"slot_key"`
	WaitSeconds int    `mapstructure:"max_wait_time"`
}

// GetAddress 获取Redis地址
func (r *RedisConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// GetSlotTTL 获取槽位过期时间
func (r *RedisConfig) GetSlotTTL() time.Duration {
	return time.Duration(r.SlotTTL) * time.Second
}

// JWTConfig JWT配置
type JWTConfig struct {
	SecretKey     string `mapstructure:"secret_key"`
	Algorithm     string `mapstructure:"algorithm"`
	ExpireMinutes int    `mapstructure:"expire_minutes"`
}

// GetExpireDuration 获取过期时间
func (j *JWTConfig) GetExpireDuration() time.Duration {
	return time.Duration(j.ExpireMinutes) * time.Minute
}

// AdminConfig 管理员配置，Password 可以是明文或 bcrypt 哈希
type AdminConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// CORSConfig CORS配置
type CORSConfig struct {
	Origins          []string `mapstructure:"origins"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	AllowMethods     []string `mapstructure:"allow_methods"`
	AllowHeaders     []string `mapstructure:"allow_headers"`
}

// StorageConfig 文件存储配置
type StorageConfig struct {
	UploadDir   string `mapstructure:"upload_dir"`
	MirrorDir   string `mapstructure:"mirror_dir"`
	MaxUploadMB int    `mapstructure:"max_upload_mb"`
}

// MaxUploadBytes 上传大小上限
func (s *StorageConfig) MaxUploadBytes() int64 {
	return int64(s.MaxUploadMB) << 20
}

// 浏览器运行模式
const (
	BrowserModeDevelopment = "development"
	BrowserModeDeployed    = "deployed"
)

// BrowserConfig 无头浏览器配置；MaxConcurrent 为 0 时取默认值 2，负数表示不限制
type BrowserConfig struct {
	Mode           string `mapstructure:"mode"`
	BinPath        string `mapstructure:"bin_path"`
	NoSandbox      bool   `mapstructure:"no_sandbox"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	MaxConcurrent  int    `mapstructure:"max_concurrent"`
}

// GetTimeout 获取渲染超时，0 表示不限制
func (b *BrowserConfig) GetTimeout() time.Duration {
	return time.Duration(b.TimeoutSeconds) * time.Second
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json, text
}
