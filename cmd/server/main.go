package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"survey-go/internal/config"
	"survey-go/internal/models"
	"survey-go/internal/pdf"
	"survey-go/internal/router"
	"survey-go/internal/utils"
	"survey-go/pkg/limiter"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

func main() {
	configFile := flag.String("config", "./config/config.yaml", "配置文件路径")
	flag.Parse()

	// 加载配置
	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 初始化日志
	logger := newLogger(cfg.Log)

	// 初始化数据库
	if err := models.InitDB(cfg); err != nil {
		logger.Fatalf("初始化数据库失败: %v", err)
	}
	db := models.GetDB()

	if err := os.MkdirAll(cfg.Storage.UploadDir, 0755); err != nil {
		logger.Fatalf("创建上传目录失败: %v", err)
	}

	utils.InitValidator()

	// 初始化工具
	jwtManager := utils.NewJWTManager(
		cfg.JWT.SecretKey,
		cfg.JWT.Algorithm,
		cfg.JWT.GetExpireDuration(),
	)

	renderLimiter, redisClient := newRenderLimiter(cfg, logger)
	if redisClient != nil {
		defer redisClient.Close()
	}
	generator := pdf.NewRodGenerator(cfg.Browser, renderLimiter, logger)

	// 设置路由
	r, err := router.SetupRouter(router.Dependencies{
		Config:     cfg,
		JWTManager: jwtManager,
		Logger:     logger,
		DB:         db,
		Generator:  generator,
	})
	if err != nil {
		logger.Fatalf("初始化路由失败: %v", err)
	}

	addr := cfg.Server.GetAddress()
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		logger.Infof("服务器启动在 %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("启动服务器失败: %v", err)
		}
	}()

	if cfg.Server.ProductionMode {
		logger.Info("生产模式")
	} else {
		logger.Infof("开发模式: 管理员账号 %s", cfg.Admin.Username)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("正在关闭服务器...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Browser.GetTimeout()+5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("服务器关闭失败: %v", err)
	}
}

// newLogger 按配置创建日志
func newLogger(cfg config.LogConfig) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	if cfg.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// newRenderLimiter Redis 可用时跨实例限流，否则退回进程内限流
func newRenderLimiter(cfg *config.Config, logger *logrus.Logger) (limiter.Limiter, *redis.Client) {
	local := limiter.NewLocalLimiter(cfg.Browser.MaxConcurrent)
	if !cfg.Redis.Enabled || cfg.Browser.MaxConcurrent <= 0 {
		return local, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddress(),
		DB:       cfg.Redis.DB,
		Password: cfg.Redis.Password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warnf("Redis 连接失败，使用进程内限流: %v", err)
		_ = client.Close()
		return local, nil
	}

	logger.WithField("addr", cfg.Redis.GetAddress()).Info("使用 Redis 渲染槽位限流")
	return limiter.NewRedisLimiter(
		client,
		cfg.Browser.MaxConcurrent,
		cfg.Redis.SlotKey,
		cfg.Redis.GetSlotTTL(),
		time.Duration(cfg.Redis.WaitSeconds)*time.Second,
		logger,
	), client
}
