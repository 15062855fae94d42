package models

import (
	"fmt"
	"strings"

	"survey-go/internal/config"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB 全局数据库实例
var DB *gorm.DB

// InitDB 初始化数据库并迁移表结构
func InitDB(cfg *config.Config) error {
	db, err := Open(cfg.Database)
	if err != nil {
		return err
	}
	DB = db

	return AutoMigrate(DB)
}

// Open 按驱动打开数据库连接
func Open(dbCfg config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch dbCfg.Driver {
	case "postgres":
		dialector = postgres.Open(dbCfg.DSN)
	case "sqlite", "":
		dialector = sqlite.Open(sqliteDSN(dbCfg.Path))
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %s", dbCfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}
	return db, nil
}

// sqliteDSN 打开外键约束，级联删除依赖它
func sqliteDSN(path string) string {
	if strings.Contains(path, "_foreign_keys") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on"
}

// AutoMigrate 自动迁移数据库表
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Survey{},
		&Response{},
		&File{},
	)
}

// GetDB 获取数据库实例
func GetDB() *gorm.DB {
	return DB
}
