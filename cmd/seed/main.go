package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"survey-go/internal/config"
	"survey-go/internal/dto"
	"survey-go/internal/models"
	"survey-go/internal/repository"
	"survey-go/internal/service"

	"github.com/sirupsen/logrus"
)

func main() {
	configFile := flag.String("config", "./config/config.yaml", "配置文件路径")
	manifestFile := flag.String("manifest", "./surveys.yaml", "问卷清单路径")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	manifest, err := LoadManifest(*manifestFile)
	if err != nil {
		logger.Fatal(err)
	}

	if err := models.InitDB(cfg); err != nil {
		logger.Fatalf("初始化数据库失败: %v", err)
	}

	surveyService := service.NewSurveyService(repository.NewSurveyRepository(models.GetDB()))
	created, skipped, err := seed(surveyService, manifest, logger)
	if err != nil {
		logger.Fatal(err)
	}
	logger.Infof("导入完成: 新增 %d, 跳过 %d", created, skipped)
}

// seed 导入清单中代码尚不存在的问卷
func seed(surveyService *service.SurveyService, manifest *Manifest, logger *logrus.Logger) (created, skipped int, err error) {
	for _, entry := range manifest.Surveys {
		schema, err := os.ReadFile(entry.SchemaFile)
		if err != nil {
			return created, skipped, err
		}

		survey, err := surveyService.Create(&dto.CreateSurveyRequest{
			Code:       entry.Code,
			Title:      entry.Title,
			JSONSchema: schema,
		})
		if errors.Is(err, service.ErrSurveyCodeExists) {
			logger.WithField("code", entry.Code).Info("问卷已存在，跳过")
			skipped++
			continue
		}
		if err != nil {
			return created, skipped, err
		}

		logger.WithFields(logrus.Fields{"code": survey.Code, "id": survey.ID}).Info("问卷已导入")
		created++
	}
	return created, skipped, nil
}
