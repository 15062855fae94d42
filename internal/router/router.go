package router

import (
	"survey-go/internal/config"
	"survey-go/internal/handler"
	"survey-go/internal/middleware"
	"survey-go/internal/pdf"
	"survey-go/internal/repository"
	"survey-go/internal/service"
	"survey-go/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Dependencies 路由需要的外部依赖
type Dependencies struct {
	Config     *config.Config
	JWTManager *utils.JWTManager
	Logger     *logrus.Logger
	DB         *gorm.DB
	Generator  pdf.Generator
}

// SetupRouter 设置路由
func SetupRouter(deps Dependencies) (*gin.Engine, error) {
	cfg := deps.Config

	// 设置Gin模式
	if cfg.Server.ProductionMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// 全局中间件
	r.Use(middleware.LoggerMiddleware(deps.Logger))
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.CORS))

	// 健康检查
	r.GET("/", func(c *gin.Context) {
		resp := gin.H{
			"message": "化學品安全檢查問卷服務 API",
			"version": "1.0.0",
		}
		if reporter, ok := deps.Generator.(pdf.SlotReporter); ok {
			if usage, err := reporter.RenderSlots(c.Request.Context()); err == nil {
				resp["render_slots"] = usage
			} else {
				deps.Logger.WithError(err).Warn("读取渲染槽位失败")
			}
		}
		c.JSON(200, resp)
	})

	// 初始化Repository
	surveyRepo := repository.NewSurveyRepository(deps.DB)
	responseRepo := repository.NewResponseRepository(deps.DB)
	fileRepo := repository.NewFileRepository(deps.DB)
	submissionRepo := repository.NewSubmissionRepository(deps.DB)

	// 初始化Service
	authService, err := service.NewAuthService(cfg.Admin, deps.JWTManager)
	if err != nil {
		return nil, err
	}
	surveyService := service.NewSurveyService(surveyRepo)
	submissionService := service.NewSubmissionService(surveyRepo, submissionRepo, deps.Generator, cfg.Storage.UploadDir, deps.Logger)
	uploadService := service.NewUploadService(responseRepo, fileRepo, cfg.Storage.UploadDir, cfg.Storage.MirrorDir, cfg.Storage.MaxUploadBytes(), deps.Logger)
	fileService := service.NewFileService(cfg.Storage.UploadDir)
	responseService := service.NewResponseService(surveyRepo, responseRepo)

	// 初始化Handler
	maxBody := cfg.Storage.MaxUploadBytes()
	authHandler := handler.NewAuthHandler(authService)
	surveyHandler := handler.NewSurveyHandler(surveyService)
	submissionHandler := handler.NewSubmissionHandler(submissionService, maxBody)
	uploadHandler := handler.NewUploadHandler(uploadService, maxBody)
	fileHandler := handler.NewFileHandler(fileService)
	adminHandler := handler.NewAdminHandler(responseService)

	api := r.Group("/api")
	{
		// 公开路由
		api.GET("/surveys/:codeOrId", surveyHandler.GetSurvey)
		api.POST("/generate-pdf", submissionHandler.GeneratePDF)
		api.POST("/upload-pdf", uploadHandler.UploadPDF)
		api.GET("/serve-file/*path", fileHandler.ServeFile)
		api.HEAD("/serve-file/*path", fileHandler.ServeFile)

		api.POST("/admin/login", authHandler.Login)

		// 管理员接口
		adminGroup := api.Group("/admin")
		adminGroup.Use(middleware.AuthMiddleware(deps.JWTManager), middleware.AdminMiddleware())
		{
			adminGroup.GET("/me", authHandler.GetMe)

			adminGroup.GET("/surveys", surveyHandler.ListSurveys)
			adminGroup.POST("/surveys", surveyHandler.CreateSurvey)
			adminGroup.GET("/surveys/:id/responses", adminHandler.ListResponses)
			adminGroup.GET("/surveys/:id/responses/export", adminHandler.ExportResponses)

			adminGroup.GET("/responses/:id", adminHandler.GetResponse)
			adminGroup.GET("/responses/:id/preview", adminHandler.PreviewResponse)
		}
	}

	return r, nil
}
