package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"survey-go/internal/pdf"
	"survey-go/internal/report"
	"survey-go/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SubmissionInput 一次签名提交
type SubmissionInput struct {
	SurveyID           string
	SurveyData         string
	OperatorSignature  string
	InspectorSignature string
}

// SubmissionResult 提交结果；Persisted 为 false 时 PDF 已生成但未落库
type SubmissionResult struct {
	FileName     string
	FileURL      string
	FileSize     int64
	ResponseID   string
	FileID       string
	Persisted    bool
	PersistError error
}

// SubmissionService 渲染报告、生成PDF、保存回覆
type SubmissionService struct {
	surveyRepo     *repository.SurveyRepository
	submissionRepo *repository.SubmissionRepository
	generator      pdf.Generator
	uploadDir      string
	logger         *logrus.Logger
	now            func() time.Time
}

// NewSubmissionService 创建提交服务
func NewSubmissionService(
	surveyRepo *repository.SurveyRepository,
	submissionRepo *repository.SubmissionRepository,
	generator pdf.Generator,
	uploadDir string,
	logger *logrus.Logger,
) *SubmissionService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &SubmissionService{
		surveyRepo:     surveyRepo,
		submissionRepo: submissionRepo,
		generator:      generator,
		uploadDir:      uploadDir,
		logger:         logger,
		now:            time.Now,
	}
}

// Submit 处理一次提交；模板不支持时在启动浏览器之前返回错误
func (s *SubmissionService) Submit(ctx context.Context, in SubmissionInput) (*SubmissionResult, error) {
	if strings.TrimSpace(in.SurveyData) == "" {
		return nil, fmt.Errorf("%w: 缺少調查數據", ErrInvalidSubmission)
	}
	if strings.TrimSpace(in.SurveyID) == "" {
		return nil, fmt.Errorf("%w: 缺少問卷ID", ErrInvalidSubmission)
	}

	answers, err := report.ParseAnswers([]byte(in.SurveyData))
	if err != nil {
		return nil, err
	}

	survey, err := s.surveyRepo.GetByID(in.SurveyID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSurveyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("查询问卷失败: %w", err)
	}

	now := s.now()
	html, err := report.Render(survey.Code, answers, report.Signatures{
		Operator:  in.OperatorSignature,
		Inspector: in.InspectorSignature,
	}, now)
	if err != nil {
		return nil, err
	}

	fileName := NewReportFileName(now)
	destPath := filepath.Join(s.uploadDir, fileName)
	if err := s.generator.Generate(ctx, html, destPath); err != nil {
		return nil, err
	}

	stat, err := os.Stat(destPath)
	if err != nil {
		return nil, fmt.Errorf("%w: 读取PDF文件失败: %v", pdf.ErrPDFGeneration, err)
	}

	result := &SubmissionResult{
		FileName: fileName,
		FileURL:  FileURL(fileName),
		FileSize: stat.Size(),
	}

	responseData, err := answers.MarshalJSON()
	if err == nil {
		response, file, saveErr := s.submissionRepo.SaveResponseWithFile(survey.ID, responseData, repository.FileInfo{
			FileName: fileName,
			FileType: "application/pdf",
			FileURL:  result.FileURL,
			FileSize: result.FileSize,
		})
		err = saveErr
		if err == nil {
			result.Persisted = true
			result.ResponseID = response.ID
			result.FileID = file.ID
		}
	}

	if err != nil {
		result.PersistError = err
		s.logger.WithError(err).WithFields(logrus.Fields{
			"survey_id": survey.ID,
			"file":      fileName,
		}).Error("PDF已生成但保存回覆失败")
		return result, nil
	}

	s.logger.WithFields(logrus.Fields{
		"survey_code": survey.Code,
		"response_id": result.ResponseID,
		"file":        fileName,
		"size":        result.FileSize,
	}).Info("问卷提交完成")

	return result, nil
}

// NewReportFileName survey_<毫秒时间戳>_<6位随机串>.pdf
func NewReportFileName(now time.Time) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return fmt.Sprintf("survey_%d_%s.pdf", now.UnixMilli(), random)
}
