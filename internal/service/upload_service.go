package service

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"survey-go/internal/models"
	"survey-go/internal/repository"
	"survey-go/internal/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// pdfMagic PDF文件头
var pdfMagic = []byte("%PDF-")

// UploadResult 上传结果
type UploadResult struct {
	File     *models.File
	Mirrored bool
}

// UploadService 客户端生成的PDF上传，写本地后尽力复制到共享目录
type UploadService struct {
	responseRepo *repository.ResponseRepository
	fileRepo     *repository.FileRepository
	uploadDir    string
	mirrorDir    string
	maxBytes     int64
	logger       *logrus.Logger
}

// NewUploadService 创建上传服务，mirrorDir 为空时不复制
func NewUploadService(
	responseRepo *repository.ResponseRepository,
	fileRepo *repository.FileRepository,
	uploadDir, mirrorDir string,
	maxBytes int64,
	logger *logrus.Logger,
) *UploadService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &UploadService{
		responseRepo: responseRepo,
		fileRepo:     fileRepo,
		uploadDir:    uploadDir,
		mirrorDir:    mirrorDir,
		maxBytes:     maxBytes,
		logger:       logger,
	}
}

// Upload 保存 survey_<surveyId>_response_<responseId>.pdf 并记录文件
func (s *UploadService) Upload(surveyID, responseID string, src io.Reader) (*UploadResult, error) {
	if _, err := uuid.Parse(surveyID); err != nil {
		return nil, fmt.Errorf("%w: surveyId 格式错误", ErrInvalidUpload)
	}
	if _, err := uuid.Parse(responseID); err != nil {
		return nil, fmt.Errorf("%w: responseId 格式错误", ErrInvalidUpload)
	}

	response, err := s.responseRepo.GetByID(responseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrResponseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("查询回覆失败: %w", err)
	}
	if response.SurveyID != surveyID {
		return nil, fmt.Errorf("%w: 回覆不属于该问卷", ErrResponseNotFound)
	}

	reader := bufio.NewReader(src)
	head, _ := reader.Peek(len(pdfMagic))
	if !bytes.Equal(head, pdfMagic) {
		return nil, fmt.Errorf("%w: 不是PDF文件", ErrInvalidUpload)
	}

	var body io.Reader = reader
	if s.maxBytes > 0 {
		body = io.LimitReader(reader, s.maxBytes+1)
	}

	fileName := fmt.Sprintf("survey_%s_response_%s.pdf", surveyID, responseID)
	destPath := filepath.Join(s.uploadDir, fileName)

	// 先写临时文件，校验通过后再替换，失败的上传不影响已有文件
	tmpPath := filepath.Join(s.uploadDir, "."+fileName+"."+uuid.NewString()+".tmp")
	size, err := utils.WriteFile(tmpPath, body)
	if err != nil {
		return nil, fmt.Errorf("保存文件失败: %w", err)
	}
	if s.maxBytes > 0 && size > s.maxBytes {
		removeQuietly(tmpPath)
		return nil, fmt.Errorf("%w: 文件超过 %d 字节", ErrInvalidUpload, s.maxBytes)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		removeQuietly(tmpPath)
		return nil, fmt.Errorf("保存文件失败: %w", err)
	}

	file := &models.File{
		ResponseID:   responseID,
		FileName:     fileName,
		FileType:     "application/pdf",
		FileURL:      FileURL(fileName),
		FileSize:     size,
		FileCategory: models.FileCategoryAttachment,
	}
	if err := s.fileRepo.Create(file); err != nil {
		return nil, fmt.Errorf("保存文件记录失败: %w", err)
	}

	return &UploadResult{File: file, Mirrored: s.mirror(destPath, fileName)}, nil
}

// mirror 复制到共享目录，失败只记录日志
func (s *UploadService) mirror(srcPath, fileName string) bool {
	if s.mirrorDir == "" {
		return false
	}

	if err := utils.CopyFile(srcPath, filepath.Join(s.mirrorDir, fileName)); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"file":   fileName,
			"mirror": s.mirrorDir,
		}).Warn("复制到共享目录失败")
		return false
	}

	s.logger.WithFields(logrus.Fields{
		"file":   fileName,
		"mirror": s.mirrorDir,
	}).Info("已复制到共享目录")
	return true
}
