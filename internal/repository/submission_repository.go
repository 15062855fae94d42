package repository

import (
	"fmt"

	"survey-go/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FileInfo 已写入磁盘的报告文件
type FileInfo struct {
	FileName string
	FileType string
	FileURL  string
	FileSize int64
}

// SubmissionRepository 提交落库，回覆与文件在同一事务中
type SubmissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository 创建提交Repository
func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// SaveResponseWithFile 查问卷、写回覆、写签名文件记录，任一步失败全部回滚
func (r *SubmissionRepository) SaveResponseWithFile(surveyID string, responseData []byte, info FileInfo) (*models.Response, *models.File, error) {
	var response *models.Response
	var file *models.File

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var survey models.Survey
		if err := tx.Select("id").Where("id = ?", surveyID).First(&survey).Error; err != nil {
			return fmt.Errorf("查询问卷失败: %w", err)
		}

		response = &models.Response{
			SurveyID:     survey.ID,
			ResponseData: datatypes.JSON(responseData),
		}
		if err := tx.Create(response).Error; err != nil {
			return fmt.Errorf("保存回覆失败: %w", err)
		}

		file = &models.File{
			ResponseID:   response.ID,
			FileName:     info.FileName,
			FileType:     info.FileType,
			FileURL:      info.FileURL,
			FileSize:     info.FileSize,
			FileCategory: models.FileCategorySignature,
		}
		if err := tx.Create(file).Error; err != nil {
			return fmt.Errorf("保存文件记录失败: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return response, file, nil
}
