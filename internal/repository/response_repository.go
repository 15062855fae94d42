package repository

import (
	"survey-go/internal/models"

	"gorm.io/gorm"
)

// ResponseRepository 回覆数据访问层
type ResponseRepository struct {
	db *gorm.DB
}

// NewResponseRepository 创建回覆Repository
func NewResponseRepository(db *gorm.DB) *ResponseRepository {
	return &ResponseRepository{db: db}
}

// Create 创建回覆
func (r *ResponseRepository) Create(response *models.Response) error {
	return r.db.Create(response).Error
}

// GetByID 根据ID获取回覆
func (r *ResponseRepository) GetByID(id string) (*models.Response, error) {
	var response models.Response
	err := r.db.Where("id = ?", id).First(&response).Error
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// GetByIDWithFiles 获取回覆及其问卷和文件
func (r *ResponseRepository) GetByIDWithFiles(id string) (*models.Response, error) {
	var response models.Response
	err := r.db.Preload("Survey").Preload("Files", func(db *gorm.DB) *gorm.DB {
		return db.Order("uploaded_at ASC")
	}).Where("id = ?", id).First(&response).Error
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// ListBySurveyID 分页获取问卷的回覆
func (r *ResponseRepository) ListBySurveyID(surveyID string, offset, limit int) ([]models.Response, int64, error) {
	var responses []models.Response
	var total int64

	query := r.db.Model(&models.Response{}).Where("survey_id = ?", surveyID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Preload("Files").Where("survey_id = ?", surveyID).
		Order("submitted_at DESC").Offset(offset).Limit(limit).Find(&responses).Error
	return responses, total, err
}

// ListAllBySurveyID 获取问卷的全部回覆，按提交时间升序，用于导出
func (r *ResponseRepository) ListAllBySurveyID(surveyID string) ([]models.Response, error) {
	var responses []models.Response
	err := r.db.Where("survey_id = ?", surveyID).Order("submitted_at ASC").Find(&responses).Error
	return responses, err
}
