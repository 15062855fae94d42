package repository

import (
	"errors"

	"survey-go/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SurveyRepository 问卷数据访问层
type SurveyRepository struct {
	db *gorm.DB
}

// NewSurveyRepository 创建问卷Repository
func NewSurveyRepository(db *gorm.DB) *SurveyRepository {
	return &SurveyRepository{db: db}
}

// Create 创建问卷
func (r *SurveyRepository) Create(survey *models.Survey) error {
	return r.db.Create(survey).Error
}

// GetByID 根据ID获取问卷
func (r *SurveyRepository) GetByID(id string) (*models.Survey, error) {
	var survey models.Survey
	err := r.db.Where("id = ?", id).First(&survey).Error
	if err != nil {
		return nil, err
	}
	return &survey, nil
}

// GetByCode 根据代码获取问卷
func (r *SurveyRepository) GetByCode(code string) (*models.Survey, error) {
	var survey models.Survey
	err := r.db.Where("code = ?", code).First(&survey).Error
	if err != nil {
		return nil, err
	}
	return &survey, nil
}

// GetByIDOrCode 先按UUID查，查不到再按代码查
func (r *SurveyRepository) GetByIDOrCode(codeOrID string) (*models.Survey, error) {
	if _, err := uuid.Parse(codeOrID); err == nil {
		survey, err := r.GetByID(codeOrID)
		if err == nil {
			return survey, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	return r.GetByCode(codeOrID)
}

// ExistsByCode 代码是否已存在
func (r *SurveyRepository) ExistsByCode(code string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Survey{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

// List 获取问卷列表，不含 schema
func (r *SurveyRepository) List(offset, limit int) ([]models.Survey, int64, error) {
	var surveys []models.Survey
	var total int64

	if err := r.db.Model(&models.Survey{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Omit("json_schema").Order("created_at DESC").Offset(offset).Limit(limit).Find(&surveys).Error
	return surveys, total, err
}
