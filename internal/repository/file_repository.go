package repository

import (
	"survey-go/internal/models"

	"gorm.io/gorm"
)

// FileRepository 文件元数据访问层
type FileRepository struct {
	db *gorm.DB
}

// NewFileRepository 创建文件Repository
func NewFileRepository(db *gorm.DB) *FileRepository {
	return &FileRepository{db: db}
}

// Create 创建文件记录
func (r *FileRepository) Create(file *models.File) error {
	return r.db.Create(file).Error
}

// GetByID 根据ID获取文件
func (r *FileRepository) GetByID(id string) (*models.File, error) {
	var file models.File
	err := r.db.Where("id = ?", id).First(&file).Error
	if err != nil {
		return nil, err
	}
	return &file, nil
}

// ListByResponseID 获取回覆的全部文件
func (r *FileRepository) ListByResponseID(responseID string) ([]models.File, error) {
	var files []models.File
	err := r.db.Where("response_id = ?", responseID).Order("uploaded_at ASC").Find(&files).Error
	return files, err
}
