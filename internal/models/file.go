package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 文件类别
const (
	FileCategorySignature  = "signature"  // 签名后生成的报告
	FileCategoryAttachment = "attachment" // 上传的附件
)

// File 生成文件的元数据
type File struct {
	ID           string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	ResponseID   string    `gorm:"type:varchar(36);not null;index" json:"responseId"`
	FileName     string    `gorm:"size:255;not null" json:"fileName"`
	FileType     string    `gorm:"size:100;not null" json:"fileType"`
	FileURL      string    `gorm:"column:file_url;size:500;not null" json:"fileUrl"`
	FileSize     int64     `gorm:"not null" json:"fileSize"`
	FileCategory string    `gorm:"size:50;default:'attachment'" json:"fileCategory"`
	UploadedAt   time.Time `gorm:"autoCreateTime" json:"uploadedAt"`
}

// TableName 指定表名
func (File) TableName() string {
	return "file"
}

// BeforeCreate 生成UUID主键
func (f *File) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	if f.FileCategory == "" {
		f.FileCategory = FileCategoryAttachment
	}
	return nil
}
