package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Survey 问卷定义，Code 前缀决定报告模板
type Survey struct {
	ID         string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	Code       string         `gorm:"size:100;uniqueIndex;not null" json:"code"`
	Title      string         `gorm:"size:255;not null" json:"title"`
	JSONSchema datatypes.JSON `gorm:"column:json_schema;not null" json:"jsonSchema"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`

	// 关联
	Responses []Response `gorm:"foreignKey:SurveyID;constraint:OnDelete:CASCADE" json:"responses,omitempty"`
}

// TableName 指定表名
func (Survey) TableName() string {
	return "survey"
}

// BeforeCreate 生成UUID主键
func (s *Survey) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
