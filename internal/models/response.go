package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Response 问卷回覆
type Response struct {
	ID           string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	SurveyID     string         `gorm:"type:varchar(36);not null;index" json:"surveyId"`
	ResponseData datatypes.JSON `gorm:"column:response_data;not null" json:"responseData"`
	SubmittedAt  time.Time      `gorm:"autoCreateTime" json:"submittedAt"`

	// 关联
	Survey *Survey `gorm:"foreignKey:SurveyID" json:"survey,omitempty"`
	Files  []File  `gorm:"foreignKey:ResponseID;constraint:OnDelete:CASCADE" json:"files,omitempty"`
}

// TableName 指定表名
func (Response) TableName() string {
	return "response"
}

// BeforeCreate 生成UUID主键
func (r *Response) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
