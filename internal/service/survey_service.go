package service

import (
	"errors"
	"fmt"

	"survey-go/internal/dto"
	"survey-go/internal/models"
	"survey-go/internal/report"
	"survey-go/internal/repository"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SurveyService 问卷服务
type SurveyService struct {
	surveyRepo *repository.SurveyRepository
}

// NewSurveyService 创建问卷服务
func NewSurveyService(surveyRepo *repository.SurveyRepository) *SurveyService {
	return &SurveyService{surveyRepo: surveyRepo}
}

// Get 按UUID或代码获取问卷
func (s *SurveyService) Get(codeOrID string) (*models.Survey, error) {
	survey, err := s.surveyRepo.GetByIDOrCode(codeOrID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSurveyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("查询问卷失败: %w", err)
	}
	return survey, nil
}

// Create 创建问卷，schema 校验后按原顺序保存
func (s *SurveyService) Create(req *dto.CreateSurveyRequest) (*models.Survey, error) {
	schema, err := ValidateSchema(req.JSONSchema)
	if err != nil {
		return nil, err
	}

	exists, err := s.surveyRepo.ExistsByCode(req.Code)
	if err != nil {
		return nil, fmt.Errorf("检查问卷代码失败: %w", err)
	}
	if exists {
		return nil, ErrSurveyCodeExists
	}

	survey := &models.Survey{
		Code:       req.Code,
		Title:      req.Title,
		JSONSchema: datatypes.JSON(schema),
	}
	if err := s.surveyRepo.Create(survey); err != nil {
		return nil, fmt.Errorf("创建问卷失败: %w", err)
	}

	return survey, nil
}

// List 获取问卷列表
func (s *SurveyService) List(page, perPage int) (*dto.PaginatedResponse, error) {
	offset := (page - 1) * perPage
	surveys, total, err := s.surveyRepo.List(offset, perPage)
	if err != nil {
		return nil, fmt.Errorf("查询问卷列表失败: %w", err)
	}

	items := make([]dto.SurveySummary, len(surveys))
	for i, survey := range surveys {
		items[i] = ToSurveySummary(&survey)
	}

	return &dto.PaginatedResponse{
		Items:   items,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}, nil
}

// ToSurveySummary 转换为列表项
func ToSurveySummary(survey *models.Survey) dto.SurveySummary {
	return dto.SurveySummary{
		ID:        survey.ID,
		Code:      survey.Code,
		Title:     survey.Title,
		CreatedAt: survey.CreatedAt.Format(timeLayout),
		UpdatedAt: survey.UpdatedAt.Format(timeLayout),
	}
}

// ValidateSchema 校验问卷定义：必须是 JSON 对象，pages/elements 必须是对象数组
func ValidateSchema(raw []byte) ([]byte, error) {
	schema, err := report.ParseAnswers(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: 必须是JSON对象", ErrInvalidSchema)
	}

	if err := checkContainers(schema, "$"); err != nil {
		return nil, err
	}

	out, err := schema.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}
	return out, nil
}

// checkContainers 递归检查 pages、elements 和 panel 内的 elements
func checkContainers(obj report.Object, path string) error {
	for _, key := range []string{"pages", "elements", "templateElements"} {
		value, ok := obj.Get(key)
		if !ok {
			continue
		}

		list, ok := value.([]interface{})
		if !ok {
			return fmt.Errorf("%w: %s.%s 必须是数组", ErrInvalidSchema, path, key)
		}

		for i, item := range list {
			child, ok := item.(report.Object)
			if !ok {
				return fmt.Errorf("%w: %s.%s[%d] 必须是对象", ErrInvalidSchema, path, key, i)
			}
			if err := checkContainers(child, fmt.Sprintf("%s.%s[%d]", path, key, i)); err != nil {
				return err
			}
		}
	}
	return nil
}
