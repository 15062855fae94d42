package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"survey-go/internal/dto"
	"survey-go/internal/models"
	"survey-go/internal/report"
	"survey-go/internal/repository"
	"survey-go/internal/utils"

	"gorm.io/gorm"
)

// ExportResult 导出文件
type ExportResult struct {
	FileName    string
	ContentType string
	Content     []byte
}

// ResponseService 回覆查询、导出与报告预览
type ResponseService struct {
	surveyRepo   *repository.SurveyRepository
	responseRepo *repository.ResponseRepository
}

// NewResponseService 创建回覆服务
func NewResponseService(surveyRepo *repository.SurveyRepository, responseRepo *repository.ResponseRepository) *ResponseService {
	return &ResponseService{
		surveyRepo:   surveyRepo,
		responseRepo: responseRepo,
	}
}

func (s *ResponseService) getSurvey(surveyID string) (*models.Survey, error) {
	survey, err := s.surveyRepo.GetByID(surveyID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSurveyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("查询问卷失败: %w", err)
	}
	return survey, nil
}

// List 分页获取问卷的回覆
func (s *ResponseService) List(surveyID string, page, perPage int) (*dto.PaginatedResponse, error) {
	if _, err := s.getSurvey(surveyID); err != nil {
		return nil, err
	}

	offset := (page - 1) * perPage
	responses, total, err := s.responseRepo.ListBySurveyID(surveyID, offset, perPage)
	if err != nil {
		return nil, fmt.Errorf("查询回覆列表失败: %w", err)
	}

	items := make([]dto.ResponseSummary, len(responses))
	for i, r := range responses {
		items[i] = dto.ResponseSummary{
			ID:          r.ID,
			SurveyID:    r.SurveyID,
			SubmittedAt: r.SubmittedAt.Format(timeLayout),
			Files:       toFileInfos(r.Files),
		}
	}

	return &dto.PaginatedResponse{
		Items:   items,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}, nil
}

// Get 获取回覆详情
func (s *ResponseService) Get(responseID string) (*dto.ResponseDetail, error) {
	response, err := s.getResponse(responseID)
	if err != nil {
		return nil, err
	}

	detail := &dto.ResponseDetail{
		ID:          response.ID,
		SurveyID:    response.SurveyID,
		Answers:     json.RawMessage(response.ResponseData),
		SubmittedAt: response.SubmittedAt.Format(timeLayout),
		Files:       toFileInfos(response.Files),
	}
	if response.Survey != nil {
		detail.SurveyCode = response.Survey.Code
		detail.SurveyTitle = response.Survey.Title
	}
	return detail, nil
}

// Preview 用保存的答案重新渲染报告HTML，签名不落库所以显示为无签名
func (s *ResponseService) Preview(responseID string) (string, error) {
	response, err := s.getResponse(responseID)
	if err != nil {
		return "", err
	}
	if response.Survey == nil {
		return "", ErrSurveyNotFound
	}

	answers, err := report.ParseAnswers(response.ResponseData)
	if err != nil {
		return "", fmt.Errorf("解析回覆数据失败: %w", err)
	}

	return report.Render(response.Survey.Code, answers, report.Signatures{}, response.SubmittedAt)
}

// Export 导出问卷的全部回覆
func (s *ResponseService) Export(surveyID, format string) (*ExportResult, error) {
	survey, err := s.getSurvey(surveyID)
	if err != nil {
		return nil, err
	}

	responses, err := s.responseRepo.ListAllBySurveyID(surveyID)
	if err != nil {
		return nil, fmt.Errorf("查询回覆失败: %w", err)
	}

	rows := make([]exportRow, 0, len(responses))
	for _, r := range responses {
		answers, err := report.ParseAnswers(r.ResponseData)
		if err != nil {
			return nil, fmt.Errorf("解析回覆 %s 失败: %w", r.ID, err)
		}
		rows = append(rows, exportRow{ID: r.ID, SubmittedAt: r.SubmittedAt.Format(timeLayout), Answers: answers})
	}

	switch format {
	case dto.ExportFormatCSV:
		content, err := exportCSV(rows)
		if err != nil {
			return nil, err
		}
		return &ExportResult{
			FileName:    survey.Code + "_responses.csv",
			ContentType: "text/csv; charset=utf-8",
			Content:     content,
		}, nil
	case dto.ExportFormatJSONL, "":
		items := make([]interface{}, len(rows))
		for i := range rows {
			items[i] = rows[i]
		}
		content, err := utils.ConvertToJSONL(items)
		if err != nil {
			return nil, err
		}
		return &ExportResult{
			FileName:    survey.Code + "_responses.jsonl",
			ContentType: "application/x-ndjson",
			Content:     content,
		}, nil
	}

	return nil, fmt.Errorf("不支持的导出格式: %s", format)
}

// exportRow 导出的一行；answers 保持题目顺序
type exportRow struct {
	ID          string        `json:"id"`
	SubmittedAt string        `json:"submittedAt"`
	Answers     report.Object `json:"answers"`
}

// exportCSV 列为 id、提交时间和所有题目（按首次出现顺序）
func exportCSV(rows []exportRow) ([]byte, error) {
	headers := []string{"id", "submittedAt"}
	column := map[string]int{}
	for _, row := range rows {
		for _, label := range row.Answers.Labels() {
			if _, ok := column[label]; !ok {
				column[label] = len(headers)
				headers = append(headers, label)
			}
		}
	}

	records := make([][]string, len(rows))
	for i, row := range rows {
		record := make([]string, len(headers))
		record[0] = row.ID
		record[1] = row.SubmittedAt
		for _, f := range row.Answers {
			record[column[f.Label]] = report.ScalarText(f.Value)
		}
		records[i] = record
	}

	return utils.ConvertToCSV(headers, records)
}

func (s *ResponseService) getResponse(responseID string) (*models.Response, error) {
	response, err := s.responseRepo.GetByIDWithFiles(responseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrResponseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("查询回覆失败: %w", err)
	}
	return response, nil
}

func toFileInfos(files []models.File) []dto.FileInfo {
	infos := make([]dto.FileInfo, len(files))
	for i, f := range files {
		infos[i] = dto.FileInfo{
			ID:           f.ID,
			FileName:     f.FileName,
			FileType:     f.FileType,
			FileURL:      f.FileURL,
			FileSize:     f.FileSize,
			FileCategory: f.FileCategory,
			UploadedAt:   f.UploadedAt.Format(timeLayout),
		}
	}
	return infos
}
