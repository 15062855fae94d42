package dto

// 分页默认值
const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// PaginatedResponse 分页响应
type PaginatedResponse struct {
	Items   interface{} `json:"data"`
	Total   int64       `json:"total"`
	Page    int         `json:"page"`
	PerPage int         `json:"per_page"`
}

// PaginationQuery 分页查询参数
type PaginationQuery struct {
	Page    int `form:"page"`
	PerPage int `form:"per_page"`
}

// Normalize 修正非法的分页参数
func (q *PaginationQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 || q.PerPage > MaxPerPage {
		q.PerPage = DefaultPerPage
	}
}

// Offset 计算偏移量
func (q *PaginationQuery) Offset() int {
	return (q.Page - 1) * q.PerPage
}
