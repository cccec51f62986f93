package dto

// Response 统一响应体
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// PageDTO 分页参数
type PageDTO struct {
	Page     int `form:"page" json:"page"`
	PageSize int `form:"page_size" json:"page_size" validate:"omitempty,max=100"`
}

// Normalize 缺省第一页、每页 20 条
func (p *PageDTO) Normalize() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = 20
	}
}

func (p *PageDTO) Offset() int {
	return (p.Page - 1) * p.PageSize
}

type PageResult[T any] struct {
	List  []T   `json:"list"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
}
