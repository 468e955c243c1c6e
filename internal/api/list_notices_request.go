package api

import "user-admin/internal/model"

// ListNoticesRequest 公告列表查詢參數，nil 欄位不作為條件
type ListNoticesRequest struct {
	ID       *int    `json:"id,omitempty"`
	Title    *string `json:"title,omitempty"`
	UseFlag  *bool   `json:"use_flag,omitempty"`
	Page     int     `json:"page" validate:"min=1"`
	PageSize int     `json:"page_size" validate:"min=1,max=100"`
}

func (r ListNoticesRequest) Filter() model.NoticeFilter {
	return model.NoticeFilter{
		ID:       r.ID,
		Title:    r.Title,
		UseFlag:  r.UseFlag,
		Page:     r.Page,
		PageSize: r.PageSize,
	}
}
