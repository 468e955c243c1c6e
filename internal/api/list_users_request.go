package api

import "user-admin/internal/model"

// ListUsersRequest 使用者列表查詢參數，nil 欄位不作為條件
type ListUsersRequest struct {
	ID       *int    `json:"id,omitempty"`
	LoginID  *string `json:"login_id,omitempty"`
	Name     *string `json:"name,omitempty"`
	UseFlag  *bool   `json:"use_flag,omitempty"`
	Page     int     `json:"page" validate:"min=1"`
	PageSize int     `json:"page_size" validate:"min=1,max=100"`
}

// Filter 轉換為 store 查詢條件
func (r ListUsersRequest) Filter() model.UserFilter {
	return model.UserFilter{
		ID:       r.ID,
		LoginID:  r.LoginID,
		Name:     r.Name,
		UseFlag:  r.UseFlag,
		Page:     r.Page,
		PageSize: r.PageSize,
	}
}
