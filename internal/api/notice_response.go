package api

import (
	"time"

	"user-admin/internal/model"
)

// swagger:model api.NoticeResponse
type NoticeResponse struct {
	ID        int       `json:"id" example:"1"`
	Title     string    `json:"title" example:"系統維護公告"`
	Content   string    `json:"content" example:"本週六 02:00 至 04:00 停機維護"`
	UseFlag   bool      `json:"use_flag" example:"true"`
	CreatedAt time.Time `json:"created_at" example:"2025-05-01T15:04:05Z"`
	CreatedBy int       `json:"created_by" example:"1"`
	UpdatedAt time.Time `json:"updated_at" example:"2025-05-01T15:04:05Z"`
	UpdatedBy int       `json:"updated_by" example:"1"`
}

func NewNoticeResponse(n *model.Notice) NoticeResponse {
	return NoticeResponse{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		UseFlag:   n.UseFlag,
		CreatedAt: n.CreatedAt,
		CreatedBy: n.CreatedBy,
		UpdatedAt: n.UpdatedAt,
		UpdatedBy: n.UpdatedBy,
	}
}
