// File: internal/api/user_response.go
package api

import (
	"time"

	"user-admin/internal/model"
)

// swagger:model api.UserResponse
type UserResponse struct {
	ID               int               `json:"id" example:"1"`
	LoginID          string            `json:"login_id" example:"alice1"`
	Name             string            `json:"name" example:"Alice"`
	Role             model.UserType    `json:"role" example:"ADMIN"`
	UseFlag          bool              `json:"use_flag" example:"true"`
	Authorities      []model.Authority `json:"authorities" example:"USER_VIEW"`
	ChangePasswordAt *time.Time        `json:"change_password_at,omitempty"`
	LatestActiveAt   *time.Time        `json:"latest_active_at,omitempty"`
	JoinedAt         *time.Time        `json:"joined_at,omitempty"`
	CreatedAt        time.Time         `json:"created_at" example:"2025-05-01T15:04:05Z"`
	CreatedBy        int               `json:"created_by" example:"1"`
	UpdatedAt        time.Time         `json:"updated_at" example:"2025-05-01T15:04:05Z"`
	UpdatedBy        int               `json:"updated_by" example:"1"`
}

// NewUserResponse 由 model.User 組裝回應
func NewUserResponse(u *model.User) UserResponse {
	authorities := u.Authorities
	if authorities == nil {
		authorities = []model.Authority{}
	}
	return UserResponse{
		ID:               u.ID,
		LoginID:          u.LoginID,
		Name:             u.Name,
		Role:             u.Role,
		UseFlag:          u.UseFlag,
		Authorities:      authorities,
		ChangePasswordAt: u.ChangePasswordAt,
		LatestActiveAt:   u.LatestActiveAt,
		JoinedAt:         u.JoinedAt,
		CreatedAt:        u.CreatedAt,
		CreatedBy:        u.CreatedBy,
		UpdatedAt:        u.UpdatedAt,
		UpdatedBy:        u.UpdatedBy,
	}
}
