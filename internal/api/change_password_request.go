// File: internal/api/change_password_request.go
package api

// swagger:model api.ChangePasswordRequest
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" form:"old_password" validate:"required" example:"OldSecret123!"`
	NewPassword string `json:"new_password" form:"new_password" validate:"required,min=8,max=100" example:"NewSecret456!"`
}
