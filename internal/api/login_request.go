package api

// swagger:model api.LoginRequest
type LoginRequest struct {
	LoginID  string `json:"login_id" form:"login_id" validate:"required" example:"alice1"`
	Password string `json:"password" form:"password" validate:"required" example:"Secret123!"`
}
