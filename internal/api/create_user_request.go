// File: internal/api/create_user_request.go
package api

// swagger:model api.CreateUserRequest
type CreateUserRequest struct {
	UserFields
	Password string `json:"password" form:"password" validate:"required,max=100" example:"Secret123!"`
}

// Schema 回傳欄位文件描述
func (r CreateUserRequest) Schema() []FieldDoc {
	return concatSchema(userFieldsSchema,
		FieldDoc{Name: "password", Type: "string", Description: "密碼", Required: true},
	)
}
