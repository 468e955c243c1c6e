// File: internal/api/user_fields.go
package api

import (
	"user-admin/internal/model"
)

// UserFields 建立與更新使用者共用的欄位
// swagger:model api.UserFields
type UserFields struct {
	LoginID     string            `json:"login_id" form:"login_id" validate:"required,min=3,max=50" example:"alice1"`
	Name        string            `json:"name" form:"name" validate:"required,max=50" example:"Alice"`
	Role        model.UserType    `json:"role" form:"role" validate:"required,oneof=ADMIN USER" example:"ADMIN"`
	UseFlag     bool              `json:"use_flag" form:"use_flag" example:"true"`
	Authorities []model.Authority `json:"authorities" form:"authorities" validate:"dive,authority" example:"USER_VIEW,USER_EDIT"`
}

// userFieldsSchema 共用欄位的文件描述
var userFieldsSchema = []FieldDoc{
	{Name: "login_id", Type: "string", Description: "登入帳號", Required: true},
	{Name: "name", Type: "string", Description: "使用者名稱", Required: true},
	{Name: "role", Type: "string", Description: "使用者類型 (ADMIN, USER)", Required: true},
	{Name: "use_flag", Type: "boolean", Description: "是否啟用", Required: true},
	{Name: "authorities", Type: "array", Description: "權限列表", Required: true},
}

func (f UserFields) equal(o UserFields) bool {
	if f.LoginID != o.LoginID || f.Name != o.Name || f.Role != o.Role || f.UseFlag != o.UseFlag {
		return false
	}
	if len(f.Authorities) != len(o.Authorities) {
		return false
	}
	for i := range f.Authorities {
		if f.Authorities[i] != o.Authorities[i] {
			return false
		}
	}
	return true
}
