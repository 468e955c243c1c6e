// File: internal/api/update_user_request.go
package api

import (
	"github.com/cespare/xxhash/v2"
)

// UpdateUserRequest 更新使用者的請求內容
// Password 為 nil 表示不變更密碼；有值時不可為空字串
// swagger:model api.UpdateUserRequest
type UpdateUserRequest struct {
	UserFields
	Password *string `json:"password,omitempty" form:"password" validate:"omitempty,min=1,max=100" example:"Secret123!"`
}

// Schema 回傳欄位文件描述
func (r UpdateUserRequest) Schema() []FieldDoc {
	return concatSchema(userFieldsSchema,
		FieldDoc{Name: "password", Type: "string", Description: "密碼", Required: false},
	)
}

// HasPassword 是否帶有新密碼
func (r UpdateUserRequest) HasPassword() bool {
	return r.Password != nil
}

// Equal 比較共用欄位與密碼
func (r UpdateUserRequest) Equal(o UpdateUserRequest) bool {
	if !r.UserFields.equal(o.UserFields) {
		return false
	}
	if r.Password == nil || o.Password == nil {
		return r.Password == nil && o.Password == nil
	}
	return *r.Password == *o.Password
}

// Hash 與 Equal 一致的雜湊值
func (r UpdateUserRequest) Hash() uint64 {
	d := xxhash.New()
	writeField := func(s string) {
		_, _ = d.WriteString(s)
		_, _ = d.Write([]byte{0})
	}
	writeFlag := func(b bool) {
		if b {
			_, _ = d.Write([]byte{1})
			return
		}
		_, _ = d.Write([]byte{0})
	}

	writeField(r.LoginID)
	writeField(r.Name)
	writeField(string(r.Role))
	writeFlag(r.UseFlag)
	for _, a := range r.Authorities {
		writeField(string(a))
	}
	// 分隔權限列表與密碼，避免 ["x"] + nil 與 [] + "x" 撞值
	_, _ = d.Write([]byte{0xff})
	writeFlag(r.Password != nil)
	if r.Password != nil {
		writeField(*r.Password)
	}
	return d.Sum64()
}
