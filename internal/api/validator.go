package api

import (
	"reflect"
	"strings"

	"user-admin/internal/model"

	"github.com/go-playground/validator/v10"
)

// NewValidator 建立已註冊自訂規則的 validator
// 錯誤訊息中的欄位名稱使用 json tag
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("authority", func(fl validator.FieldLevel) bool {
		return model.ValidAuthority(fl.Field().String())
	})
	return v
}
