package handler

import (
	"strconv"

	"user-admin/internal/middleware"

	"github.com/labstack/echo/v4"
)

// PathID 讀取路徑參數 :id，須為正整數
func PathID(c echo.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	return id, err == nil && id > 0
}

// OperatorID 目前登入者的使用者 ID，未登入為 0
func OperatorID(c echo.Context) int {
	if claims := middleware.Claims(c); claims != nil {
		return claims.UserID
	}
	return 0
}
