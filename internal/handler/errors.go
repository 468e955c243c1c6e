// File: internal/handler/errors.go
package handler

import (
	"errors"
	"net/http"

	"user-admin/internal/api"
	"user-admin/internal/service"

	"github.com/labstack/echo/v4"
)

// ErrorStatus 依 service 錯誤決定狀態碼，未知錯誤為 500
func ErrorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrUnknownUser),
		errors.Is(err, service.ErrUnknownNotice),
		errors.Is(err, service.ErrUnjoinedAccount),
		errors.Is(err, service.ErrAlreadyJoinedAccount),
		errors.Is(err, service.ErrInvalidPassword),
		errors.Is(err, service.ErrSamePassword),
		errors.Is(err, service.ErrCannotRemoveYourself):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// RespondError 回應 service 錯誤
// 500 交給 echo 的錯誤處理，原始錯誤留在 Internal 供請求日誌記錄
func RespondError(c echo.Context, err error) error {
	status := ErrorStatus(err)
	if status == http.StatusInternalServerError {
		return echo.NewHTTPError(status, "internal server error").SetInternal(err)
	}
	return c.JSON(status, api.ErrorResponse{Message: err.Error()})
}
