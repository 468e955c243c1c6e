// File: internal/handler/auth/login.go
package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"user-admin/internal/api"
	"user-admin/internal/cache"
	"user-admin/internal/database"
	"user-admin/internal/handler"
	"user-admin/internal/middleware"
	"user-admin/internal/service"
	"user-admin/internal/store"
	"user-admin/internal/worker"

	"github.com/labstack/echo/v4"
)

var (
	login             = service.Login
	renewToken        = service.RenewToken
	logout            = service.Logout
	touchLatestActive = store.TouchLatestActive
	timeNow           = time.Now
)

func tokenResponse(tokens *service.TokenService, res *service.LoginResult) api.TokenResponse {
	return api.TokenResponse{
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int(tokens.AccessTTL().Seconds()),
	}
}

// LoginHandler 使用登入帳號與密碼驗證並回傳 JWT
// @Summary     登入使用者
// @Description 使用 login_id 與 password 進行驗證，回傳存取令牌與刷新令牌
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.LoginRequest true "登入資料"
// @Success     200  {object} api.TokenResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /users/login [post]
func LoginHandler(db database.DB, c cache.Cache, tokens *service.TokenService, pool worker.Pool) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		var req api.LoginRequest
		if err := ctx.Bind(&req); err != nil {
			return ctx.JSON(http.StatusBadRequest, api.ErrorResponse{Message: fmt.Sprintf("無效的請求資料: %v", err)})
		}
		if err := ctx.Validate(&req); err != nil {
			return ctx.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		res, err := login(ctx.Request().Context(), db, c, tokens, req)
		if err != nil {
			return handler.RespondError(ctx, err)
		}

		// 最後活動時間於背景更新，不影響登入回應
		userID, at := res.User.ID, timeNow()
		pool.Submit(func(bg context.Context) error {
			return touchLatestActive(bg, db, userID, at)
		})

		return ctx.JSON(http.StatusOK, tokenResponse(tokens, res))
	}
}

// RenewTokenHandler 以 Authorization 標頭中的刷新令牌換發存取令牌
// @Summary     換發令牌
// @Description 刷新令牌與伺服器保存的相同時輪替；短時間內的併發請求會取得同一組新令牌
// @Tags        auth
// @Produce     json
// @Success     200 {object} api.TokenResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/renew-token [get]
func RenewTokenHandler(db database.DB, c cache.Cache, tokens *service.TokenService) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		refresh, err := middleware.BearerToken(ctx)
		if err != nil {
			return err
		}
		res, err := renewToken(ctx.Request().Context(), db, c, tokens, refresh)
		if err != nil {
			return handler.RespondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, tokenResponse(tokens, res))
	}
}

// LogoutHandler 清除目前使用者的刷新令牌
// @Summary     登出
// @Tags        auth
// @Success     204 "No Content"
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/logout [delete]
func LogoutHandler(c cache.Cache) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		claims := middleware.Claims(ctx)
		if claims == nil {
			return ctx.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing token"})
		}
		if err := logout(ctx.Request().Context(), c, claims.UserID); err != nil {
			return handler.RespondError(ctx, err)
		}
		return ctx.NoContent(http.StatusNoContent)
	}
}
