// File: internal/router/router.go
package router

import (
	"github.com/labstack/echo/v4"

	"user-admin/internal/cache"
	"user-admin/internal/database"
	"user-admin/internal/handler"
	"user-admin/internal/handler/auth"
	"user-admin/internal/handler/notices"
	"user-admin/internal/handler/users"
	"user-admin/internal/middleware"
	"user-admin/internal/model"
	"user-admin/internal/service"
	"user-admin/internal/worker"
)

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, db database.DB, c cache.Cache, tokens *service.TokenService, pool worker.Pool) {
	api := e.Group("/api")

	// 健康檢查
	api.GET("/ping", handler.PingHandler(db, c))

	// 不需登入；固定路徑需先於 /users/:id 註冊
	api.POST("/users/login", auth.LoginHandler(db, c, tokens, pool))
	api.GET("/users/renew-token", auth.RenewTokenHandler(db, c, tokens))
	api.GET("/users/check-login-id", users.CheckLoginIDHandler(db))

	requireAuth := middleware.RequireAuth(tokens)
	canView := middleware.RequireAuthority(model.AuthorityUserView)
	canEdit := middleware.RequireAuthority(model.AuthorityUserEdit)

	apiUsers := api.Group("/users", requireAuth)
	apiUsers.DELETE("/logout", auth.LogoutHandler(c))
	apiUsers.GET("", users.ListUsersHandler(db), canView)
	apiUsers.GET("/:id", users.GetUserHandler(db), canView)
	apiUsers.POST("", users.CreateUserHandler(db), canEdit)
	apiUsers.PUT("/:id", users.UpdateUserHandler(db), canEdit)
	apiUsers.PATCH("/:id/password", users.ChangePasswordHandler(db), canEdit)
	apiUsers.DELETE("/:id", users.DeleteUserHandler(db), canEdit)

	// 公告查詢不需登入，寫入逐條掛上驗證
	canEditNotice := middleware.RequireAuthority(model.AuthorityNoticeEdit)
	api.GET("/notices", notices.ListNoticesHandler(db))
	api.GET("/notices/:id", notices.GetNoticeHandler(db))
	api.POST("/notices", notices.CreateNoticeHandler(db), requireAuth, canEditNotice)
	api.PUT("/notices/:id", notices.UpdateNoticeHandler(db), requireAuth, canEditNotice)
	api.DELETE("/notices/:id", notices.DeleteNoticeHandler(db), requireAuth, canEditNotice)
}
