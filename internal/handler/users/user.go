package users

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"user-admin/internal/api"
	"user-admin/internal/database"
	"user-admin/internal/handler"
	"user-admin/internal/service"

	"github.com/labstack/echo/v4"
)

var (
	createUser     = service.CreateUser
	getUser        = service.GetUser
	listUsers      = service.ListUsers
	updateUser     = service.UpdateUser
	changePassword = service.ChangePassword
	deleteUser     = service.DeleteUser
	checkLoginID   = service.CheckLoginID
)

const (
	defaultPage     = 1
	defaultPageSize = 10
)

// @Summary     Create a new user
// @Description 建立使用者帳號，登入帳號不可與現有使用者重複
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       body body     api.CreateUserRequest true "使用者資料"
// @Success     201  {object} api.UserResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users [post]
func CreateUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateUserRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		user, err := createUser(c.Request().Context(), db, req, handler.OperatorID(c))
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusCreated, api.NewUserResponse(user))
	}
}

// @Summary     Get a user by ID
// @Description 透過 ID 查詢並回傳使用者詳細資料
// @Tags        users
// @Produce     json
// @Param       id   path      int  true  "使用者 ID"
// @Success     200  {object}  api.UserResponse
// @Failure     400  {object}  api.ErrorResponse  "參數錯誤"
// @Failure     404  {object}  api.ErrorResponse  "使用者不存在"
// @Failure     500  {object}  api.ErrorResponse  "伺服器錯誤"
// @Security    ApiKeyAuth
// @Router      /users/{id} [get]
func GetUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := handler.PathID(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid user ID"})
		}
		user, err := getUser(c.Request().Context(), db, id)
		if errors.Is(err, service.ErrUnknownUser) {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "user not found"})
		}
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, api.NewUserResponse(user))
	}
}

// parseListRequest 讀取列表查詢參數，未帶分頁時使用預設值
func parseListRequest(c echo.Context) (api.ListUsersRequest, error) {
	req := api.ListUsersRequest{Page: defaultPage, PageSize: defaultPageSize}
	q := c.QueryParams()

	if v := q.Get("id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return req, errors.New("invalid id")
		}
		req.ID = &id
	}
	if v := q.Get("login_id"); v != "" {
		req.LoginID = &v
	}
	if v := q.Get("name"); v != "" {
		req.Name = &v
	}
	if v := q.Get("use_flag"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return req, errors.New("invalid use_flag")
		}
		req.UseFlag = &b
	}
	for key, dst := range map[string]*int{"page": &req.Page, "page_size": &req.PageSize} {
		if v := q.Get(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return req, fmt.Errorf("invalid %s", key)
			}
			*dst = n
		}
	}
	return req, nil
}

// @Summary     List users
// @Description 分頁查詢使用者，依 ID 由新到舊排序，已刪除的使用者不列出
// @Tags        users
// @Produce     json
// @Param       id        query    int     false "使用者 ID"
// @Param       login_id  query    string  false "登入帳號 (部分比對)"
// @Param       name      query    string  false "使用者名稱 (部分比對)"
// @Param       use_flag  query    boolean false "是否啟用"
// @Param       page      query    int     false "頁碼" default(1)
// @Param       page_size query    int     false "每頁筆數" default(10)
// @Success     200       {object} api.ListResult[api.UserResponse]
// @Failure     400       {object} api.ErrorResponse
// @Failure     500       {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users [get]
func ListUsersHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		req, err := parseListRequest(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		res, err := listUsers(c.Request().Context(), db, req)
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, res)
	}
}

// @Summary     Update a user by ID
// @Description 更新使用者名稱、登入帳號、類型、啟用狀態與權限；未帶 password 時保留原密碼
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       id   path     int                   true "使用者 ID"
// @Param       body body     api.UpdateUserRequest true "使用者資料"
// @Success     200  {object} api.UserResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/{id} [put]
func UpdateUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := handler.PathID(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid user ID"})
		}

		var req api.UpdateUserRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		user, err := updateUser(c.Request().Context(), db, id, req, handler.OperatorID(c))
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, api.NewUserResponse(user))
	}
}

// @Summary     Change a user's password
// @Description 驗證舊密碼並更新為新密碼，新密碼不可與舊密碼相同
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       id   path     int                       true "使用者 ID"
// @Param       body body     api.ChangePasswordRequest true "密碼"
// @Success     200  {object} api.UserResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/{id}/password [patch]
func ChangePasswordHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := handler.PathID(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid user ID"})
		}

		var req api.ChangePasswordRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		user, err := changePassword(c.Request().Context(), db, id, req, handler.OperatorID(c))
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, api.NewUserResponse(user))
	}
}

// @Summary     Delete a user by ID
// @Description 軟刪除使用者，不可刪除自己
// @Tags        users
// @Param       id   path      int  true  "使用者 ID"
// @Success     204  "No Content"
// @Failure     400  {object}  api.ErrorResponse  "參數錯誤"
// @Failure     500  {object}  api.ErrorResponse  "伺服器錯誤"
// @Security    ApiKeyAuth
// @Router      /users/{id} [delete]
func DeleteUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := handler.PathID(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid user ID"})
		}
		if err := deleteUser(c.Request().Context(), db, id, handler.OperatorID(c)); err != nil {
			return handler.RespondError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// @Summary     Check login id availability
// @Description 登入帳號未被其他使用者使用時回傳 true；編輯既有使用者時帶入 user_id 排除自己
// @Tags        users
// @Produce     json
// @Param       login_id query    string true  "登入帳號"
// @Param       user_id  query    int    false "編輯中的使用者 ID"
// @Success     200      {boolean} boolean
// @Failure     400      {object}  api.ErrorResponse
// @Failure     500      {object}  api.ErrorResponse
// @Router      /users/check-login-id [get]
func CheckLoginIDHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		loginID := c.QueryParam("login_id")
		if loginID == "" {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "login_id is required"})
		}
		var excludeID *int
		if v := c.QueryParam("user_id"); v != "" {
			id, err := strconv.Atoi(v)
			if err != nil {
				return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid user_id"})
			}
			excludeID = &id
		}

		available, err := checkLoginID(c.Request().Context(), db, loginID, excludeID)
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, available)
	}
}
