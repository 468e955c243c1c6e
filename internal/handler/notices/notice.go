package notices

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
	getNotice    = service.GetNotice
	listNotices  = service.ListNotices
	createNotice = service.CreateNotice
	updateNotice = service.UpdateNotice
	deleteNotice = service.DeleteNotice
)

func parseListRequest(c echo.Context) (api.ListNoticesRequest, error) {
	req := api.ListNoticesRequest{Page: 1, PageSize: 10}
	q := c.QueryParams()

	if v := q.Get("id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return req, errors.New("invalid id")
		}
		req.ID = &id
	}
	if v := q.Get("title"); v != "" {
		req.Title = &v
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

// @Summary     List notices
// @Description 分頁查詢公告，依 ID 由新到舊排序
// @Tags        notices
// @Produce     json
// @Param       id        query    int     false "公告 ID"
// @Param       title     query    string  false "標題 (部分比對)"
// @Param       use_flag  query    boolean false "是否公開"
// @Param       page      query    int     false "頁碼" default(1)
// @Param       page_size query    int     false "每頁筆數" default(10)
// @Success     200       {object} api.ListResult[api.NoticeResponse]
// @Failure     400       {object} api.ErrorResponse
// @Failure     500       {object} api.ErrorResponse
// @Router      /notices [get]
func ListNoticesHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		req, err := parseListRequest(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		res, err := listNotices(c.Request().Context(), db, req)
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, res)
	}
}

// @Summary     Get a notice by ID
// @Tags        notices
// @Produce     json
// @Param       id   path      int  true  "公告 ID"
// @Success     200  {object}  api.NoticeResponse
// @Failure     400  {object}  api.ErrorResponse
// @Failure     404  {object}  api.ErrorResponse
// @Failure     500  {object}  api.ErrorResponse
// @Router      /notices/{id} [get]
func GetNoticeHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := handler.PathID(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid notice ID"})
		}
		n, err := getNotice(c.Request().Context(), db, id)
		if errors.Is(err, service.ErrUnknownNotice) {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "notice not found"})
		}
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, api.NewNoticeResponse(n))
	}
}

// @Summary     Create a notice
// @Tags        notices
// @Accept      json
// @Produce     json
// @Param       body body     api.NoticeRequest true "公告內容"
// @Success     201  {object} api.NoticeResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /notices [post]
func CreateNoticeHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.NoticeRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		n, err := createNotice(c.Request().Context(), db, req, handler.OperatorID(c))
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusCreated, api.NewNoticeResponse(n))
	}
}

// @Summary     Update a notice
// @Tags        notices
// @Accept      json
// @Produce     json
// @Param       id   path     int               true "公告 ID"
// @Param       body body     api.NoticeRequest true "公告內容"
// @Success     200  {object} api.NoticeResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /notices/{id} [put]
func UpdateNoticeHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := handler.PathID(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid notice ID"})
		}

		var req api.NoticeRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		n, err := updateNotice(c.Request().Context(), db, id, req, handler.OperatorID(c))
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, api.NewNoticeResponse(n))
	}
}

// @Summary     Delete a notice
// @Description 軟刪除公告
// @Tags        notices
// @Param       id   path      int  true  "公告 ID"
// @Success     204  "No Content"
// @Failure     400  {object}  api.ErrorResponse
// @Failure     500  {object}  api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /notices/{id} [delete]
func DeleteNoticeHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := handler.PathID(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid notice ID"})
		}
		if err := deleteNotice(c.Request().Context(), db, id, handler.OperatorID(c)); err != nil {
			return handler.RespondError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
