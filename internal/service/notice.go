package service

import (
	"context"
	"errors"

	"user-admin/internal/api"
	"user-admin/internal/database"
	"user-admin/internal/model"
	"user-admin/internal/store"

	"github.com/jackc/pgx/v5"
)

var (
	getNoticeByID    = store.GetNoticeByID
	listNotices      = store.ListNotices
	createNotice     = store.CreateNotice
	updateNotice     = store.UpdateNotice
	softDeleteNotice = store.SoftDeleteNotice
)

func noticeNotFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrUnknownNotice
	}
	return err
}

// GetNotice 依 ID 取得公告，已刪除的公告視為不存在
func GetNotice(ctx context.Context, db database.DB, id int) (*model.Notice, error) {
	n, err := getNoticeByID(ctx, db, id)
	if err != nil {
		return nil, noticeNotFound(err)
	}
	if n.RemovedFlag {
		return nil, ErrUnknownNotice
	}
	return n, nil
}

func ListNotices(ctx context.Context, db database.DB, req api.ListNoticesRequest) (api.ListResult[api.NoticeResponse], error) {
	notices, total, err := listNotices(ctx, db, req.Filter())
	if err != nil {
		return api.ListResult[api.NoticeResponse]{}, err
	}
	items := make([]api.NoticeResponse, 0, len(notices))
	for i := range notices {
		items = append(items, api.NewNoticeResponse(&notices[i]))
	}
	return api.ListResult[api.NoticeResponse]{
		Page:     req.Page,
		PageSize: req.PageSize,
		Total:    total,
		Items:    items,
	}, nil
}

func CreateNotice(ctx context.Context, db database.DB, req api.NoticeRequest, operatorID int) (*model.Notice, error) {
	return createNotice(ctx, db, &model.Notice{
		Title:   req.Title,
		Content: req.Content,
		UseFlag: req.UseFlag,
	}, operatorID)
}

func UpdateNotice(ctx context.Context, db database.DB, id int, req api.NoticeRequest, operatorID int) (*model.Notice, error) {
	n, err := updateNotice(ctx, db, &model.Notice{
		ID:      id,
		Title:   req.Title,
		Content: req.Content,
		UseFlag: req.UseFlag,
	}, operatorID)
	if err != nil {
		return nil, noticeNotFound(err)
	}
	return n, nil
}

// DeleteNotice 軟刪除公告
func DeleteNotice(ctx context.Context, db database.DB, id int, operatorID int) error {
	return noticeNotFound(softDeleteNotice(ctx, db, id, operatorID))
}
