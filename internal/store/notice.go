package store

import (
	"context"
	"fmt"
	"strings"

	"user-admin/internal/database"
	"user-admin/internal/model"

	"github.com/jackc/pgx/v5"
)

const noticeColumns = `id, title, content, use_flag, removed_flag, removed_at,
	created_at, created_by, updated_at, updated_by`

func scanNotice(row pgx.Row) (*model.Notice, error) {
	n := &model.Notice{}
	if err := row.Scan(
		&n.ID,
		&n.Title,
		&n.Content,
		&n.UseFlag,
		&n.RemovedFlag,
		&n.RemovedAt,
		&n.CreatedAt,
		&n.CreatedBy,
		&n.UpdatedAt,
		&n.UpdatedBy,
	); err != nil {
		return nil, err
	}
	return n, nil
}

// GetNoticeByID 依 ID 取得公告（包含已刪除）
func GetNoticeByID(ctx context.Context, db database.DB, id int) (*model.Notice, error) {
	n, err := scanNotice(db.QueryRow(ctx,
		`SELECT `+noticeColumns+` FROM notices WHERE id = $1`,
		id,
	))
	if err != nil {
		return nil, fmt.Errorf("GetNoticeByID: %w", err)
	}
	return n, nil
}

func buildNoticeWhere(f model.NoticeFilter) (string, []any) {
	conds := []string{"removed_flag = FALSE"}
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.ID != nil {
		add("id = $%d", *f.ID)
	}
	if f.Title != nil {
		add("strpos(title, $%d) > 0", *f.Title)
	}
	if f.UseFlag != nil {
		add("use_flag = $%d", *f.UseFlag)
	}
	return strings.Join(conds, " AND "), args
}

// ListNotices 依條件分頁查詢未刪除的公告，ID 由大到小排序
func ListNotices(ctx context.Context, db database.DB, f model.NoticeFilter) ([]model.Notice, int, error) {
	where, args := buildNoticeWhere(f)

	var total int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM notices WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ListNotices count: %w", err)
	}

	page, size := f.Page, f.PageSize
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}
	args = append(args, size, (page-1)*size)
	rows, err := db.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM notices WHERE %s ORDER BY id DESC LIMIT $%d OFFSET $%d`,
			noticeColumns, where, len(args)-1, len(args)),
		args...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("ListNotices: %w", err)
	}
	defer rows.Close()

	notices := []model.Notice{}
	for rows.Next() {
		n, err := scanNotice(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("ListNotices scan: %w", err)
		}
		notices = append(notices, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("ListNotices rows: %w", err)
	}
	return notices, total, nil
}

func CreateNotice(ctx context.Context, db database.DB, n *model.Notice, operatorID int) (*model.Notice, error) {
	created, err := scanNotice(db.QueryRow(ctx,
		`INSERT INTO notices (title, content, use_flag, created_by, updated_by)
		 VALUES ($1, $2, $3, $4, $4)
		 RETURNING `+noticeColumns,
		n.Title,
		n.Content,
		n.UseFlag,
		operatorID,
	))
	if err != nil {
		return nil, fmt.Errorf("CreateNotice: %w", err)
	}
	return created, nil
}

// UpdateNotice 更新未刪除的公告，不存在時回傳 pgx.ErrNoRows
func UpdateNotice(ctx context.Context, db database.DB, n *model.Notice, operatorID int) (*model.Notice, error) {
	updated, err := scanNotice(db.QueryRow(ctx,
		`UPDATE notices
		    SET title = $1, content = $2, use_flag = $3,
		        updated_by = $4, updated_at = NOW()
		  WHERE id = $5 AND removed_flag = FALSE
		 RETURNING `+noticeColumns,
		n.Title,
		n.Content,
		n.UseFlag,
		operatorID,
		n.ID,
	))
	if err != nil {
		return nil, fmt.Errorf("UpdateNotice: %w", err)
	}
	return updated, nil
}

// SoftDeleteNotice 標記刪除公告，沒有符合的列時回傳 pgx.ErrNoRows
func SoftDeleteNotice(ctx context.Context, db database.DB, id int, operatorID int) error {
	tag, err := db.Exec(ctx,
		`UPDATE notices
		    SET removed_flag = TRUE, removed_at = NOW(),
		        updated_by = $1, updated_at = NOW()
		  WHERE id = $2 AND removed_flag = FALSE`,
		operatorID,
		id,
	)
	if err != nil {
		return fmt.Errorf("SoftDeleteNotice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("SoftDeleteNotice: %w", pgx.ErrNoRows)
	}
	return nil
}
