package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"user-admin/internal/database"
	"user-admin/internal/model"

	"github.com/jackc/pgx/v5"
)

const userColumns = `id, login_id, name, role, password_hash, use_flag, authorities,
	change_password_at, latest_active_at, joined_at, removed_flag, removed_at,
	created_at, created_by, updated_at, updated_by`

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	var role string
	var authorities []string
	if err := row.Scan(
		&u.ID,
		&u.LoginID,
		&u.Name,
		&role,
		&u.PasswordHash,
		&u.UseFlag,
		&authorities,
		&u.ChangePasswordAt,
		&u.LatestActiveAt,
		&u.JoinedAt,
		&u.RemovedFlag,
		&u.RemovedAt,
		&u.CreatedAt,
		&u.CreatedBy,
		&u.UpdatedAt,
		&u.UpdatedBy,
	); err != nil {
		return nil, err
	}
	u.Role = model.UserType(role)
	u.Authorities = make([]model.Authority, 0, len(authorities))
	for _, a := range authorities {
		u.Authorities = append(u.Authorities, model.Authority(a))
	}
	return u, nil
}

func authorityStrings(as []model.Authority) []string {
	out := make([]string, 0, len(as))
	for _, a := range as {
		out = append(out, string(a))
	}
	return out
}

// GetUserByID 依 ID 取得使用者（包含已刪除）
func GetUserByID(ctx context.Context, db database.DB, userID int) (*model.User, error) {
	u, err := scanUser(db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		userID,
	))
	if err != nil {
		return nil, fmt.Errorf("GetUserByID: %w", err)
	}
	return u, nil
}

// GetUserByLoginID 依登入帳號取得未刪除的使用者
func GetUserByLoginID(ctx context.Context, db database.DB, loginID string) (*model.User, error) {
	u, err := scanUser(db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE login_id = $1 AND removed_flag = FALSE`,
		loginID,
	))
	if err != nil {
		return nil, fmt.Errorf("GetUserByLoginID: %w", err)
	}
	return u, nil
}

// LoginIDTaken 判斷登入帳號是否已被其他未刪除的使用者使用
// excludeID 非 nil 時排除該使用者本身
func LoginIDTaken(ctx context.Context, db database.DB, loginID string, excludeID *int) (bool, error) {
	var taken bool
	err := db.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM users
			 WHERE login_id = $1 AND removed_flag = FALSE
			   AND ($2::int IS NULL OR id <> $2)
		 )`,
		loginID,
		excludeID,
	).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("LoginIDTaken: %w", err)
	}
	return taken, nil
}

// buildUserWhere 組合列表條件；帳號與名稱為部分比對，輸入中的 % 與 _ 視為一般字元
func buildUserWhere(f model.UserFilter) (string, []any) {
	conds := []string{"removed_flag = FALSE"}
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.ID != nil {
		add("id = $%d", *f.ID)
	}
	if f.LoginID != nil {
		add("strpos(login_id, $%d) > 0", *f.LoginID)
	}
	if f.Name != nil {
		add("strpos(name, $%d) > 0", *f.Name)
	}
	if f.UseFlag != nil {
		add("use_flag = $%d", *f.UseFlag)
	}
	return strings.Join(conds, " AND "), args
}

// ListUsers 依條件分頁查詢未刪除的使用者，ID 由大到小排序
func ListUsers(ctx context.Context, db database.DB, f model.UserFilter) ([]model.User, int, error) {
	where, args := buildUserWhere(f)

	var total int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ListUsers count: %w", err)
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
		fmt.Sprintf(`SELECT %s FROM users WHERE %s ORDER BY id DESC LIMIT $%d OFFSET $%d`,
			userColumns, where, len(args)-1, len(args)),
		args...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("ListUsers: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("ListUsers scan: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("ListUsers rows: %w", err)
	}
	return users, total, nil
}

// CreateUser 新增使用者，建立者與更新者皆為 operatorID
func CreateUser(ctx context.Context, db database.DB, u *model.User, operatorID int) (*model.User, error) {
	created, err := scanUser(db.QueryRow(ctx,
		`INSERT INTO users (login_id, name, role, password_hash, use_flag, authorities,
		                    joined_at, created_by, updated_by)
		 VALUES ($1, $2, $3, $4, $5, $6, NOW(), $7, $7)
		 RETURNING `+userColumns,
		u.LoginID,
		u.Name,
		string(u.Role),
		u.PasswordHash,
		u.UseFlag,
		authorityStrings(u.Authorities),
		operatorID,
	))
	if err != nil {
		return nil, fmt.Errorf("CreateUser: %w", err)
	}
	return created, nil
}

// UpdateUser 更新使用者資料
// u.PasswordHash 為 nil 時保留原密碼，有值時一併更新 change_password_at
func UpdateUser(ctx context.Context, db database.DB, u *model.User, operatorID int) (*model.User, error) {
	updated, err := scanUser(db.QueryRow(ctx,
		`UPDATE users
		    SET login_id = $1, name = $2, role = $3, use_flag = $4, authorities = $5,
		        password_hash = COALESCE($6::text, password_hash),
		        change_password_at = CASE WHEN $6::text IS NULL THEN change_password_at ELSE NOW() END,
		        updated_by = $7, updated_at = NOW()
		  WHERE id = $8 AND removed_flag = FALSE
		 RETURNING `+userColumns,
		u.LoginID,
		u.Name,
		string(u.Role),
		u.UseFlag,
		authorityStrings(u.Authorities),
		u.PasswordHash,
		operatorID,
		u.ID,
	))
	if err != nil {
		return nil, fmt.Errorf("UpdateUser: %w", err)
	}
	return updated, nil
}

// UpdateUserPassword 更新密碼雜湊與變更時間
func UpdateUserPassword(ctx context.Context, db database.DB, userID int, passwordHash string, operatorID int) (*model.User, error) {
	updated, err := scanUser(db.QueryRow(ctx,
		`UPDATE users
		    SET password_hash = $1, change_password_at = NOW(),
		        updated_by = $2, updated_at = NOW()
		  WHERE id = $3 AND removed_flag = FALSE
		 RETURNING `+userColumns,
		passwordHash,
		operatorID,
		userID,
	))
	if err != nil {
		return nil, fmt.Errorf("UpdateUserPassword: %w", err)
	}
	return updated, nil
}

// SoftDeleteUser 標記刪除使用者
func SoftDeleteUser(ctx context.Context, db database.DB, userID int, operatorID int) error {
	_, err := db.Exec(ctx,
		`UPDATE users
		    SET removed_flag = TRUE, removed_at = NOW(),
		        updated_by = $1, updated_at = NOW()
		  WHERE id = $2 AND removed_flag = FALSE`,
		operatorID,
		userID,
	)
	if err != nil {
		return fmt.Errorf("SoftDeleteUser: %w", err)
	}
	return nil
}

// TouchLatestActive 記錄最後活動時間
func TouchLatestActive(ctx context.Context, db database.DB, userID int, at time.Time) error {
	_, err := db.Exec(ctx,
		`UPDATE users SET latest_active_at = $1 WHERE id = $2`,
		at,
		userID,
	)
	if err != nil {
		return fmt.Errorf("TouchLatestActive: %w", err)
	}
	return nil
}
