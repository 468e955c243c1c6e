// File: internal/service/user.go
package service

import (
	"context"
	"errors"
	"fmt"

	"user-admin/internal/api"
	"user-admin/internal/cache"
	"user-admin/internal/database"
	"user-admin/internal/model"
	"user-admin/internal/store"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"
)

var (
	getUserByID        = store.GetUserByID
	getUserByLoginID   = store.GetUserByLoginID
	loginIDTaken       = store.LoginIDTaken
	listUsers          = store.ListUsers
	createUser         = store.CreateUser
	updateUser         = store.UpdateUser
	updateUserPassword = store.UpdateUserPassword
	softDeleteUser     = store.SoftDeleteUser
)

// findActiveUser 取得未刪除的使用者，不存在或已刪除回傳 ErrUnknownUser
func findActiveUser(ctx context.Context, db database.DB, id int) (*model.User, error) {
	user, err := getUserByID(ctx, db, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUnknownUser
	}
	if err != nil {
		return nil, err
	}
	if user.RemovedFlag {
		return nil, ErrUnknownUser
	}
	return user, nil
}

// GetUser 依 ID 取得使用者，已刪除的使用者視為不存在
func GetUser(ctx context.Context, db database.DB, id int) (*model.User, error) {
	return findActiveUser(ctx, db, id)
}

// ListUsers 分頁查詢使用者
func ListUsers(ctx context.Context, db database.DB, req api.ListUsersRequest) (api.ListResult[api.UserResponse], error) {
	users, total, err := listUsers(ctx, db, req.Filter())
	if err != nil {
		return api.ListResult[api.UserResponse]{}, err
	}
	items := make([]api.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, api.NewUserResponse(&users[i]))
	}
	return api.ListResult[api.UserResponse]{
		Page:     req.Page,
		PageSize: req.PageSize,
		Total:    total,
		Items:    items,
	}, nil
}

// CheckLoginID 登入帳號可使用時回傳 true；excludeID 為目前編輯中的使用者
func CheckLoginID(ctx context.Context, db database.DB, loginID string, excludeID *int) (bool, error) {
	taken, err := loginIDTaken(ctx, db, loginID, excludeID)
	if err != nil {
		return false, err
	}
	return !taken, nil
}

// CreateUser 建立使用者
func CreateUser(ctx context.Context, db database.DB, req api.CreateUserRequest, operatorID int) (*model.User, error) {
	taken, err := loginIDTaken(ctx, db, req.LoginID, nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrAlreadyJoinedAccount
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	return createUser(ctx, db, &model.User{
		LoginID:      req.LoginID,
		Name:         req.Name,
		Role:         req.Role,
		PasswordHash: &hash,
		UseFlag:      req.UseFlag,
		Authorities:  req.Authorities,
	}, operatorID)
}

// UpdateUser 以 UpdateUserRequest 更新使用者
// 請求未帶密碼時保留原密碼
func UpdateUser(ctx context.Context, db database.DB, id int, req api.UpdateUserRequest, operatorID int) (*model.User, error) {
	var taken bool
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		taken, err = loginIDTaken(gctx, db, req.LoginID, &id)
		return err
	})
	g.Go(func() error {
		_, err := findActiveUser(gctx, db, id)
		return err
	})
	err := g.Wait()
	if taken {
		return nil, ErrAlreadyJoinedAccount
	}
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:          id,
		LoginID:     req.LoginID,
		Name:        req.Name,
		Role:        req.Role,
		UseFlag:     req.UseFlag,
		Authorities: req.Authorities,
	}
	if req.HasPassword() {
		hash, err := HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = &hash
	}

	updated, err := updateUser(ctx, db, user, operatorID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUnknownUser
	}
	return updated, err
}

// ChangePassword 驗證舊密碼後更新為新密碼
func ChangePassword(ctx context.Context, db database.DB, id int, req api.ChangePasswordRequest, operatorID int) (*model.User, error) {
	user, err := findActiveUser(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if err := AuthenticateUser(ctx, *user, req.OldPassword); err != nil {
		return nil, err
	}
	if ComparePassword(*user.PasswordHash, req.NewPassword) == nil {
		return nil, ErrSamePassword
	}

	hash, err := HashPassword(req.NewPassword)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	updated, err := updateUserPassword(ctx, db, id, hash, operatorID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUnknownUser
	}
	return updated, err
}

// DeleteUser 軟刪除使用者，不可刪除自己
func DeleteUser(ctx context.Context, db database.DB, id int, operatorID int) error {
	user, err := findActiveUser(ctx, db, id)
	if err != nil {
		return err
	}
	if user.ID == operatorID {
		return ErrCannotRemoveYourself
	}
	return softDeleteUser(ctx, db, id, operatorID)
}

// LoginResult 登入或換發令牌的結果
type LoginResult struct {
	User         *model.User
	AccessToken  string
	RefreshToken string
}

// Login 驗證帳號密碼並簽發令牌，刷新令牌寫入快取
func Login(ctx context.Context, db database.DB, c cache.Cache, tokens *TokenService, req api.LoginRequest) (*LoginResult, error) {
	user, err := getUserByLoginID(ctx, db, req.LoginID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUnjoinedAccount
	}
	if err != nil {
		return nil, err
	}
	if user.RemovedFlag || !user.UseFlag {
		return nil, ErrUnknownUser
	}
	if err := AuthenticateUser(ctx, *user, req.Password); err != nil {
		return nil, err
	}

	refresh, err := tokens.IssueRefreshToken(*user)
	if err != nil {
		return nil, err
	}
	if err := StoreRefreshToken(ctx, c, user.ID, refresh, tokens.RefreshTTL()); err != nil {
		return nil, err
	}
	access, err := tokens.IssueAccessToken(*user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user, AccessToken: access, RefreshToken: refresh}, nil
}

// RenewToken 以刷新令牌換發存取令牌
// 提交的刷新令牌與快取相同時輪替；不同但快取中的令牌剛簽發不久，視為併發刷新並沿用
func RenewToken(ctx context.Context, db database.DB, c cache.Cache, tokens *TokenService, refreshToken string) (*LoginResult, error) {
	claims, err := tokens.Verify(refreshToken, TokenTypeRefresh)
	if err != nil {
		return nil, ErrUnauthorized
	}
	user, err := getUserByID(ctx, db, claims.UserID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUnknownUser
	}
	if err != nil {
		return nil, err
	}
	if user.RemovedFlag || !user.UseFlag {
		return nil, ErrUnauthorized
	}

	stored, err := LoadRefreshToken(ctx, c, user.ID)
	if err != nil {
		return nil, err
	}

	switch {
	case stored == refreshToken:
		rotated, err := tokens.IssueRefreshToken(*user)
		if err != nil {
			return nil, err
		}
		if err := StoreRefreshToken(ctx, c, user.ID, rotated, tokens.RefreshTTL()); err != nil {
			return nil, err
		}
		stored = rotated
	case tokens.issuedWithin(stored, refreshGracePeriod):
	default:
		return nil, ErrUnauthorized
	}

	access, err := tokens.IssueAccessToken(*user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user, AccessToken: access, RefreshToken: stored}, nil
}

// Logout 清除刷新令牌
func Logout(ctx context.Context, c cache.Cache, userID int) error {
	return RevokeRefreshToken(ctx, c, userID)
}

// EnsureAdmin 登入帳號不存在時建立具備全部權限的管理員
func EnsureAdmin(ctx context.Context, db database.DB, loginID, password string) (bool, error) {
	if loginID == "" || password == "" {
		return false, nil
	}
	taken, err := loginIDTaken(ctx, db, loginID, nil)
	if err != nil {
		return false, err
	}
	if taken {
		return false, nil
	}
	hash, err := HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}
	_, err = createUser(ctx, db, &model.User{
		LoginID:      loginID,
		Name:         "Admin",
		Role:         model.UserTypeAdmin,
		PasswordHash: &hash,
		UseFlag:      true,
		Authorities:  append([]model.Authority(nil), model.Authorities...),
	}, 0)
	if err != nil {
		return false, err
	}
	return true, nil
}
