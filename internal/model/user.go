// File: internal/model/user.go
package model

import "time"

// UserType 使用者類型
type UserType string

const (
	UserTypeAdmin UserType = "ADMIN"
	UserTypeUser  UserType = "USER"
)

// Authority 權限代碼
type Authority string

const (
	AuthorityAdminView  Authority = "ADMIN_VIEW"
	AuthorityAdminEdit  Authority = "ADMIN_EDIT"
	AuthorityUserView   Authority = "USER_VIEW"
	AuthorityUserEdit   Authority = "USER_EDIT"
	AuthorityNoticeView Authority = "NOTICE_VIEW"
	AuthorityNoticeEdit Authority = "NOTICE_EDIT"
)

// Authorities 所有合法的權限代碼
var Authorities = []Authority{
	AuthorityAdminView,
	AuthorityAdminEdit,
	AuthorityUserView,
	AuthorityUserEdit,
	AuthorityNoticeView,
	AuthorityNoticeEdit,
}

// ValidAuthority 判斷字串是否為已知權限
func ValidAuthority(s string) bool {
	for _, a := range Authorities {
		if string(a) == s {
			return true
		}
	}
	return false
}

type User struct {
	ID               int         `db:"id" json:"id"`
	LoginID          string      `db:"login_id" json:"login_id"`
	Name             string      `db:"name" json:"name"`
	Role             UserType    `db:"role" json:"role"`
	PasswordHash     *string     `db:"password_hash" json:"-"`
	UseFlag          bool        `db:"use_flag" json:"use_flag"`
	Authorities      []Authority `db:"authorities" json:"authorities"`
	ChangePasswordAt *time.Time  `db:"change_password_at" json:"change_password_at"`
	LatestActiveAt   *time.Time  `db:"latest_active_at" json:"latest_active_at"`
	JoinedAt         *time.Time  `db:"joined_at" json:"joined_at"`
	RemovedFlag      bool        `db:"removed_flag" json:"removed_flag"`
	RemovedAt        *time.Time  `db:"removed_at" json:"removed_at"`
	CreatedAt        time.Time   `db:"created_at" json:"created_at"`
	CreatedBy        int         `db:"created_by" json:"created_by"`
	UpdatedAt        time.Time   `db:"updated_at" json:"updated_at"`
	UpdatedBy        int         `db:"updated_by" json:"updated_by"`
}

// HasAuthority 判斷使用者是否持有指定權限
func (u User) HasAuthority(a Authority) bool {
	for _, have := range u.Authorities {
		if have == a {
			return true
		}
	}
	return false
}

// UserFilter 列表查詢條件，nil 表示不過濾
type UserFilter struct {
	ID       *int
	LoginID  *string
	Name     *string
	UseFlag  *bool
	Page     int
	PageSize int
}
