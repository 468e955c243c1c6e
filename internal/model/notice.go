package model

import "time"

// Notice 公告
type Notice struct {
	ID          int        `db:"id" json:"id"`
	Title       string     `db:"title" json:"title"`
	Content     string     `db:"content" json:"content"`
	UseFlag     bool       `db:"use_flag" json:"use_flag"`
	RemovedFlag bool       `db:"removed_flag" json:"removed_flag"`
	RemovedAt   *time.Time `db:"removed_at" json:"removed_at"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	CreatedBy   int        `db:"created_by" json:"created_by"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
	UpdatedBy   int        `db:"updated_by" json:"updated_by"`
}

// NoticeFilter 公告列表條件，nil 表示不過濾
type NoticeFilter struct {
	ID       *int
	Title    *string
	UseFlag  *bool
	Page     int
	PageSize int
}
