package api

// NoticeRequest 建立與更新公告共用的請求內容
// swagger:model api.NoticeRequest
type NoticeRequest struct {
	Title   string `json:"title" form:"title" validate:"required,max=100" example:"系統維護公告"`
	Content string `json:"content" form:"content" validate:"required" example:"本週六 02:00 至 04:00 停機維護"`
	UseFlag bool   `json:"use_flag" form:"use_flag" example:"true"`
}

// Schema 回傳欄位文件描述
func (r NoticeRequest) Schema() []FieldDoc {
	return []FieldDoc{
		{Name: "title", Type: "string", Description: "標題", Required: true},
		{Name: "content", Type: "string", Description: "內容", Required: true},
		{Name: "use_flag", Type: "boolean", Description: "是否公開", Required: true},
	}
}
