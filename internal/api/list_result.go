package api

// ListResult 分頁列表回應
type ListResult[T any] struct {
	Page     int `json:"page" example:"1"`
	PageSize int `json:"page_size" example:"10"`
	Total    int `json:"total" example:"42"`
	Items    []T `json:"items"`
}
