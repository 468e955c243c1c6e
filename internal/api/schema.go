package api

// FieldDoc 描述請求欄位，供 API 文件產生使用
type FieldDoc struct {
	Name        string
	Type        string
	Description string
	Required    bool
}

func concatSchema(base []FieldDoc, extra ...FieldDoc) []FieldDoc {
	out := make([]FieldDoc, 0, len(base)+len(extra))
	out = append(out, base...)
	return append(out, extra...)
}
