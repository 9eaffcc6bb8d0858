// Package dto defines data transfer objects for the items feature's HTTP transport layer.
package dto

// CreateItemReq represents the multipart form fields for POST /items.
// The optional image arrives as the `file` form part and is handled
// separately by the handler.
type CreateItemReq struct {
	Category    string `form:"category"`
	Condition   string `form:"condition"`
	AgeDays     int    `form:"age_days"`
	Description string `form:"description"`
}

// UpdateItemReq は PUT /items/:id のリクエストボディを表します。
// 4フィールドはすべてそのまま上書きされます。省略されたフィールドは
// ゼロ値で格納値を上書きします（公開APIの互換仕様）。
type UpdateItemReq struct {
	Category    string `json:"category"`
	Condition   string `json:"condition"`
	AgeDays     int    `json:"age_days"`
	Description string `json:"description"`
}
