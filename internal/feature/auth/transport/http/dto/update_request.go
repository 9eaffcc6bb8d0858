package dto

// UpdateReq は/auth/updateエンドポイントのリクエストボディを表します。
// ポインタで「未指定」と「空文字」を区別します。最小文字数チェックは
// チェック順序がAPI契約の一部であるためユースケース側で行います。
type UpdateReq struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Password  *string `json:"password"`
}
