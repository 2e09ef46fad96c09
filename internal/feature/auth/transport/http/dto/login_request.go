// Package dto はauthフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// LoginReq は/loginエンドポイントのリクエストボディを表します。
type LoginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRes はログイン成功時のレスポンスです。
type LoginRes struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name"`
}
