// Package dto はblogsフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import (
	"blog_backend/internal/feature/blogs/domain/entity"
)

// CreateBlogReq はPOST /blogsのリクエストボディです。
type CreateBlogReq struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  *int   `json:"likes"`
}

// UpdateBlogReq はPUT /blogs/:idのリクエストボディです。省略されたフィールドは変更されません。
type UpdateBlogReq struct {
	Title  *string `json:"title"`
	Author *string `json:"author"`
	URL    *string `json:"url"`
	Likes  *int    `json:"likes"`
}

// CommentReq はPOST /blogs/:id/commentsのリクエストボディです。
type CommentReq struct {
	Text string `json:"text"`
}

// OwnerRes はブログ所有者の公開情報です。
type OwnerRes struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// CommentAuthorRes はコメント投稿者の公開情報です。
type CommentAuthorRes struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

// CommentRes はコメントのレスポンス表現です。
type CommentRes struct {
	Text string            `json:"text"`
	User *CommentAuthorRes `json:"user"`
}

// BlogRes はブログのレスポンス表現です。内部の保存用IDやメタデータは含みません。
type BlogRes struct {
	ID       string       `json:"id"`
	Title    string       `json:"title"`
	Author   string       `json:"author"`
	URL      string       `json:"url"`
	Likes    int          `json:"likes"`
	User     *OwnerRes    `json:"user"`
	Comments []CommentRes `json:"comments"`
}

// NewBlogRes はエンティティをレスポンス表現に変換します。
func NewBlogRes(b *entity.Blog) BlogRes {
	res := BlogRes{
		ID:       b.ID.String(),
		Title:    b.Title,
		Author:   b.Author,
		URL:      b.URL,
		Likes:    b.Likes,
		Comments: make([]CommentRes, 0, len(b.Comments)),
	}
	if b.Owner != nil {
		res.User = &OwnerRes{ID: b.Owner.ID.String(), Username: b.Owner.Username, Name: b.Owner.Name}
	}
	for _, c := range b.Comments {
		cr := CommentRes{Text: c.Text}
		if c.User != nil {
			cr.User = &CommentAuthorRes{Username: c.User.Username, Name: c.User.Name}
		}
		res.Comments = append(res.Comments, cr)
	}
	return res
}

// NewBlogResList はエンティティのスライスを変換します。
func NewBlogResList(blogs []entity.Blog) []BlogRes {
	out := make([]BlogRes, 0, len(blogs))
	for i := range blogs {
		out = append(out, NewBlogRes(&blogs[i]))
	}
	return out
}
