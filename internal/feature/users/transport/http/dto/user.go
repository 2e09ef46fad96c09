// Package dto defines data transfer objects for the users feature's HTTP transport layer.
package dto

import (
	blogentity "blog_backend/internal/feature/blogs/domain/entity"
	"blog_backend/internal/feature/users/domain/entity"
)

// CreateUserReq is the body of POST /users. Rules are checked by the usecase so that
// each violation gets its own message.
type CreateUserReq struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// BlogSummary is a blog as listed under its owner.
type BlogSummary struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  int    `json:"likes"`
}

// UserRes is the external representation of a user.
// It exposes only id and never the password hash or storage metadata.
type UserRes struct {
	ID       string        `json:"id"`
	Username string        `json:"username"`
	Name     string        `json:"name"`
	Blogs    []BlogSummary `json:"blogs"`
}

// NewUserRes builds a UserRes. blogs may be nil, in which case the ids of the
// back-reference set are listed without details.
func NewUserRes(u *entity.User, blogs []blogentity.Blog) UserRes {
	res := UserRes{
		ID:       u.ID.String(),
		Username: u.Username,
		Name:     u.Name,
		Blogs:    make([]BlogSummary, 0, len(u.BlogIDs)),
	}
	if blogs == nil {
		for _, id := range u.BlogIDs {
			res.Blogs = append(res.Blogs, BlogSummary{ID: id.String()})
		}
		return res
	}
	for _, b := range blogs {
		res.Blogs = append(res.Blogs, BlogSummary{
			ID:     b.ID.String(),
			Title:  b.Title,
			Author: b.Author,
			URL:    b.URL,
			Likes:  b.Likes,
		})
	}
	return res
}
