// Package stats computes reporting aggregates over an in-memory blog collection.
// Every function is pure and deterministic; inputs are never mutated.
package stats

import (
	"blog_backend/internal/feature/blogs/domain/entity"
)

// Favorite is the most-liked blog.
type Favorite struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

// AuthorBlogs is an author with the number of blogs they wrote.
type AuthorBlogs struct {
	Author string `json:"author"`
	Blogs  int    `json:"blogs"`
}

// AuthorLikes is an author with the summed likes of their blogs.
type AuthorLikes struct {
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

// Report bundles all four aggregates.
type Report struct {
	TotalLikes   int          `json:"totalLikes"`
	FavoriteBlog *Favorite    `json:"favoriteBlog"`
	MostBlogs    *AuthorBlogs `json:"mostBlogs"`
	MostLikes    *AuthorLikes `json:"mostLikes"`
}

// TotalLikes returns the sum of likes, 0 for an empty input.
func TotalLikes(blogs []entity.Blog) int {
	total := 0
	for _, b := range blogs {
		total += b.Likes
	}
	return total
}

// FavoriteBlog returns the blog with the most likes, or nil for an empty input.
// Ties go to the first blog in input order.
func FavoriteBlog(blogs []entity.Blog) *Favorite {
	if len(blogs) == 0 {
		return nil
	}
	top := blogs[0]
	for _, b := range blogs[1:] {
		if b.Likes > top.Likes {
			top = b
		}
	}
	return &Favorite{Title: top.Title, Author: top.Author, Likes: top.Likes}
}

// MostBlogs returns the author with the most blogs, or nil for an empty input.
// Ties go to the author encountered first.
func MostBlogs(blogs []entity.Blog) *AuthorBlogs {
	author, n, ok := maxByAuthor(blogs, func(entity.Blog) int { return 1 })
	if !ok {
		return nil
	}
	return &AuthorBlogs{Author: author, Blogs: n}
}

// MostLikes returns the author whose blogs have the highest summed likes, or nil for an empty input.
// Ties go to the author encountered first.
func MostLikes(blogs []entity.Blog) *AuthorLikes {
	author, n, ok := maxByAuthor(blogs, func(b entity.Blog) int { return b.Likes })
	if !ok {
		return nil
	}
	return &AuthorLikes{Author: author, Likes: n}
}

// Compute builds the full report.
func Compute(blogs []entity.Blog) Report {
	return Report{
		TotalLikes:   TotalLikes(blogs),
		FavoriteBlog: FavoriteBlog(blogs),
		MostBlogs:    MostBlogs(blogs),
		MostLikes:    MostLikes(blogs),
	}
}

// maxByAuthor sums weight per author and returns the highest total.
// Authors are compared in first-encountered order so the earliest wins ties.
func maxByAuthor(blogs []entity.Blog, weight func(entity.Blog) int) (string, int, bool) {
	if len(blogs) == 0 {
		return "", 0, false
	}

	totals := make(map[string]int)
	var order []string
	for _, b := range blogs {
		if _, seen := totals[b.Author]; !seen {
			order = append(order, b.Author)
		}
		totals[b.Author] += weight(b)
	}

	best := order[0]
	for _, a := range order[1:] {
		if totals[a] > totals[best] {
			best = a
		}
	}
	return best, totals[best], true
}
