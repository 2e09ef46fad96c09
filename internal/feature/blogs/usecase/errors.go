// Package usecase はblogsフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"fmt"

	"blog_backend/internal/shared/apperr"
)

// ErrBlogNotFound is returned when no blog has the requested ID.
var ErrBlogNotFound = fmt.Errorf("blog: %w", apperr.ErrNotFound)
