package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"blog_backend/internal/feature/blogs/domain/entity"
	userentity "blog_backend/internal/feature/users/domain/entity"
	"blog_backend/internal/shared/apperr"
	"blog_backend/internal/shared/validation"
)

// BlogRepository はブログエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはコンシューマー（usecase）が定義します。
type BlogRepository interface {
	// List は全ブログをコメント付きで作成順に返します。所有者・投稿者は未解決です。
	List(ctx context.Context) ([]entity.Blog, error)

	// FindByID はブログを取得します。存在しない場合はErrBlogNotFoundを返します。
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Blog, error)

	// FindByIDs は指定IDのブログをまとめて取得します。存在しないIDは無視されます。
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Blog, error)

	// Create はブログを永続化し、IDを割り当てます。
	Create(ctx context.Context, blog *entity.Blog) error

	// Update は指定されたフィールドのみを書き換えます。存在しない場合はErrBlogNotFoundを返します。
	Update(ctx context.Context, id uuid.UUID, patch entity.BlogPatch) error

	// Delete はブログとそのコメントを削除します。存在しない場合はErrBlogNotFoundを返します。
	Delete(ctx context.Context, id uuid.UUID) error

	// AppendComment はコメントをブログのコメント列の末尾に追加します。
	AppendComment(ctx context.Context, blogID uuid.UUID, comment *entity.Comment) error
}

// OwnerRepository はユーザー側のブログID集合（逆参照）と参照ユーザーの解決を担います。
type OwnerRepository interface {
	AddBlog(ctx context.Context, userID, blogID uuid.UUID) error
	RemoveBlog(ctx context.Context, userID, blogID uuid.UUID) error
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*userentity.User, error)
}

// CreateBlogInput はブログ作成の入力です。Likes省略時は0になります。
type CreateBlogInput struct {
	Title  string `json:"title" validate:"required"`
	Author string `json:"author"`
	URL    string `json:"url" validate:"required"`
	Likes  *int   `json:"likes" validate:"omitempty,min=0"`
}

// UpdateBlogInput はブログ更新の入力です。指定されたフィールドのみ置き換えます。
type UpdateBlogInput struct {
	Title  *string `json:"title" validate:"omitempty,min=1"`
	Author *string `json:"author"`
	URL    *string `json:"url" validate:"omitempty,min=1"`
	Likes  *int    `json:"likes"`
}

// CommentInput はコメント追加の入力です。
type CommentInput struct {
	Text string `json:"text" validate:"required"`
}

var blogMessages = validation.Messages{
	"title.required": "title is required",
	"title.min":      "title must not be empty",
	"url.required":   "url is required",
	"url.min":        "url must not be empty",
	"likes.min":      "likes must not be negative",
	"text.required":  "comment text is required",
}

// blogUsecase はブログ集約のビジネスロジックを実装します。
type blogUsecase struct {
	blogs     BlogRepository
	owners    OwnerRepository
	validator *validation.Validator
}

// NewBlogUsecase はblogUsecaseの新しいインスタンスを生成します。
func NewBlogUsecase(blogs BlogRepository, owners OwnerRepository) *blogUsecase {
	return &blogUsecase{
		blogs:     blogs,
		owners:    owners,
		validator: validation.New(),
	}
}

// ParseID はパスパラメータのIDを解析します。UUID形式でなければapperr.ErrMalformedIDを返します。
func ParseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperr.ErrMalformedID
	}
	return id, nil
}

// List は所有者とコメント投稿者を解決した全ブログを返します。
func (u *blogUsecase) List(ctx context.Context) ([]entity.Blog, error) {
	blogs, err := u.blogs.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := u.populate(ctx, blogs); err != nil {
		return nil, err
	}
	return blogs, nil
}

// Get は単一のブログを解決済みの状態で返します。
func (u *blogUsecase) Get(ctx context.Context, rawID string) (*entity.Blog, error) {
	id, err := ParseID(rawID)
	if err != nil {
		return nil, err
	}
	return u.load(ctx, id)
}

// Create はブログを作成し、所有者のブログID集合に追加します。
// 2回の書き込みは逐次実行でロールバックは行いません。2回目が失敗した場合はエラーとして返します。
func (u *blogUsecase) Create(ctx context.Context, ownerID uuid.UUID, in CreateBlogInput) (*entity.Blog, error) {
	if err := u.validator.Struct(in, blogMessages); err != nil {
		return nil, err
	}

	likes := 0
	if in.Likes != nil {
		likes = *in.Likes
	}
	blog := &entity.Blog{
		Title:    in.Title,
		Author:   in.Author,
		URL:      in.URL,
		Likes:    likes,
		OwnerID:  ownerID,
		Comments: []entity.Comment{},
	}
	if err := u.blogs.Create(ctx, blog); err != nil {
		return nil, fmt.Errorf("create blog: %w", err)
	}
	// TODO: add a compensating delete (or a single transaction) once the repositories share a unit of work.
	if err := u.owners.AddBlog(ctx, ownerID, blog.ID); err != nil {
		return nil, fmt.Errorf("link blog %s to owner %s: %w", blog.ID, ownerID, err)
	}

	if err := u.populateOne(ctx, blog); err != nil {
		return nil, err
	}
	return blog, nil
}

// Delete は所有者本人の場合のみブログを削除し、所有者のブログID集合からも取り除きます。
func (u *blogUsecase) Delete(ctx context.Context, actorID uuid.UUID, rawID string) error {
	id, err := ParseID(rawID)
	if err != nil {
		return err
	}
	blog, err := u.blogs.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if blog.OwnerID != actorID {
		return apperr.ErrForbidden
	}
	if err := u.blogs.Delete(ctx, id); err != nil {
		return err
	}
	if err := u.owners.RemoveBlog(ctx, blog.OwnerID, id); err != nil {
		return fmt.Errorf("unlink blog %s from owner %s: %w", id, blog.OwnerID, err)
	}
	return nil
}

// Update は指定フィールドを置き換え、解決済みのブログを返します。
// 「いいね」用のエンドポイントであり、所有者チェックは行いません。
func (u *blogUsecase) Update(ctx context.Context, rawID string, in UpdateBlogInput) (*entity.Blog, error) {
	id, err := ParseID(rawID)
	if err != nil {
		return nil, err
	}
	if err := u.validator.Struct(in, blogMessages); err != nil {
		return nil, err
	}

	patch := entity.BlogPatch{Title: in.Title, Author: in.Author, URL: in.URL, Likes: in.Likes}
	if patch.IsEmpty() {
		return u.load(ctx, id)
	}
	if err := u.blogs.Update(ctx, id, patch); err != nil {
		return nil, err
	}
	return u.load(ctx, id)
}

// AddComment はコメントをブログ末尾に追加し、解決済みのブログを返します。
func (u *blogUsecase) AddComment(ctx context.Context, authorID uuid.UUID, rawID string, in CommentInput) (*entity.Blog, error) {
	id, err := ParseID(rawID)
	if err != nil {
		return nil, err
	}
	if err := u.validator.Struct(in, blogMessages); err != nil {
		return nil, err
	}
	if _, err := u.blogs.FindByID(ctx, id); err != nil {
		return nil, err
	}
	if err := u.blogs.AppendComment(ctx, id, &entity.Comment{Text: in.Text, UserID: authorID}); err != nil {
		return nil, err
	}
	return u.load(ctx, id)
}

func (u *blogUsecase) load(ctx context.Context, id uuid.UUID) (*entity.Blog, error) {
	blog, err := u.blogs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := u.populateOne(ctx, blog); err != nil {
		return nil, err
	}
	return blog, nil
}

func (u *blogUsecase) populateOne(ctx context.Context, blog *entity.Blog) error {
	blogs := []entity.Blog{*blog}
	if err := u.populate(ctx, blogs); err != nil {
		return err
	}
	*blog = blogs[0]
	return nil
}

// populate は所有者とコメント投稿者のIDを集め、1回の取得で解決してマージします。
func (u *blogUsecase) populate(ctx context.Context, blogs []entity.Blog) error {
	seen := make(map[uuid.UUID]struct{})
	var ids []uuid.UUID
	add := func(id uuid.UUID) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	for _, b := range blogs {
		add(b.OwnerID)
		for _, c := range b.Comments {
			add(c.UserID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	users, err := u.owners.FindByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("resolve users: %w", err)
	}
	refs := make(map[uuid.UUID]*entity.UserRef, len(users))
	for _, usr := range users {
		refs[usr.ID] = &entity.UserRef{ID: usr.ID, Username: usr.Username, Name: usr.Name}
	}

	for i := range blogs {
		blogs[i].Owner = refs[blogs[i].OwnerID]
		comments := make([]entity.Comment, len(blogs[i].Comments))
		for j, c := range blogs[i].Comments {
			c.User = refs[c.UserID]
			comments[j] = c
		}
		blogs[i].Comments = comments
	}
	return nil
}
