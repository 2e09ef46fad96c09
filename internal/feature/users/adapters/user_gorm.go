// Package adapters はusersフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"blog_backend/internal/feature/users/domain/entity"
	"blog_backend/internal/feature/users/usecase"
)

// userGorm はUserRepositoryインターフェースのGORM実装です。
// ユーザーのブログID集合は user_blogs テーブルで管理します。
type userGorm struct {
	db *gorm.DB
}

// userGormがUserRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserGorm は指定されたgorm.DB接続でuserGormの新しいインスタンスを生成します。
func NewUserGorm(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// Create はユーザーをデータベースに追加します。IDが未設定なら新しいUUIDを割り当てます。
// 同じユーザー名が既に存在する場合、usecase.ErrUsernameTakenを返します。
func (r *userGorm) Create(ctx context.Context, u *entity.User) error {
	if u == nil {
		return errors.New("user is nil")
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	m := UserModelFromEntity(u)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return usecase.ErrUsernameTaken
		}
		return err
	}
	u.CreatedAt = m.CreatedAt
	u.UpdatedAt = m.UpdatedAt
	if u.BlogIDs == nil {
		u.BlogIDs = []uuid.UUID{}
	}
	return nil
}

// FindByUsername はユーザー名（大文字小文字を区別）でユーザーを取得します。
func (r *userGorm) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.findOne(ctx, "username = ?", username)
}

// FindByID はIDでユーザーを取得します。
func (r *userGorm) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.findOne(ctx, "id = ?", id.String())
}

// FindByIDs は指定IDのユーザーをまとめて取得します。存在しないIDは無視されます。
func (r *userGorm) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.User, error) {
	if len(ids) == 0 {
		return []*entity.User{}, nil
	}
	var models []UserModel
	if err := r.db.WithContext(ctx).Where("id IN ?", toStrings(ids)).Find(&models).Error; err != nil {
		return nil, err
	}
	return r.withBlogIDs(ctx, models)
}

// List は全ユーザーを作成順に取得します。
func (r *userGorm) List(ctx context.Context) ([]*entity.User, error) {
	var models []UserModel
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	return r.withBlogIDs(ctx, models)
}

// AddBlog はユーザーのブログID集合にblogIDを追加します。既に含まれていれば何もしません。
func (r *userGorm) AddBlog(ctx context.Context, userID, blogID uuid.UUID) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&UserModel{}).Where("id = ?", userID.String()).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return usecase.ErrUserNotFound
	}
	link := &UserBlogModel{UserID: userID.String(), BlogID: blogID.String(), CreatedAt: time.Now()}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(link).Error
}

// RemoveBlog はユーザーのブログID集合からblogIDを取り除きます。
func (r *userGorm) RemoveBlog(ctx context.Context, userID, blogID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND blog_id = ?", userID.String(), blogID.String()).
		Delete(&UserBlogModel{}).Error
}

func (r *userGorm) findOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	var m UserModel
	if err := r.db.WithContext(ctx).Where(query, arg).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	users, err := r.withBlogIDs(ctx, []UserModel{m})
	if err != nil {
		return nil, err
	}
	return users[0], nil
}

// withBlogIDs は user_blogs を1クエリで読み込み、各ユーザーのブログID集合を設定します。
func (r *userGorm) withBlogIDs(ctx context.Context, models []UserModel) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(models))
	if len(models) == 0 {
		return out, nil
	}

	userIDs := make([]string, len(models))
	for i, m := range models {
		userIDs[i] = m.ID
	}

	var links []UserBlogModel
	if err := r.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Order("created_at ASC").
		Find(&links).Error; err != nil {
		return nil, err
	}

	byUser := make(map[string][]uuid.UUID, len(models))
	for _, l := range links {
		id, err := uuid.Parse(l.BlogID)
		if err != nil {
			return nil, err
		}
		byUser[l.UserID] = append(byUser[l.UserID], id)
	}

	for i := range models {
		out = append(out, models[i].ToEntity(byUser[models[i].ID]))
	}
	return out, nil
}

func toStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
