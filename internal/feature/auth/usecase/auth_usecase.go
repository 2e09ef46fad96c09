// Package usecase はauthフィーチャーのビジネスロジック（資格情報の検証とトークンの解決）を実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	userentity "blog_backend/internal/feature/users/domain/entity"
	jwtmw "blog_backend/internal/platform/jwt"
	"blog_backend/internal/shared/apperr"
)

// dummyHash はユーザーが存在しない場合にもbcrypt比較を実行するためのダミーハッシュです。
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserRepository はユーザーの参照を抽象化します。
// Goの慣例に従い、インターフェースはコンシューマー（usecase）が定義します。
type UserRepository interface {
	// FindByUsername はユーザー名に一致するユーザーを取得します。
	FindByUsername(ctx context.Context, username string) (*userentity.User, error)

	// FindByID はIDに一致するユーザーを取得します。
	FindByID(ctx context.Context, id uuid.UUID) (*userentity.User, error)
}

// TokenGenerator は署名済みトークンの発行を定義します。
type TokenGenerator interface {
	GenerateToken(userID uuid.UUID, username string) (string, error)
}

// TokenVerifier はトークンの署名と有効期限の検証を定義します。
type TokenVerifier interface {
	Verify(token string) (*jwtmw.Claims, error)
}

// LoginResult はログイン成功時に返される情報です。
type LoginResult struct {
	Token    string
	Username string
	Name     string
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users     UserRepository
	generator TokenGenerator
	verifier  TokenVerifier
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, generator TokenGenerator, verifier TokenVerifier) *authUsecase {
	return &authUsecase{
		users:     users,
		generator: generator,
		verifier:  verifier,
	}
}

// Login はユーザー名とパスワードを検証し、成功時に署名済みトークンを返します。
// ユーザーが存在しない場合でもbcrypt比較を行い、どちらの失敗も同じエラーになります。
func (u *authUsecase) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := u.users.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	passwordHash := dummyHash
	if err == nil {
		passwordHash = user.PasswordHash
	}

	// 第1引数はハッシュ化パスワード、第2引数は平文パスワード
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))
	if err != nil || compareErr != nil {
		return nil, apperr.ErrInvalidCredentials
	}

	token, err := u.generator.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginResult{Token: token, Username: user.Username, Name: user.Name}, nil
}

// Resolve はトークンを検証し、埋め込まれたユーザーIDを永続化済みユーザーに解決します。
// 空トークン・署名不正・ユーザー不在は apperr.ErrTokenMissingOrInvalid、
// 期限切れは apperr.ErrTokenExpired を返します。
func (u *authUsecase) Resolve(ctx context.Context, token string) (*userentity.User, error) {
	if token == "" {
		return nil, apperr.ErrTokenMissingOrInvalid
	}

	claims, err := u.verifier.Verify(token)
	if err != nil {
		if errors.Is(err, jwtmw.ErrTokenExpired) {
			return nil, apperr.ErrTokenExpired
		}
		return nil, apperr.ErrTokenMissingOrInvalid
	}

	user, err := u.users.FindByID(ctx, claims.UserID())
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.ErrTokenMissingOrInvalid
		}
		return nil, fmt.Errorf("resolve token user: %w", err)
	}
	return user, nil
}
