// Package entity はblogsフィーチャーのドメインエンティティを定義します。
package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserRef は参照先ユーザーの公開情報です。取得時に所有者やコメント投稿者を解決して設定されます。
type UserRef struct {
	ID       uuid.UUID
	Username string
	Name     string
}

// Comment はブログに埋め込まれたコメントです。個別のライフサイクルは持たず、追加のみ可能です。
type Comment struct {
	Text      string
	UserID    uuid.UUID
	User      *UserRef
	CreatedAt time.Time
}

// Blog はユーザーが所有するブログ記事を表します。
type Blog struct {
	ID     uuid.UUID
	Title  string
	Author string
	URL    string
	Likes  int

	// OwnerID は作成後に変更されません。
	OwnerID uuid.UUID
	// Owner は取得時に解決される所有者情報です（未解決ならnil）。
	Owner *UserRef

	// Comments は追加順に並びます。
	Comments []Comment

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BlogPatch は更新対象のフィールドのみを保持します。nilのフィールドは変更されません。
type BlogPatch struct {
	Title  *string
	Author *string
	URL    *string
	Likes  *int
}

// IsEmpty は更新対象のフィールドが一つもない場合にtrueを返します。
func (p BlogPatch) IsEmpty() bool {
	return p.Title == nil && p.Author == nil && p.URL == nil && p.Likes == nil
}
