package jwtmw

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userentity "blog_backend/internal/feature/users/domain/entity"
)

// TestMain はテスト実行前にGinをテストモードに設定します。
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type resolverFunc func(ctx context.Context, token string) (*userentity.User, error)

func (f resolverFunc) Resolve(ctx context.Context, token string) (*userentity.User, error) {
	return f(ctx, token)
}

// TestTokenExtractor はトークンの有無にかかわらずリクエストが通過することを検証します。
func TestTokenExtractor(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		wantToken string
		wantSet   bool
	}{
		{"bearer token", "Bearer abc", "abc", true},
		{"no header", "", "", false},
		{"other scheme", "Basic abc", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			var set bool
			r := gin.New()
			r.Use(TokenExtractor())
			r.GET("/", func(c *gin.Context) {
				v, ok := c.Get(ContextToken)
				set = ok
				if ok {
					got = v.(string)
				}
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.wantSet, set)
			assert.Equal(t, tt.wantToken, got)
		})
	}
}

// TestUserExtractor_Success は解決されたユーザーがコンテキストに設定されることを検証します。
func TestUserExtractor_Success(t *testing.T) {
	user := &userentity.User{ID: uuid.New(), Username: "root"}
	var seenToken string
	resolver := resolverFunc(func(_ context.Context, token string) (*userentity.User, error) {
		seenToken = token
		return user, nil
	})

	var current *userentity.User
	r := gin.New()
	r.Use(TokenExtractor(), UserExtractor(resolver))
	r.GET("/", func(c *gin.Context) {
		u, ok := CurrentUser(c)
		require.True(t, ok)
		current = u
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer tok")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "tok", seenToken)
	assert.Same(t, user, current)
}

// TestUserExtractor_Failure は解決に失敗した場合にエラーを記録して中断することを検証します。
func TestUserExtractor_Failure(t *testing.T) {
	resolveErr := errors.New("boom")
	resolver := resolverFunc(func(_ context.Context, token string) (*userentity.User, error) {
		assert.Empty(t, token)
		return nil, resolveErr
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	UserExtractor(resolver)(c)

	assert.True(t, c.IsAborted())
	require.Len(t, c.Errors, 1)
	assert.ErrorIs(t, c.Errors[0].Err, resolveErr)
	_, ok := CurrentUser(c)
	assert.False(t, ok)
}
