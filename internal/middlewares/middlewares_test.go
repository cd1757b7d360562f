package middlewares

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SketchShifter/portfolio_backend/internal/models"
	"github.com/SketchShifter/portfolio_backend/internal/services"
	"github.com/SketchShifter/portfolio_backend/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAuthMiddleware(t *testing.T) {
	auth := services.NewAuthService("secret")
	token, err := auth.GenerateToken(models.CurrentUser{ID: "alice", Name: "Alice"}, time.Hour)
	require.NoError(t, err)

	var seen *models.CurrentUser
	r := gin.New()
	r.GET("/required", AuthMiddleware(auth), func(ctx *gin.Context) {
		seen = CurrentUser(ctx)
		ctx.Status(http.StatusOK)
	})
	r.GET("/optional", OptionalAuthMiddleware(auth), func(ctx *gin.Context) {
		seen = CurrentUser(ctx)
		ctx.Status(http.StatusOK)
	})

	tests := []struct {
		name   string
		path   string
		header string
		code   int
		user   *models.CurrentUser
	}{
		{name: "必須・ヘッダーなし", path: "/required", code: http.StatusUnauthorized},
		{name: "必須・形式不正", path: "/required", header: "Token " + token, code: http.StatusUnauthorized},
		{name: "必須・無効なトークン", path: "/required", header: "Bearer broken", code: http.StatusUnauthorized},
		{name: "必須・有効", path: "/required", header: "Bearer " + token, code: http.StatusOK, user: &models.CurrentUser{ID: "alice", Name: "Alice"}},
		{name: "任意・ヘッダーなし", path: "/optional", code: http.StatusOK},
		{name: "任意・無効なトークン", path: "/optional", header: "Bearer broken", code: http.StatusOK},
		{name: "任意・有効", path: "/optional", header: "Bearer " + token, code: http.StatusOK, user: &models.CurrentUser{ID: "alice", Name: "Alice"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.user, seen)
		})
	}
}

type failingStore struct{}

func (failingStore) Load(context.Context, string) (*session.Session, error) {
	return nil, session.ErrStoreUnavailable
}

func (failingStore) Save(context.Context, *session.Session) error {
	return session.ErrStoreUnavailable
}

func TestSessionMiddleware(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	opts := SessionOptions{CookieName: "viewer_sid", TTL: time.Hour}

	var seen *session.Session
	r := gin.New()
	r.GET("/", SessionMiddleware(store, opts), func(ctx *gin.Context) {
		seen = ViewerSession(ctx)
		ctx.Status(http.StatusOK)
	})

	serve := func(cookie *http.Cookie) *http.Cookie {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if cookie != nil {
			req.AddCookie(cookie)
		}
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		for _, c := range rec.Result().Cookies() {
			if c.Name == "viewer_sid" {
				return c
			}
		}
		return nil
	}

	issued := serve(nil)
	require.NotNil(t, issued)
	assert.NoError(t, uuid.Validate(issued.Value))
	assert.True(t, issued.HttpOnly)
	require.NotNil(t, seen)
	assert.Equal(t, issued.Value, seen.ID)

	// 保存済みの閲覧履歴を読み込む
	seen.MarkViewed(3, time.Now())
	require.NoError(t, store.Save(context.Background(), seen))

	reused := serve(issued)
	assert.Equal(t, issued.Value, reused.Value)
	_, ok := seen.LastViewed(3)
	assert.True(t, ok)

	// 不正なIDは作り直す
	replaced := serve(&http.Cookie{Name: "viewer_sid", Value: "../../etc"})
	assert.NotEqual(t, "../../etc", replaced.Value)
	assert.NoError(t, uuid.Validate(replaced.Value))
}

func TestSessionMiddleware_StoreUnavailable(t *testing.T) {
	var seen *session.Session
	r := gin.New()
	r.GET("/", SessionMiddleware(failingStore{}, SessionOptions{CookieName: "viewer_sid", TTL: time.Hour}), func(ctx *gin.Context) {
		seen = ViewerSession(ctx)
		ctx.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Empty(t, seen.ViewedPortfolios)
}

func TestErrorMiddleware_RecoversPanic(t *testing.T) {
	r := gin.New()
	r.Use(ErrorMiddleware())
	r.GET("/", func(*gin.Context) { panic(errors.New("boom")) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"サーバーエラーが発生しました"}`, rec.Body.String())
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://app.example.com"}))
	r.GET("/", func(ctx *gin.Context) { ctx.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
