package middlewares

import (
	"log"
	"net/http"
	"time"

	"github.com/SketchShifter/portfolio_backend/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// sessionKey 閲覧セッションを保存するコンテキストのキー
const sessionKey = "viewerSession"

// SessionOptions 閲覧セッションCookieの設定
type SessionOptions struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// SessionMiddleware Cookieの閲覧者IDからセッションを読み込む
// Cookie がない、または不正な場合は新しいIDを発行する。ストアに接続できない場合は空のセッションで続行する
func SessionMiddleware(store session.Store, opts SessionOptions) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, err := ctx.Cookie(opts.CookieName)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
		}
		ctx.SetSameSite(http.SameSiteLaxMode)
		ctx.SetCookie(opts.CookieName, id, int(opts.TTL.Seconds()), "/", "", opts.Secure, true)

		sess, err := store.Load(ctx.Request.Context(), id)
		if err != nil {
			log.Printf("閲覧セッションの読み込みに失敗しました: session=%s: %v", id, err)
			sess = session.New(id)
		}

		ctx.Set(sessionKey, sess)
		ctx.Next()
	}
}

// ViewerSession コンテキストから閲覧セッションを取得 (ミドルウェア未適用なら nil)
func ViewerSession(ctx *gin.Context) *session.Session {
	value, exists := ctx.Get(sessionKey)
	if !exists {
		return nil
	}
	sess, _ := value.(*session.Session)
	return sess
}
