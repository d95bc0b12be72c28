// Package main はAPIサーバーのエントリーポイントです。
package main

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/todo-api/internal/auth"
	"github.com/yourusername/todo-api/internal/config"
	"github.com/yourusername/todo-api/internal/ratelimit"
	"github.com/yourusername/todo-api/internal/todo"
)

func main() {
	// 設定の読み込み
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Ginのモードを設定
	gin.SetMode(cfg.GinMode)

	// Ginルーターの初期化（デフォルトミドルウェア: Logger, Recovery）
	router := gin.Default()
	router.SetHTMLTemplate(todo.Templates())

	// セッションストアの設定（クッキー署名鍵は必須）
	store := cookie.NewStore([]byte(cfg.SecretKey))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   auth.SessionMaxAgeSeconds(),
		HttpOnly: true,
		Secure:   cfg.GinMode == gin.ReleaseMode,
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions(auth.SessionCookieName, store))

	// CORSミドルウェアの設定
	corsConfig := cors.DefaultConfig()
	// CORS許可オリジンを設定（カンマ区切りの文字列を配列に変換）
	origins := strings.Split(cfg.CORSAllowedOrigins, ",")
	corsConfig.AllowOrigins = origins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{
		"Origin",
		"Content-Type",
		"Accept",
		"X-CSRF-Token", // CSRF保護用ヘッダー
	}
	// フロントエンドがレスポンスヘッダーから CSRF トークンを読み取れるように公開
	corsConfig.ExposeHeaders = []string{"X-CSRF-Token"}
	router.Use(cors.New(corsConfig))

	// ルーティングの設定
	if err := setupRoutes(router, cfg); err != nil {
		log.Fatalf("Failed to set up routes: %v", err)
	}

	// サーバーの起動
	addr := ":" + cfg.Port
	log.Printf("Starting todo API server on %s (mode: %s)", addr, cfg.GinMode)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRoutes は認証・レート制限・CRUDエンドポイントの配線を行います。
func setupRoutes(router *gin.Engine, cfg *config.Config) error {
	authManager, err := auth.NewManager(cfg)
	if err != nil {
		return err
	}

	handler := todo.NewHandler(todo.NewStore())

	router.GET("/", todo.Landing)

	// ログイン時はセッション未生成なので CSRF 検証は不要
	router.POST("/login", ratelimit.PerClient(cfg.LoginRatePerMinute), authManager.Login)
	router.POST("/logout",
		authManager.RequireLogin(),
		authManager.VerifyCSRF(),
		authManager.Logout,
	)
	router.GET("/dashboard", authManager.RequireLogin(), handler.Dashboard)

	todos := router.Group("/todos")
	todos.Use(authManager.RequireLogin(), authManager.VerifyCSRF())
	{
		// レート制限はエンドポイントごとに独立して数える
		todos.GET("", ratelimit.PerClient(cfg.TodoRatePerMinute), handler.List)
		todos.POST("", ratelimit.PerClient(cfg.TodoRatePerMinute), handler.Create)
		todos.PUT("/:id", ratelimit.PerClient(cfg.TodoRatePerMinute), handler.Update)
		todos.DELETE("/:id", ratelimit.PerClient(cfg.TodoRatePerMinute), handler.Delete)
	}

	return nil
}
