// Package config は環境変数から設定を読み込み、アプリケーション全体で使用する設定を提供します。
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// defaultSecretKey は開発用の署名鍵です。release モードでは使用できません。
const defaultSecretKey = "dev-key-change-in-production"

// Config はアプリケーションの設定を保持する構造体です。
type Config struct {
	// 認証設定
	SecretKey     string // セッションCookie署名用の秘密鍵
	AdminUsername string // 管理者ユーザー名
	AdminPassword string // 管理者パスワード（起動時にハッシュ化して保持する）

	// サーバー設定
	Port    string // APIサーバーのポート番号
	GinMode string // Ginの実行モード (debug, release, test)

	// CORS設定
	CORSAllowedOrigins string // CORS許可オリジン（カンマ区切り）

	// レート制限設定（回/分/クライアントIP）
	LoginRatePerMinute int // POST /login
	TodoRatePerMinute  int // /todos 系エンドポイント
}

// Load は環境変数から設定を読み込みます。
// .env.local ファイルが存在する場合はそこから読み込みます。
func Load() (*Config, error) {
	// .env.local ファイルを読み込む（存在しない場合はスキップ）
	loadEnvFile()

	config := &Config{
		// 認証設定
		SecretKey:     getEnv("SECRET_KEY", defaultSecretKey),
		AdminUsername: getEnv("ADMIN_USERNAME", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),

		// サーバー設定
		Port:    getEnv("PORT", "8080"),
		GinMode: getEnv("GIN_MODE", "debug"),

		// CORS設定
		CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),

		// レート制限設定
		LoginRatePerMinute: getEnvAsInt("LOGIN_RATE_PER_MINUTE", 5),
		TodoRatePerMinute:  getEnvAsInt("TODO_RATE_PER_MINUTE", 10),
	}

	// 必須設定のバリデーション
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func loadEnvFile() {
	if err := godotenv.Load(".env.local"); err == nil {
		return
	}

	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	parent := filepath.Dir(cwd)
	if parent == "" || parent == cwd {
		return
	}

	_ = godotenv.Load(filepath.Join(parent, ".env.local"))
}

// Validate は設定の妥当性を検証します。
func (c *Config) Validate() error {
	// ローカル開発では認証設定は任意
	// 本番環境では厳格にチェックする想定
	if c.GinMode == "release" {
		if c.SecretKey == "" || c.SecretKey == defaultSecretKey {
			return fmt.Errorf("SECRET_KEY is required in release mode")
		}
		if c.AdminUsername == "" {
			return fmt.Errorf("ADMIN_USERNAME is required in release mode")
		}
		if c.AdminPassword == "" {
			return fmt.Errorf("ADMIN_PASSWORD is required in release mode")
		}
	}

	if c.LoginRatePerMinute <= 0 {
		return fmt.Errorf("LOGIN_RATE_PER_MINUTE must be positive")
	}
	if c.TodoRatePerMinute <= 0 {
		return fmt.Errorf("TODO_RATE_PER_MINUTE must be positive")
	}

	return nil
}

// getEnv は環境変数を取得し、存在しない場合はデフォルト値を返します。
func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt は環境変数を整数として取得します。
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
