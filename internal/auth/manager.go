// Package auth はセッションベースの認証とCSRF保護を提供します。
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/yourusername/todo-api/internal/config"
)

const (
	SessionCookieName  = "todo_session"
	sessionKeyUser     = "user_id"
	sessionKeyIssuedAt = "issued_at"
	sessionKeyCSRF     = "csrf_token"

	csrfHeader = "X-CSRF-Token"
)

// sessionLifetime はセッションの有効期間です。発行時刻から固定で、操作による延長はありません。
var sessionLifetime = time.Hour

// SessionMaxAgeSeconds はクッキーの MaxAge に利用する秒数を返します。
func SessionMaxAgeSeconds() int {
	return int(sessionLifetime.Seconds())
}

// ContextUserKey は、ハンドラー間でログイン済みユーザー名を共有するためのキーです。
const ContextUserKey = "auth.user"

// Identity は RequireLogin が解決した認証済みユーザー名を返します。
// 未認証のコンテキストでは空文字列を返します。
func Identity(c *gin.Context) string {
	return c.GetString(ContextUserKey)
}

// Manager は認証処理と状態をまとめた構造体です。
type Manager struct {
	cfg          *config.Config
	passwordHash []byte
}

// NewManager は認証マネージャーを作成します。
// 設定されたパスワードはこの時点で一度だけ bcrypt でハッシュ化されます。
func NewManager(cfg *config.Config) (*Manager, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &Manager{
		cfg:          cfg,
		passwordHash: hash,
	}, nil
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login は POST /login のハンドラーです。
// 未知のユーザーとパスワード誤りはレスポンス上区別しません。
func (m *Manager) Login(c *gin.Context) {
	if c.ContentType() != "application/json" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content-Type must be application/json"})
		return
	}

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
		return
	}

	if req.Username != m.cfg.AdminUsername || !m.verifyPassword(req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := generateToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate CSRF token"})
		return
	}

	session := sessions.Default(c)
	session.Set(sessionKeyUser, req.Username)
	session.Set(sessionKeyIssuedAt, time.Now().Unix())
	session.Set(sessionKeyCSRF, token)

	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
		return
	}

	c.Header(csrfHeader, token)
	c.JSON(http.StatusOK, gin.H{"message": "Login successful"})
}

// Logout は POST /logout のハンドラーです。セッションの内容を全て破棄します。
func (m *Manager) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// RequireLogin はセッションを検証するミドルウェアを返します。
// 有効なセッションがあれば ContextUserKey にユーザー名を設定して後続へ渡します。
func (m *Manager) RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		user, ok := session.Get(sessionKeyUser).(string)
		if !ok || user == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		issuedAt := readUnix(session.Get(sessionKeyIssuedAt))
		if issuedAt.IsZero() || time.Since(issuedAt) > sessionLifetime {
			session.Clear()
			_ = session.Save()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// VerifyCSRF は X-CSRF-Token ヘッダーを検証するミドルウェアを返します。
// 安全なメソッド（GET/HEAD/OPTIONS/TRACE）は検証をスキップします。
func (m *Manager) VerifyCSRF() gin.HandlerFunc {
	return func(c *gin.Context) {
		if isSafeMethod(c.Request.Method) {
			c.Next()
			return
		}

		session := sessions.Default(c)
		expected, ok := session.Get(sessionKeyCSRF).(string)
		received := c.GetHeader(csrfHeader)
		if !ok || expected == "" ||
			subtle.ConstantTimeCompare([]byte(expected), []byte(received)) != 1 {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "CSRF token missing or invalid"})
			return
		}

		c.Next()
	}
}

func (m *Manager) verifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword(m.passwordHash, []byte(password)) == nil
}

func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func readUnix(v interface{}) time.Time {
	switch t := v.(type) {
	case int64:
		return time.Unix(t, 0)
	case int:
		return time.Unix(int64(t), 0)
	case float64:
		return time.Unix(int64(t), 0)
	default:
		return time.Time{}
	}
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	default:
		return false
	}
}
