// Package ratelimit はクライアントIP単位のレート制限ミドルウェアを提供します。
package ratelimit

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// window はレート制限の固定ウィンドウ長です。
// カウンターはウィンドウの折り返しでリセットされ、途中で回復することはありません。
const window = time.Minute

type bucket struct {
	windowStart time.Time
	count       int
}

// Registry はキーごとの固定ウィンドウカウンターを保持します。
type Registry struct {
	mu      sync.Mutex
	limit   int
	buckets map[string]*bucket
	now     func() time.Time // テストで差し替える
}

// NewRegistry は1ウィンドウあたり perMinute 回のレジストリを作成します。
func NewRegistry(perMinute int) *Registry {
	return &Registry{
		limit:   perMinute,
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

// Take はキーの現在ウィンドウから1回分を消費します。
// 上限に達している場合は false と、ウィンドウが折り返すまでの残り時間を返します。
func (r *Registry) Take(key string) (bool, time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	b, ok := r.buckets[key]
	if !ok || now.Sub(b.windowStart) >= window {
		b = &bucket{windowStart: now}
		r.buckets[key] = b
	}

	if b.count >= r.limit {
		return false, b.windowStart.Add(window).Sub(now)
	}
	b.count++
	return true, 0
}

// PerClient はクライアントIPごとに1分あたり perMinute 回へ制限するミドルウェアを返します。
// 呼び出しごとに独立したレジストリを持つため、エンドポイントごとに別々に数えられます。
// 制限を超えた場合は 429 を返し、後続のハンドラーは実行されません。
func PerClient(perMinute int) gin.HandlerFunc {
	registry := NewRegistry(perMinute)
	return func(c *gin.Context) {
		allowed, retryAfter := registry.Take(c.ClientIP())
		if !allowed {
			// Retry-After は秒数またはHTTP-Date形式が推奨されているため秒数で返す
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			return
		}
		c.Next()
	}
}
