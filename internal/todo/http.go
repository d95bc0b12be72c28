package todo

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/todo-api/internal/auth"
)

// Handler はTodo APIのハンドラー群です。
// 認証済みユーザー名は auth.RequireLogin が設定したコンテキスト値から読み取ります。
type Handler struct {
	store *Store
}

// NewHandler はハンドラーを作成します。
func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

type createRequest struct {
	Title string `json:"title" binding:"required"`
}

type updateRequest struct {
	Title  *string `json:"title"`
	Status *string `json:"status"`
}

// List は GET /todos のハンドラーです。呼び出しユーザーのTodoのみを作成順で返します。
func (h *Handler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ListByOwner(auth.Identity(c)))
}

// Create は POST /todos のハンドラーです。
func (h *Handler) Create(c *gin.Context) {
	if c.ContentType() != "application/json" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content-Type must be application/json"})
		return
	}

	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}

	created := h.store.Create(auth.Identity(c), req.Title)
	c.JSON(http.StatusCreated, created)
}

// Update は PUT /todos/:id のハンドラーです。
// ボディの存在しないフィールドは変更しません（空のオブジェクトも受け付けます）。
// 他の所有者のTodoは見つからなかったものとして 404 を返します。
func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Todo not found"})
		return
	}

	if c.ContentType() != "application/json" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content-Type must be application/json"})
		return
	}

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No data provided"})
		return
	}

	updated, found := h.store.Update(auth.Identity(c), id, req.Title, req.Status)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Todo not found"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete は DELETE /todos/:id のハンドラーです。成功時はボディなしの 204 を返します。
func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok || !h.store.Delete(auth.Identity(c), id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Todo not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// parseID はパスパラメーターのTodo IDを解釈します。整数でない場合は false を返します。
func parseID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, false
	}
	return id, true
}
