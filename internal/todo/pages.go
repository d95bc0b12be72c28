package todo

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/todo-api/internal/auth"
)

const landingHTML = `<h1>Welcome to the Todo API</h1>
<p>This is an API for managing todos.</p>
<p>Use the following endpoints:</p>
<ul>
    <li>POST /login - Authenticate</li>
    <li>POST /logout - Logout</li>
    <li>GET /dashboard - View your todos</li>
    <li>GET /todos - List all todos</li>
    <li>POST /todos - Create a todo</li>
    <li>PUT /todos/&lt;id&gt; - Update a todo</li>
    <li>DELETE /todos/&lt;id&gt; - Delete a todo</li>
</ul>
`

const dashboardHTML = `<h1>Your Todos</h1>
<ul>
{{- range .Todos}}
    <li>{{.Title}} - {{.Status}}</li>
{{- end}}
</ul>
<p><a href="/logout">Logout</a></p>
`

// Templates は "/" と "/dashboard" で使用するHTMLテンプレートを返します。
// gin.Engine の SetHTMLTemplate に渡して利用します。
func Templates() *template.Template {
	t := template.Must(template.New("landing").Parse(landingHTML))
	template.Must(t.New("dashboard").Parse(dashboardHTML))
	return t
}

// Landing は GET / のハンドラーです。認証なしでエンドポイント一覧を表示します。
func Landing(c *gin.Context) {
	c.HTML(http.StatusOK, "landing", nil)
}

// Dashboard は GET /dashboard のハンドラーです。呼び出しユーザーのTodoをHTMLで表示します。
func (h *Handler) Dashboard(c *gin.Context) {
	c.HTML(http.StatusOK, "dashboard", gin.H{
		"Todos": h.store.ListByOwner(auth.Identity(c)),
	})
}
