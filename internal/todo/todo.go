// Package todo はTodoのデータモデル、プロセス内ストア、HTTPハンドラーを提供します。
package todo

// StatusPending は作成直後のTodoに設定されるステータスです。
// ステータスは制約のない自由な文字列で、更新時に任意の値を設定できます。
const StatusPending = "pending"

// Todo は1件のタスクを表します。
// Owner は作成時の認証ユーザー名で、以降変更されることはありません。
type Todo struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
	Owner  string `json:"user_id"`
}
