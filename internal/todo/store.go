package todo

import "sync"

// Store はプロセス内のTodoコレクションを保持します。
// リクエストハンドラーから並行に呼ばれるため、全操作をミューテックスで直列化します。
// プロセス終了とともに内容は失われます（永続化はしない設計）。
type Store struct {
	mu     sync.Mutex
	todos  []Todo
	nextID int
}

// NewStore は空のストアを作成します。
func NewStore() *Store {
	return &Store{nextID: 1}
}

// ListByOwner は所有者のTodoを作成順で返します。該当がなければ空のスライスを返します。
func (s *Store) ListByOwner(owner string) []Todo {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]Todo, 0)
	for _, t := range s.todos {
		if t.Owner == owner {
			result = append(result, t)
		}
	}
	return result
}

// Create は新しいTodoを追加して返します。
// IDは単調増加のカウンターから払い出され、削除後も再利用されません。
func (s *Store) Create(owner, title string) Todo {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := Todo{
		ID:     s.nextID,
		Title:  title,
		Status: StatusPending,
		Owner:  owner,
	}
	s.nextID++
	s.todos = append(s.todos, t)
	return t
}

// Update は所有者が一致するTodoの指定フィールドのみを書き換えます。
// nil のフィールドは変更しません。他の所有者のTodoは存在しないものとして扱います。
func (s *Store) Update(owner string, id int, title, status *string) (Todo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.todos {
		if s.todos[i].ID == id && s.todos[i].Owner == owner {
			if title != nil {
				s.todos[i].Title = *title
			}
			if status != nil {
				s.todos[i].Status = *status
			}
			return s.todos[i], true
		}
	}
	return Todo{}, false
}

// Delete は所有者が一致するTodoをコレクションから取り除きます。
// 見つかって削除できた場合に true を返します。
func (s *Store) Delete(owner string, id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.todos {
		if s.todos[i].ID == id && s.todos[i].Owner == owner {
			s.todos = append(s.todos[:i], s.todos[i+1:]...)
			return true
		}
	}
	return false
}
