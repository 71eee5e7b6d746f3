// Package memory is an in-process Store used by tests and by local runs
// without DATABASE_URL. It mirrors the relational constraints: unique email,
// owner-scoped todo writes and cascading user deletion.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tousif31/simple-to-do-list/model"
	"github.com/tousif31/simple-to-do-list/store"
)

// Store keeps users and todos in maps guarded by a single mutex.
type Store struct {
	mu sync.RWMutex

	users      map[int64]model.User
	emailIndex map[string]int64
	todos      map[int64]model.Todo

	nextUserID int64
	nextTodoID int64

	now func() time.Time
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		users:      make(map[int64]model.User),
		emailIndex: make(map[string]int64),
		todos:      make(map[int64]model.Todo),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

var _ store.Store = (*Store)(nil)

func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }

func (s *Store) Close() {}

func (s *Store) CreateUser(ctx context.Context, u model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.emailIndex[u.Email]; exists {
		return model.User{}, store.ErrConflict
	}

	s.nextUserID++
	u.ID = s.nextUserID
	u.CreatedAt = s.now()
	s.users[u.ID] = u
	s.emailIndex[u.Email] = u.ID
	return u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.emailIndex[email]
	if !ok {
		return model.User{}, store.ErrNotFound
	}
	return s.users[id], nil
}

func (s *Store) GetUserByID(ctx context.Context, id int64) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return model.User{}, store.ErrNotFound
	}
	return u, nil
}

func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return store.ErrNotFound
	}
	delete(s.users, id)
	delete(s.emailIndex, u.Email)

	for todoID, t := range s.todos {
		if t.OwnerID == id {
			delete(s.todos, todoID)
		}
	}
	return nil
}

func (s *Store) ListTodos(ctx context.Context, ownerID int64) ([]model.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Todo, 0)
	for _, t := range s.todos {
		if t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *Store) CreateTodo(ctx context.Context, t model.Todo) (model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// user_id is a foreign key in the relational schema.
	if _, ok := s.users[t.OwnerID]; !ok {
		return model.Todo{}, store.ErrNotFound
	}

	s.nextTodoID++
	now := s.now()
	t.ID = s.nextTodoID
	t.CreatedAt = now
	t.UpdatedAt = now
	s.todos[t.ID] = t
	return t, nil
}

func (s *Store) UpdateTodo(ctx context.Context, t model.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.todos[t.ID]
	if !ok || cur.OwnerID != t.OwnerID {
		return store.ErrNotFound
	}
	cur.Title = t.Title
	cur.Description = t.Description
	cur.Completed = t.Completed
	cur.UpdatedAt = s.now()
	s.todos[t.ID] = cur
	return nil
}

func (s *Store) DeleteTodo(ctx context.Context, ownerID, todoID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.todos[todoID]
	if !ok || cur.OwnerID != ownerID {
		return store.ErrNotFound
	}
	delete(s.todos, todoID)
	return nil
}
