// Package postgres implements store.Store on a pgx connection pool.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tousif31/simple-to-do-list/model"
	"github.com/tousif31/simple-to-do-list/store"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Store runs every query on the injected pool. Connections are acquired per
// call and released when the call returns.
type Store struct {
	pool *pgxpool.Pool
}

// New wraps an open pool. The Store takes ownership and closes it on Close.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

var _ store.Store = (*Store)(nil)

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) CreateUser(ctx context.Context, u model.User) (model.User, error) {
	const q = `INSERT INTO users (name, email, password)
	           VALUES ($1, $2, $3)
	           RETURNING id, created_at`
	if err := s.pool.QueryRow(ctx, q, u.Name, u.Email, u.HashedPassword).Scan(&u.ID, &u.CreatedAt); err != nil {
		return model.User{}, mapPgErr(err)
	}
	return u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	return s.getUser(ctx, `SELECT id, name, email, password, created_at FROM users WHERE email = $1`, email)
}

func (s *Store) GetUserByID(ctx context.Context, id int64) (model.User, error) {
	return s.getUser(ctx, `SELECT id, name, email, password, created_at FROM users WHERE id = $1`, id)
}

func (s *Store) getUser(ctx context.Context, q string, arg any) (model.User, error) {
	rows, err := s.pool.Query(ctx, q, arg)
	if err != nil {
		return model.User{}, mapPgErr(err)
	}
	u, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
	if err != nil {
		return model.User{}, mapPgErr(err)
	}
	return u, nil
}

func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return mapPgErr(err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) ListTodos(ctx context.Context, ownerID int64) ([]model.Todo, error) {
	const q = `SELECT id, user_id, title, description, completed, created_at, updated_at
	           FROM todos
	           WHERE user_id = $1
	           ORDER BY created_at DESC, id DESC`
	rows, err := s.pool.Query(ctx, q, ownerID)
	if err != nil {
		return nil, mapPgErr(err)
	}
	todos, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Todo])
	if err != nil {
		return nil, mapPgErr(err)
	}
	if todos == nil {
		todos = []model.Todo{}
	}
	return todos, nil
}

func (s *Store) CreateTodo(ctx context.Context, t model.Todo) (model.Todo, error) {
	const q = `INSERT INTO todos (user_id, title, description, completed)
	           VALUES ($1, $2, $3, $4)
	           RETURNING id, created_at, updated_at`
	err := s.pool.QueryRow(ctx, q, t.OwnerID, t.Title, t.Description, t.Completed).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return model.Todo{}, mapPgErr(err)
	}
	return t, nil
}

// UpdateTodo relies on the trg_todos_updated_at trigger to refresh updated_at.
func (s *Store) UpdateTodo(ctx context.Context, t model.Todo) error {
	const q = `UPDATE todos
	           SET title = $1, description = $2, completed = $3
	           WHERE id = $4 AND user_id = $5`
	tag, err := s.pool.Exec(ctx, q, t.Title, t.Description, t.Completed, t.ID, t.OwnerID)
	if err != nil {
		return mapPgErr(err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteTodo(ctx context.Context, ownerID, todoID int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM todos WHERE id = $1 AND user_id = $2`, todoID, ownerID)
	if err != nil {
		return mapPgErr(err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func mapPgErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return store.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return store.ErrConflict
		case pgForeignKeyViolation:
			return store.ErrNotFound
		}
	}
	return err
}
