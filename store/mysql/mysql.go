// Package mysql implements store.Store on sqlx over go-sql-driver/mysql,
// the dialect the first version of this service ran on.
package mysql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/tousif31/simple-to-do-list/model"
	"github.com/tousif31/simple-to-do-list/store"
)

const (
	errDuplicateEntry  = 1062
	errNoReferencedRow = 1452

	selectUserColumns = `SELECT id, name, email, password, created_at FROM users`
	selectTodoColumns = `SELECT id, user_id, title, description, completed, created_at, updated_at FROM todos`
)

// Store runs every query on the injected *sqlx.DB.
// The DSN must enable parseTime and clientFoundRows; db.NewMySQL does both.
type Store struct {
	db *sqlx.DB
}

// New wraps an open database handle. The Store closes it on Close.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

var _ store.Store = (*Store)(nil)

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() {
	_ = s.db.Close()
}

func (s *Store) CreateUser(ctx context.Context, u model.User) (model.User, error) {
	res, err := s.db.NamedExecContext(ctx,
		`INSERT INTO users (name, email, password) VALUES (:name, :email, :password)`, u)
	if err != nil {
		return model.User{}, mapMySQLErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.User{}, err
	}
	return s.GetUserByID(ctx, id)
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	if err := s.db.GetContext(ctx, &u, selectUserColumns+` WHERE email = ?`, email); err != nil {
		return model.User{}, mapMySQLErr(err)
	}
	return u, nil
}

func (s *Store) GetUserByID(ctx context.Context, id int64) (model.User, error) {
	var u model.User
	if err := s.db.GetContext(ctx, &u, selectUserColumns+` WHERE id = ?`, id); err != nil {
		return model.User{}, mapMySQLErr(err)
	}
	return u, nil
}

func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return mapMySQLErr(err)
	}
	return requireRow(res)
}

func (s *Store) ListTodos(ctx context.Context, ownerID int64) ([]model.Todo, error) {
	todos := []model.Todo{}
	err := s.db.SelectContext(ctx, &todos,
		selectTodoColumns+` WHERE user_id = ? ORDER BY created_at DESC, id DESC`, ownerID)
	if err != nil {
		return nil, mapMySQLErr(err)
	}
	return todos, nil
}

func (s *Store) CreateTodo(ctx context.Context, t model.Todo) (model.Todo, error) {
	res, err := s.db.NamedExecContext(ctx,
		`INSERT INTO todos (user_id, title, description, completed)
		 VALUES (:user_id, :title, :description, :completed)`, t)
	if err != nil {
		return model.Todo{}, mapMySQLErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Todo{}, err
	}

	var created model.Todo
	if err := s.db.GetContext(ctx, &created, selectTodoColumns+` WHERE id = ?`, id); err != nil {
		return model.Todo{}, mapMySQLErr(err)
	}
	return created, nil
}

// UpdateTodo relies on ON UPDATE CURRENT_TIMESTAMP to refresh updated_at.
// With clientFoundRows the affected count is the matched count, so an update
// that leaves the row unchanged still succeeds.
func (s *Store) UpdateTodo(ctx context.Context, t model.Todo) error {
	res, err := s.db.NamedExecContext(ctx,
		`UPDATE todos SET title = :title, description = :description, completed = :completed
		 WHERE id = :id AND user_id = :user_id`, t)
	if err != nil {
		return mapMySQLErr(err)
	}
	return requireRow(res)
}

func (s *Store) DeleteTodo(ctx context.Context, ownerID, todoID int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ? AND user_id = ?`, todoID, ownerID)
	if err != nil {
		return mapMySQLErr(err)
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func mapMySQLErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case errDuplicateEntry:
			return store.ErrConflict
		case errNoReferencedRow:
			return store.ErrNotFound
		}
	}
	return err
}
