// Package storetest is a conformance suite run against every store.Store
// implementation, so the memory, postgres and mysql adapters agree on
// ownership, ordering, uniqueness and cascade behaviour.
package storetest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tousif31/simple-to-do-list/model"
	"github.com/tousif31/simple-to-do-list/store"
)

// Factory returns an empty store. It is called once per subtest.
type Factory func(t *testing.T) store.Store

// Run executes the suite.
func Run(t *testing.T, newStore Factory) {
	tests := []struct {
		name string
		fn   func(t *testing.T, s store.Store)
	}{
		{"UniqueEmail", testUniqueEmail},
		{"GetUserByID", testGetUserByID},
		{"ListEmpty", testListEmpty},
		{"ListNewestFirst", testListNewestFirst},
		{"CreateTodoUnknownOwner", testCreateTodoUnknownOwner},
		{"UpdateOwnerScoped", testUpdateOwnerScoped},
		{"UpdateWithUnchangedValues", testUpdateUnchanged},
		{"UpdateRefreshesUpdatedAt", testUpdateRefreshesUpdatedAt},
		{"DeleteOwnerScoped", testDeleteOwnerScoped},
		{"DeleteUserCascades", testDeleteUserCascades},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, newStore(t))
		})
	}
}

func createUser(t *testing.T, s store.Store, email string) model.User {
	t.Helper()
	u, err := s.CreateUser(context.Background(), model.User{Name: "user " + email, Email: email, HashedPassword: "hash"})
	require.NoError(t, err)
	require.NotZero(t, u.ID)
	return u
}

func createTodo(t *testing.T, s store.Store, ownerID int64, title string) model.Todo {
	t.Helper()
	todo, err := s.CreateTodo(context.Background(), model.Todo{OwnerID: ownerID, Title: title})
	require.NoError(t, err)
	require.NotZero(t, todo.ID)
	return todo
}

func testUniqueEmail(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := createUser(t, s, "dup@x.com")
	assert.False(t, u.CreatedAt.IsZero())

	_, err := s.CreateUser(ctx, model.User{Name: "again", Email: "dup@x.com", HashedPassword: "hash"})
	assert.ErrorIs(t, err, store.ErrConflict)

	got, err := s.GetUserByEmail(ctx, "dup@x.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "hash", got.HashedPassword)

	_, err = s.GetUserByEmail(ctx, "missing@x.com")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func testGetUserByID(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := createUser(t, s, "id@x.com")

	got, err := s.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "id@x.com", got.Email)

	_, err = s.GetUserByID(ctx, u.ID+1000)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func testListEmpty(t *testing.T, s store.Store) {
	u := createUser(t, s, "empty@x.com")

	list, err := s.ListTodos(context.Background(), u.ID)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func testListNewestFirst(t *testing.T, s store.Store) {
	u := createUser(t, s, "order@x.com")
	var ids []int64
	for i := 0; i < 3; i++ {
		ids = append(ids, createTodo(t, s, u.ID, fmt.Sprintf("todo %d", i)).ID)
	}

	list, err := s.ListTodos(context.Background(), u.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []int64{ids[2], ids[1], ids[0]}, []int64{list[0].ID, list[1].ID, list[2].ID})
	for _, todo := range list {
		assert.Equal(t, u.ID, todo.OwnerID)
		assert.Equal(t, "", todo.Description)
		assert.False(t, todo.Completed)
	}
}

func testCreateTodoUnknownOwner(t *testing.T, s store.Store) {
	_, err := s.CreateTodo(context.Background(), model.Todo{OwnerID: 987654, Title: "orphan"})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func testUpdateOwnerScoped(t *testing.T, s store.Store) {
	ctx := context.Background()
	alice := createUser(t, s, "alice@x.com")
	bob := createUser(t, s, "bob@x.com")
	todo := createTodo(t, s, bob.ID, "bob's todo")

	err := s.UpdateTodo(ctx, model.Todo{ID: todo.ID, OwnerID: alice.ID, Title: "mine now", Completed: true})
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = s.UpdateTodo(ctx, model.Todo{ID: todo.ID + 1000, OwnerID: bob.ID, Title: "ghost"})
	assert.ErrorIs(t, err, store.ErrNotFound)

	list, err := s.ListTodos(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "bob's todo", list[0].Title)
	assert.False(t, list[0].Completed)

	require.NoError(t, s.UpdateTodo(ctx, model.Todo{ID: todo.ID, OwnerID: bob.ID, Title: "bob's todo", Description: "soon", Completed: true}))
	list, err = s.ListTodos(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "soon", list[0].Description)
	assert.True(t, list[0].Completed)
	assert.False(t, list[0].UpdatedAt.Before(list[0].CreatedAt))
}

func testUpdateUnchanged(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := createUser(t, s, "same@x.com")
	todo := createTodo(t, s, u.ID, "same")

	same := model.Todo{ID: todo.ID, OwnerID: u.ID, Title: "same"}
	require.NoError(t, s.UpdateTodo(ctx, same))
	require.NoError(t, s.UpdateTodo(ctx, same))
}

func testUpdateRefreshesUpdatedAt(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := createUser(t, s, "clock@x.com")
	todo := createTodo(t, s, u.ID, "before")

	// Database clocks cannot be injected; step past their resolution.
	time.Sleep(20 * time.Millisecond)

	require.NoError(t, s.UpdateTodo(ctx, model.Todo{ID: todo.ID, OwnerID: u.ID, Title: "after", Completed: true}))
	list, err := s.ListTodos(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	assert.True(t, list[0].UpdatedAt.After(todo.UpdatedAt), "updated_at %v not after %v", list[0].UpdatedAt, todo.UpdatedAt)
	assert.True(t, list[0].CreatedAt.Equal(todo.CreatedAt))
}

func testDeleteOwnerScoped(t *testing.T, s store.Store) {
	ctx := context.Background()
	alice := createUser(t, s, "alice@x.com")
	bob := createUser(t, s, "bob@x.com")
	todo := createTodo(t, s, bob.ID, "bob's todo")

	assert.ErrorIs(t, s.DeleteTodo(ctx, alice.ID, todo.ID), store.ErrNotFound)

	list, err := s.ListTodos(ctx, bob.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, s.DeleteTodo(ctx, bob.ID, todo.ID))
	assert.ErrorIs(t, s.DeleteTodo(ctx, bob.ID, todo.ID), store.ErrNotFound)
}

func testDeleteUserCascades(t *testing.T, s store.Store) {
	ctx := context.Background()
	alice := createUser(t, s, "alice@x.com")
	bob := createUser(t, s, "bob@x.com")
	createTodo(t, s, alice.ID, "one")
	createTodo(t, s, alice.ID, "two")
	createTodo(t, s, bob.ID, "keep")

	require.NoError(t, s.DeleteUser(ctx, alice.ID))
	assert.ErrorIs(t, s.DeleteUser(ctx, alice.ID), store.ErrNotFound)

	list, err := s.ListTodos(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = s.ListTodos(ctx, bob.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
