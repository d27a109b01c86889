package repositories

import (
	"errors"
	"testing"
	"time"

	"picshare/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUser(username string) *models.User {
	u := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
		CreatedAt:    time.Now(),
	}
	u.BeforeCreate()
	return u
}

func TestUserRepository(t *testing.T) {
	repo := NewBadgerUserRepository(setupTestDB(t))

	alice := newUser("alice")
	bob := newUser("bob")
	require.NoError(t, repo.Create(alice))
	require.NoError(t, repo.Create(bob))

	t.Run("create assigns sequential ids", func(t *testing.T) {
		assert.Equal(t, 1, alice.ID)
		assert.Equal(t, 2, bob.ID)
	})

	t.Run("get by id and email", func(t *testing.T) {
		got, err := repo.GetByID(alice.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", got.Username)

		got, err = repo.GetByEmail("ALICE@example.com")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, got.ID)

		_, err = repo.GetByEmail("nobody@example.com")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		dup := newUser("alice2")
		dup.Email = alice.Email
		assert.ErrorIs(t, repo.Create(dup), ErrDuplicate)
	})

	t.Run("duplicate username rejected", func(t *testing.T) {
		dup := newUser("Alice")
		dup.Email = "other@example.com"
		assert.ErrorIs(t, repo.Create(dup), ErrDuplicate)
	})

	t.Run("get many skips unknown ids", func(t *testing.T) {
		users, err := repo.GetMany([]int{alice.ID, 99, bob.ID, alice.ID})
		require.NoError(t, err)
		assert.Len(t, users, 2)
		assert.Equal(t, "bob", users[bob.ID].Username)
	})

	t.Run("update pair writes both documents", func(t *testing.T) {
		err := repo.UpdatePair(alice.ID, bob.ID, func(actor, target *models.User) error {
			actor.Follow(target)
			return nil
		})
		require.NoError(t, err)

		a, _ := repo.GetByID(alice.ID)
		b, _ := repo.GetByID(bob.ID)
		assert.Equal(t, []int{bob.ID}, a.Following)
		assert.Equal(t, []int{alice.ID}, b.Followers)
	})

	t.Run("update pair aborts on callback error", func(t *testing.T) {
		boom := errors.New("boom")
		err := repo.UpdatePair(alice.ID, bob.ID, func(actor, target *models.User) error {
			actor.Unfollow(target)
			return boom
		})
		assert.ErrorIs(t, err, boom)

		a, _ := repo.GetByID(alice.ID)
		assert.Equal(t, []int{bob.ID}, a.Following)
	})

	t.Run("update pair with unknown target", func(t *testing.T) {
		err := repo.UpdatePair(alice.ID, 99, func(actor, target *models.User) error { return nil })
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUserRepositorySearch(t *testing.T) {
	repo := NewBadgerUserRepository(setupTestDB(t))
	for _, name := range []string{"Anna", "joanne", "Bob"} {
		require.NoError(t, repo.Create(newUser(name)))
	}

	tests := []struct {
		query string
		want  []string
	}{
		{query: "ann", want: []string{"Anna", "joanne"}},
		{query: "ANN", want: []string{"Anna", "joanne"}},
		{query: "bo", want: []string{"Bob"}},
		{query: "zed", want: []string{}},
		{query: "", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			users, err := repo.Search(tt.query)
			require.NoError(t, err)
			names := []string{}
			for _, u := range users {
				names = append(names, u.Username)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}
