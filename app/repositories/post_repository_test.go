package repositories

import (
	"errors"
	"testing"
	"time"

	"picshare/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPost(owner int, createdAt time.Time) *models.Post {
	p := &models.Post{UserID: owner, Image: "http://localhost:5000/uploads/x.png", CreatedAt: createdAt}
	p.BeforeCreate()
	return p
}

func TestPostRepository(t *testing.T) {
	repo := NewBadgerPostRepository(setupTestDB(t))
	base := time.Now()

	t.Run("create and get post", func(t *testing.T) {
		post := newPost(1, base)
		require.NoError(t, repo.Create(post))
		assert.Greater(t, post.ID, 0)

		got, err := repo.GetByID(post.ID)
		require.NoError(t, err)
		assert.Equal(t, post.Image, got.Image)
		assert.Equal(t, []int{}, got.Likes)
	})

	t.Run("get missing post", func(t *testing.T) {
		_, err := repo.GetByID(999)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("list is newest first", func(t *testing.T) {
		older := newPost(1, base.Add(-time.Hour))
		newer := newPost(2, base.Add(time.Hour))
		require.NoError(t, repo.Create(older))
		require.NoError(t, repo.Create(newer))

		posts, err := repo.List()
		require.NoError(t, err)
		require.Len(t, posts, 3)
		assert.Equal(t, newer.ID, posts[0].ID)
		assert.Equal(t, older.ID, posts[2].ID)
	})

	t.Run("update toggles like atomically", func(t *testing.T) {
		post := newPost(1, base)
		require.NoError(t, repo.Create(post))

		updated, err := repo.Update(post.ID, func(p *models.Post) error {
			p.ToggleLike(5)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []int{5}, updated.Likes)

		stored, _ := repo.GetByID(post.ID)
		assert.Equal(t, []int{5}, stored.Likes)
	})

	t.Run("update aborted by callback", func(t *testing.T) {
		post := newPost(1, base)
		require.NoError(t, repo.Create(post))

		_, err := repo.Update(post.ID, func(p *models.Post) error {
			p.ToggleLike(5)
			return errors.New("stop")
		})
		assert.Error(t, err)

		stored, _ := repo.GetByID(post.ID)
		assert.Empty(t, stored.Likes)
	})

	t.Run("update missing post", func(t *testing.T) {
		_, err := repo.Update(999, func(p *models.Post) error { return nil })
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
