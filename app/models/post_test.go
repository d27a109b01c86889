package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPostValidation(t *testing.T) {
	tests := []struct {
		name    string
		post    *Post
		wantErr bool
	}{
		{
			name: "valid post",
			post: &Post{
				ID:        1,
				UserID:    2,
				Image:     "http://localhost:5000/uploads/a.png",
				Caption:   "sunset",
				CreatedAt: time.Now(),
			},
			wantErr: false,
		},
		{
			name: "missing image",
			post: &Post{
				ID:        1,
				UserID:    2,
				CreatedAt: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "missing owner",
			post: &Post{
				ID:        1,
				Image:     "a.png",
				CreatedAt: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "caption too long",
			post: &Post{
				ID:        1,
				UserID:    2,
				Image:     "a.png",
				Caption:   strings.Repeat("a", 2201),
				CreatedAt: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "zero creation time",
			post: &Post{
				ID:     1,
				UserID: 2,
				Image:  "a.png",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.post.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPostBeforeCreate(t *testing.T) {
	post := &Post{UserID: 1, Image: "a.png"}

	assert.True(t, post.CreatedAt.IsZero())
	post.BeforeCreate()
	assert.False(t, post.CreatedAt.IsZero())
	assert.NotNil(t, post.Likes)
	assert.NotNil(t, post.Comments)
}

func TestPostToggleLike(t *testing.T) {
	post := &Post{ID: 1, UserID: 2, Image: "a.png"}
	post.BeforeCreate()

	t.Run("like adds the user once", func(t *testing.T) {
		assert.True(t, post.ToggleLike(1))
		assert.Equal(t, []int{1}, post.Likes)
		assert.True(t, post.LikedBy(1))
	})

	t.Run("second toggle restores the original set", func(t *testing.T) {
		assert.False(t, post.ToggleLike(1))
		assert.Empty(t, post.Likes)
		assert.False(t, post.LikedBy(1))
	})

	t.Run("other likers are untouched", func(t *testing.T) {
		post.ToggleLike(3)
		post.ToggleLike(4)
		post.ToggleLike(3)
		assert.Equal(t, []int{4}, post.Likes)
	})
}

func TestPostCommentManagement(t *testing.T) {
	post := &Post{ID: 7, UserID: 2, Image: "a.png"}
	post.BeforeCreate()

	t.Run("add comment", func(t *testing.T) {
		first := &Comment{ID: 1, UserID: 1, Text: "first"}
		second := &Comment{ID: 2, UserID: 1, Text: "second"}

		assert.NoError(t, post.AddComment(first))
		assert.NoError(t, post.AddComment(second))
		assert.Equal(t, []int{1, 2}, post.Comments)
		assert.Equal(t, post.ID, first.PostID)
	})

	t.Run("add nil comment", func(t *testing.T) {
		assert.Error(t, post.AddComment(nil))
	})

	t.Run("add unsaved comment", func(t *testing.T) {
		assert.Error(t, post.AddComment(&Comment{Text: "no id"}))
		assert.Len(t, post.Comments, 2)
	})
}
