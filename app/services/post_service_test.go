package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePost(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner")

	t.Run("stores the image and returns the post", func(t *testing.T) {
		view, err := f.posts.CreatePost(owner.ID, NewPost{
			Filename: "beach.png",
			Image:    strings.NewReader("png"),
			Caption:  "  beach day ",
		})
		require.NoError(t, err)
		assert.NotZero(t, view.ID)
		assert.Equal(t, "beach day", view.Caption)
		assert.True(t, strings.HasSuffix(view.Image, "-beach.png"))
		assert.Equal(t, "png", f.images.saved[view.Image])
		assert.Equal(t, owner.ID, view.User.ID)
		assert.Empty(t, view.Likes)
		assert.Empty(t, view.Comments)
		assert.False(t, view.CreatedAt.IsZero())
	})

	tests := []struct {
		name    string
		actor   int
		in      NewPost
		kind    error
		message string
	}{
		{
			name:    "missing image",
			actor:   owner.ID,
			in:      NewPost{Caption: "no file"},
			kind:    ErrValidation,
			message: "Image is required",
		},
		{
			name:  "caption too long",
			actor: owner.ID,
			in:    NewPost{Filename: "a.png", Image: strings.NewReader("x"), Caption: strings.Repeat("a", 2201)},
			kind:  ErrValidation,
		},
		{
			name:    "unknown owner",
			actor:   404,
			in:      NewPost{Filename: "a.png", Image: strings.NewReader("x")},
			kind:    ErrNotFound,
			message: "User not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := len(f.images.saved)
			_, err := f.posts.CreatePost(tt.actor, tt.in)
			assert.ErrorIs(t, err, tt.kind)
			if tt.message != "" {
				assert.Equal(t, tt.message, Message(err))
			}
			assert.Len(t, f.images.saved, before)
		})
	}

	t.Run("image store failure", func(t *testing.T) {
		f.images.err = errBroker
		defer func() { f.images.err = nil }()

		_, err := f.posts.CreatePost(owner.ID, NewPost{Filename: "a.png", Image: strings.NewReader("x")})
		assert.ErrorIs(t, err, ErrStore)
		assert.Equal(t, "Error creating post", Message(err))
	})
}

func TestListFeed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice, bob := f.user(t, "alice"), f.user(t, "bob")

	t.Run("empty feed", func(t *testing.T) {
		feed, err := f.posts.ListFeed()
		require.NoError(t, err)
		assert.Empty(t, feed)
	})

	first := f.post(t, alice.ID, "first")
	time.Sleep(time.Millisecond)
	second := f.post(t, bob.ID, "second")

	_, err := f.graph.ToggleFollow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = f.graph.ToggleLike(ctx, alice.ID, second.ID)
	require.NoError(t, err)
	_, err = f.graph.AddComment(ctx, bob.ID, first.ID, "hi alice")
	require.NoError(t, err)

	feed, err := f.posts.ListFeed()
	require.NoError(t, err)
	require.Len(t, feed, 2)

	assert.Equal(t, second.ID, feed[0].ID)
	assert.Equal(t, UserProfile{ID: bob.ID, Username: "bob", Followers: []int{alice.ID}}, feed[0].User)
	assert.Equal(t, []UserSummary{{ID: alice.ID, Username: "alice"}}, feed[0].Likes)

	assert.Equal(t, first.ID, feed[1].ID)
	require.Len(t, feed[1].Comments, 1)
	assert.Equal(t, "hi alice", feed[1].Comments[0].Text)
	assert.Equal(t, "bob", feed[1].Comments[0].User.Username)
}

func TestGetPost(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner")
	post := f.post(t, owner.ID, "hello")

	view, err := f.posts.GetPost(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", view.Caption)

	_, err = f.posts.GetPost(999)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Post not found", Message(err))
}
