package controllers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"picshare/app/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentController(t *testing.T) {
	env := setupRouter(t)
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")
	post := env.post(t, bob.ID)
	path := fmt.Sprintf("/posts/%d/comment", post.ID)

	t.Run("create comment", func(t *testing.T) {
		w := env.serve(jsonRequest(http.MethodPost, path, `{"text":"nice!"}`), alice.ID)

		require.Equal(t, http.StatusCreated, w.Code)
		var comment services.CommentView
		decode(t, w, &comment)
		assert.Equal(t, "nice!", comment.Text)
		assert.Equal(t, post.ID, comment.PostID)
		assert.Equal(t, services.UserCard{ID: alice.ID, Username: "alice"}, comment.User)
	})

	t.Run("create comment from a form", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(url.Values{"text": {"second"}}.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		w := env.serve(req, alice.ID)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("empty comment", func(t *testing.T) {
		w := env.serve(jsonRequest(http.MethodPost, path, `{"text":""}`), alice.ID)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Comment cannot be empty", messageOf(t, w))
	})

	t.Run("comment on missing post", func(t *testing.T) {
		w := env.serve(jsonRequest(http.MethodPost, "/posts/999/comment", `{"text":"hi"}`), alice.ID)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Post not found", messageOf(t, w))
	})

	t.Run("list comments", func(t *testing.T) {
		w := env.serve(httptest.NewRequest(http.MethodGet, fmt.Sprintf("/posts/%d/comments", post.ID), nil), alice.ID)
		require.Equal(t, http.StatusOK, w.Code)

		var comments []services.CommentView
		decode(t, w, &comments)
		require.Len(t, comments, 2)
		assert.Equal(t, "nice!", comments[0].Text)
		assert.Equal(t, "second", comments[1].Text)
	})
}
