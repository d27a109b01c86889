package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNotification(t *testing.T) {
	tests := []struct {
		name     string
		payload  Payload
		wantKind Kind
		wantPost int
		wantText string
	}{
		{name: "like", payload: LikePayload{PostID: 9}, wantKind: KindLike, wantPost: 9},
		{name: "comment", payload: CommentPayload{PostID: 9, Text: "nice!"}, wantKind: KindComment, wantPost: 9, wantText: "nice!"},
		{name: "follow", payload: FollowPayload{}, wantKind: KindFollow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNotification(1, 2, tt.payload)
			n.BeforeCreate()

			assert.Equal(t, tt.wantKind, n.Kind)
			assert.Equal(t, tt.wantPost, n.PostID)
			assert.Equal(t, tt.wantText, n.Text)
			assert.False(t, n.Read)
			require.NoError(t, n.Validate())

			payload, err := n.Payload()
			require.NoError(t, err)
			assert.Equal(t, tt.payload, payload)
		})
	}
}

func TestNotificationValidation(t *testing.T) {
	t.Run("self notification", func(t *testing.T) {
		n := NewNotification(1, 1, FollowPayload{})
		n.BeforeCreate()
		assert.Error(t, n.Validate())
	})

	t.Run("like without post", func(t *testing.T) {
		n := NewNotification(1, 2, LikePayload{})
		n.BeforeCreate()
		assert.Error(t, n.Validate())
	})

	t.Run("comment without text", func(t *testing.T) {
		n := NewNotification(1, 2, CommentPayload{PostID: 3})
		n.BeforeCreate()
		assert.Error(t, n.Validate())
	})

	t.Run("follow carrying a post", func(t *testing.T) {
		n := NewNotification(1, 2, FollowPayload{})
		n.PostID = 4
		n.BeforeCreate()
		assert.Error(t, n.Validate())
	})

	t.Run("unknown kind", func(t *testing.T) {
		n := &Notification{Kind: "poke", FromUser: 1, ToUser: 2}
		_, err := n.Payload()
		assert.Error(t, err)
	})
}
