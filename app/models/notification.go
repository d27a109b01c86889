package models

import (
	"errors"
	"fmt"
	"time"
)

// Payload is the kind-specific part of a notification. Exactly one of
// LikePayload, CommentPayload and FollowPayload is carried by each record.
type Payload interface {
	Kind() Kind
}

// LikePayload is carried by notifications about a liked post.
type LikePayload struct {
	PostID int
}

// CommentPayload is carried by notifications about a comment on a post.
type CommentPayload struct {
	PostID int
	Text   string
}

// FollowPayload is carried by notifications about a new follower.
type FollowPayload struct{}

func (LikePayload) Kind() Kind    { return KindLike }
func (CommentPayload) Kind() Kind { return KindComment }
func (FollowPayload) Kind() Kind  { return KindFollow }

// NewNotification flattens a payload into a storable record addressed from actor to recipient.
func NewNotification(actor, recipient int, payload Payload) *Notification {
	n := &Notification{
		Kind:     payload.Kind(),
		FromUser: actor,
		ToUser:   recipient,
	}
	switch p := payload.(type) {
	case LikePayload:
		n.PostID = p.PostID
	case CommentPayload:
		n.PostID = p.PostID
		n.Text = p.Text
	}
	return n
}

// Payload rebuilds the kind-specific payload from the stored fields.
func (n *Notification) Payload() (Payload, error) {
	switch n.Kind {
	case KindLike:
		return LikePayload{PostID: n.PostID}, nil
	case KindComment:
		return CommentPayload{PostID: n.PostID, Text: n.Text}, nil
	case KindFollow:
		return FollowPayload{}, nil
	default:
		return nil, fmt.Errorf("unknown notification kind %q", n.Kind)
	}
}

// Validate checks field presence against the notification's kind
func (n *Notification) Validate() error {
	if err := validate.Struct(n); err != nil {
		return err
	}
	if n.FromUser == n.ToUser {
		return errors.New("notification actor and recipient must differ")
	}

	switch n.Kind {
	case KindLike:
		if n.PostID <= 0 {
			return errors.New("like notification requires a post")
		}
		if n.Text != "" {
			return errors.New("like notification cannot carry text")
		}
	case KindComment:
		if n.PostID <= 0 {
			return errors.New("comment notification requires a post")
		}
		if n.Text == "" {
			return errors.New("comment notification requires text")
		}
	case KindFollow:
		if n.PostID != 0 || n.Text != "" {
			return errors.New("follow notification cannot reference a post or text")
		}
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (n *Notification) BeforeCreate() {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	n.Read = false
}
