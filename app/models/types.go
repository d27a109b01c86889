package models

import "time"

// User is an account together with its follow relationships.
type User struct {
	ID           int       `json:"id" validate:"gte=0"`
	Username     string    `json:"username" validate:"required,min=1,max=30"`
	Email        string    `json:"email" validate:"required,email"`
	PasswordHash string    `json:"passwordHash" validate:"required"`
	FullName     string    `json:"fullName,omitempty" validate:"max=100"`
	ProfilePic   string    `json:"profilePic,omitempty"`
	Followers    []int     `json:"followers" validate:"-"`
	Following    []int     `json:"following" validate:"-"`
	CreatedAt    time.Time `json:"createdAt" validate:"required"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Post is an uploaded image with its caption, likers and comment references.
type Post struct {
	ID        int       `json:"id" validate:"gte=0"`
	UserID    int       `json:"user" validate:"required,gt=0"`
	Image     string    `json:"image" validate:"required"`
	Caption   string    `json:"caption" validate:"max=2200"`
	Likes     []int     `json:"likes" validate:"-"`
	Comments  []int     `json:"comments" validate:"-"`
	CreatedAt time.Time `json:"createdAt" validate:"required"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Comment is a piece of text left by a user on a post.
type Comment struct {
	ID        int       `json:"id" validate:"gte=0"`
	PostID    int       `json:"post" validate:"required,gt=0"`
	UserID    int       `json:"user" validate:"required,gt=0"`
	Text      string    `json:"text" validate:"required,min=1,max=2200"`
	CreatedAt time.Time `json:"createdAt" validate:"required"`
}

// Kind identifies which interaction produced a notification.
type Kind string

const (
	KindLike    Kind = "like"
	KindComment Kind = "comment"
	KindFollow  Kind = "follow"
)

// Notification is the stored form of an interaction event addressed to ToUser.
// PostID and Text are only meaningful for the kinds whose payload carries them;
// use NewNotification and Payload rather than setting them directly.
type Notification struct {
	ID        int       `json:"id" validate:"gte=0"`
	Kind      Kind      `json:"type" validate:"required,oneof=like comment follow"`
	FromUser  int       `json:"fromUser" validate:"required,gt=0"`
	ToUser    int       `json:"toUser" validate:"required,gt=0"`
	PostID    int       `json:"post,omitempty"`
	Text      string    `json:"text,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt" validate:"required"`
}
