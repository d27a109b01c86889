package services

import (
	"time"

	"picshare/app/models"
)

// Projections returned to clients. None of them expose credentials.

// UserSummary identifies a user by id and display name.
type UserSummary struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

// UserCard adds the avatar to a UserSummary.
type UserCard struct {
	ID         int    `json:"id"`
	Username   string `json:"username"`
	ProfilePic string `json:"profilePic"`
}

// UserProfile is used for post authors and search results; clients derive
// the follow state from Followers.
type UserProfile struct {
	ID         int    `json:"id"`
	Username   string `json:"username"`
	ProfilePic string `json:"profilePic"`
	Followers  []int  `json:"followers"`
}

// AccountView is returned by signup and login.
type AccountView struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type CommentView struct {
	ID        int       `json:"id"`
	PostID    int       `json:"post"`
	User      UserCard  `json:"user"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

type PostView struct {
	ID        int           `json:"id"`
	User      UserProfile   `json:"user"`
	Image     string        `json:"image"`
	Caption   string        `json:"caption"`
	Likes     []UserSummary `json:"likes"`
	Comments  []CommentView `json:"comments"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// PostRef is the part of a post shown next to a notification.
type PostRef struct {
	ID    int    `json:"id"`
	Image string `json:"image"`
}

type NotificationView struct {
	ID        int         `json:"id"`
	Type      models.Kind `json:"type"`
	FromUser  UserCard    `json:"fromUser"`
	ToUser    int         `json:"toUser"`
	Post      *PostRef    `json:"post"`
	Text      string      `json:"text,omitempty"`
	Read      bool        `json:"read"`
	CreatedAt time.Time   `json:"createdAt"`
}

// A referenced user that no longer resolves is shown with its id only.

func summaryOf(users map[int]*models.User, id int) UserSummary {
	if u, ok := users[id]; ok {
		return UserSummary{ID: u.ID, Username: u.Username}
	}
	return UserSummary{ID: id}
}

func cardOf(users map[int]*models.User, id int) UserCard {
	if u, ok := users[id]; ok {
		return UserCard{ID: u.ID, Username: u.Username, ProfilePic: u.ProfilePic}
	}
	return UserCard{ID: id}
}

func profileOf(u *models.User) UserProfile {
	followers := u.Followers
	if followers == nil {
		followers = []int{}
	}
	return UserProfile{ID: u.ID, Username: u.Username, ProfilePic: u.ProfilePic, Followers: followers}
}

func accountOf(u *models.User) AccountView {
	return AccountView{ID: u.ID, Username: u.Username, Email: u.Email}
}

func commentViewOf(c *models.Comment, users map[int]*models.User) CommentView {
	return CommentView{
		ID:        c.ID,
		PostID:    c.PostID,
		User:      cardOf(users, c.UserID),
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
	}
}
