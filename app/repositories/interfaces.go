package repositories

import "picshare/app/models"

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetMany(ids []int) (map[int]*models.User, error)
	Search(query string) ([]*models.User, error)
	// UpdatePair loads both users, applies fn and writes both back atomically.
	UpdatePair(actorID, targetID int, fn func(actor, target *models.User) error) error
}

// PostRepository defines the interface for post data access
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id int) (*models.Post, error)
	// List returns every post, newest first.
	List() ([]*models.Post, error)
	// Update loads the post, applies fn and writes it back atomically.
	Update(id int, fn func(post *models.Post) error) (*models.Post, error)
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	// Append stores the comment and appends its id to the parent post atomically.
	Append(comment *models.Comment) (*models.Post, error)
	GetByID(id int) (*models.Comment, error)
	// GetMany returns the comments for ids in the given order, skipping missing ones.
	GetMany(ids []int) ([]*models.Comment, error)
	ListByPost(postID int) ([]*models.Comment, error)
}

// NotificationRepository defines the interface for notification data access
type NotificationRepository interface {
	Create(notification *models.Notification) error
	// ListByRecipient returns at most limit notifications, newest first.
	ListByRecipient(userID, limit int) ([]*models.Notification, error)
	MarkAllRead(userID int) (int, error)
}
