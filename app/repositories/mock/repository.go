package mock

import (
	"slices"
	"sort"
	"strings"
	"sync"

	"picshare/app/models"
	"picshare/app/repositories"
)

// Stored records are copied on the way in and out so callers never share
// memory with the map, the same way a document store behaves.

func copyUser(u *models.User) *models.User {
	c := *u
	c.Followers = slices.Clone(u.Followers)
	c.Following = slices.Clone(u.Following)
	return &c
}

func copyPost(p *models.Post) *models.Post {
	c := *p
	c.Likes = slices.Clone(p.Likes)
	c.Comments = slices.Clone(p.Comments)
	return &c
}

func copyComment(cm *models.Comment) *models.Comment {
	c := *cm
	return &c
}

func copyNotification(n *models.Notification) *models.Notification {
	c := *n
	return &c
}

type UserRepository struct {
	users  map[int]*models.User
	nextID int
	mutex  sync.RWMutex
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users:  make(map[int]*models.User),
		nextID: 1,
	}
}

func (m *UserRepository) Create(user *models.User) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for _, existing := range m.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return repositories.ErrDuplicateEmail
		}
		if strings.EqualFold(existing.Username, user.Username) {
			return repositories.ErrDuplicateUsername
		}
	}

	user.ID = m.nextID
	m.nextID++
	m.users[user.ID] = copyUser(user)
	return nil
}

func (m *UserRepository) GetByID(id int) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	user, exists := m.users[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return copyUser(user), nil
}

func (m *UserRepository) GetByEmail(email string) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	email = models.NormalizeEmail(email)
	for _, user := range m.users {
		if user.Email == email {
			return copyUser(user), nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *UserRepository) GetMany(ids []int) (map[int]*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	users := make(map[int]*models.User, len(ids))
	for _, id := range ids {
		if user, exists := m.users[id]; exists {
			users[id] = copyUser(user)
		}
	}
	return users, nil
}

func (m *UserRepository) Search(query string) ([]*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	users := []*models.User{}
	needle := strings.ToLower(query)
	if needle == "" {
		return users, nil
	}
	for _, user := range m.users {
		if strings.Contains(strings.ToLower(user.Username), needle) {
			users = append(users, copyUser(user))
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (m *UserRepository) UpdatePair(actorID, targetID int, fn func(actor, target *models.User) error) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	actor, exists := m.users[actorID]
	if !exists {
		return repositories.ErrNotFound
	}
	target, exists := m.users[targetID]
	if !exists {
		return repositories.ErrNotFound
	}

	a, t := copyUser(actor), copyUser(target)
	if err := fn(a, t); err != nil {
		return err
	}
	m.users[a.ID] = a
	m.users[t.ID] = t
	return nil
}

type PostRepository struct {
	posts  map[int]*models.Post
	nextID int
	mutex  sync.RWMutex
}

func NewPostRepository() *PostRepository {
	return &PostRepository{
		posts:  make(map[int]*models.Post),
		nextID: 1,
	}
}

func (m *PostRepository) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.posts = make(map[int]*models.Post)
	m.nextID = 1
}

func (m *PostRepository) Create(post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	post.ID = m.nextID
	m.nextID++
	m.posts[post.ID] = copyPost(post)
	return nil
}

func (m *PostRepository) GetByID(id int) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return copyPost(post), nil
}

func (m *PostRepository) List() ([]*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	posts := make([]*models.Post, 0, len(m.posts))
	for _, post := range m.posts {
		posts = append(posts, copyPost(post))
	}
	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].ID > posts[j].ID
		}
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

func (m *PostRepository) Update(id int, fn func(post *models.Post) error) (*models.Post, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.updateLocked(id, fn)
}

func (m *PostRepository) updateLocked(id int, fn func(post *models.Post) error) (*models.Post, error) {
	stored, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	post := copyPost(stored)
	if err := fn(post); err != nil {
		return nil, err
	}
	m.posts[id] = copyPost(post)
	return post, nil
}

// CommentRepository appends to posts held by the PostRepository it was built with.
type CommentRepository struct {
	posts    *PostRepository
	comments map[int]*models.Comment
	nextID   int
	mutex    sync.RWMutex
}

func NewCommentRepository(posts *PostRepository) *CommentRepository {
	return &CommentRepository{
		posts:    posts,
		comments: make(map[int]*models.Comment),
		nextID:   1,
	}
}

func (m *CommentRepository) Append(comment *models.Comment) (*models.Post, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.posts.mutex.Lock()
	defer m.posts.mutex.Unlock()

	if _, exists := m.posts.posts[comment.PostID]; !exists {
		return nil, repositories.ErrNotFound
	}

	comment.ID = m.nextID
	post, err := m.posts.updateLocked(comment.PostID, func(p *models.Post) error {
		return p.AddComment(comment)
	})
	if err != nil {
		comment.ID = 0
		return nil, err
	}
	m.nextID++
	m.comments[comment.ID] = copyComment(comment)
	return post, nil
}

func (m *CommentRepository) GetByID(id int) (*models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	comment, exists := m.comments[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return copyComment(comment), nil
}

func (m *CommentRepository) GetMany(ids []int) ([]*models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	comments := make([]*models.Comment, 0, len(ids))
	for _, id := range ids {
		if comment, exists := m.comments[id]; exists {
			comments = append(comments, copyComment(comment))
		}
	}
	return comments, nil
}

func (m *CommentRepository) ListByPost(postID int) ([]*models.Comment, error) {
	post, err := m.posts.GetByID(postID)
	if err != nil {
		return nil, err
	}
	return m.GetMany(post.Comments)
}

type NotificationRepository struct {
	notifications []*models.Notification
	nextID        int
	mutex         sync.RWMutex
}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{nextID: 1}
}

func (m *NotificationRepository) Create(notification *models.Notification) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	notification.ID = m.nextID
	m.nextID++
	m.notifications = append(m.notifications, copyNotification(notification))
	return nil
}

func (m *NotificationRepository) ListByRecipient(userID, limit int) ([]*models.Notification, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	list := []*models.Notification{}
	for i := len(m.notifications) - 1; i >= 0 && len(list) < limit; i-- {
		if n := m.notifications[i]; n.ToUser == userID {
			list = append(list, copyNotification(n))
		}
	}
	return list, nil
}

func (m *NotificationRepository) MarkAllRead(userID int) (int, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	updated := 0
	for _, n := range m.notifications {
		if n.ToUser == userID && !n.Read {
			n.Read = true
			updated++
		}
	}
	return updated, nil
}

// All returns every stored notification in creation order.
func (m *NotificationRepository) All() []*models.Notification {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	all := make([]*models.Notification, 0, len(m.notifications))
	for _, n := range m.notifications {
		all = append(all, copyNotification(n))
	}
	return all
}

// Repositories bundles one of each mock, wired together.
type Repositories struct {
	Users         *UserRepository
	Posts         *PostRepository
	Comments      *CommentRepository
	Notifications *NotificationRepository
}

func New() *Repositories {
	posts := NewPostRepository()
	return &Repositories{
		Users:         NewUserRepository(),
		Posts:         posts,
		Comments:      NewCommentRepository(posts),
		Notifications: NewNotificationRepository(),
	}
}

var (
	_ repositories.UserRepository         = (*UserRepository)(nil)
	_ repositories.PostRepository         = (*PostRepository)(nil)
	_ repositories.CommentRepository      = (*CommentRepository)(nil)
	_ repositories.NotificationRepository = (*NotificationRepository)(nil)
)
