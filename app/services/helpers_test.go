package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"picshare/app/models"
	"picshare/app/repositories/mock"

	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []*models.Notification
	err    error
}

func (p *recordingPublisher) PublishNotification(_ context.Context, n *models.Notification) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, n)
	return nil
}

type memoryImages struct {
	saved map[string]string
	err   error
}

func (m *memoryImages) Save(name string, r io.Reader) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	url := fmt.Sprintf("http://localhost:5000/uploads/%d-%s", len(m.saved)+1, name)
	m.saved[url] = string(data)
	return url, nil
}

type fakeTokens struct{ err error }

func (f fakeTokens) Issue(userID int) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return fmt.Sprintf("token-%d", userID), nil
}

type fixture struct {
	repos         *mock.Repositories
	publisher     *recordingPublisher
	images        *memoryImages
	graph         *GraphService
	posts         *PostService
	comments      *CommentService
	users         *UserService
	notifications *NotificationService
	accounts      *AccountService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repos := mock.New()
	publisher := &recordingPublisher{}
	images := &memoryImages{saved: map[string]string{}}

	return &fixture{
		repos:         repos,
		publisher:     publisher,
		images:        images,
		graph:         NewGraphService(repos.Users, repos.Posts, repos.Comments, repos.Notifications, publisher, nil),
		posts:         NewPostService(repos.Posts, repos.Users, repos.Comments, images),
		comments:      NewCommentService(repos.Comments, repos.Users),
		users:         NewUserService(repos.Users),
		notifications: NewNotificationService(repos.Notifications, repos.Users, repos.Posts),
		accounts:      NewAccountService(repos.Users, fakeTokens{}),
	}
}

func (f *fixture) user(t *testing.T, username string) *models.User {
	t.Helper()
	u := &models.User{
		Username:     username,
		Email:        strings.ToLower(username) + "@example.com",
		PasswordHash: "hash",
	}
	u.BeforeCreate()
	require.NoError(t, f.repos.Users.Create(u))
	return u
}

func (f *fixture) post(t *testing.T, owner int, caption string) *PostView {
	t.Helper()
	view, err := f.posts.CreatePost(owner, NewPost{Filename: "p.png", Image: strings.NewReader("img"), Caption: caption})
	require.NoError(t, err)
	return view
}

// notificationsOf returns every stored notification addressed to userID.
func (f *fixture) notificationsOf(userID int) []*models.Notification {
	var out []*models.Notification
	for _, n := range f.repos.Notifications.All() {
		if n.ToUser == userID {
			out = append(out, n)
		}
	}
	return out
}

var errBroker = errors.New("broker down")
