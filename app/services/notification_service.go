package services

import (
	"picshare/app/repositories"
)

// NotificationLimit caps how many notifications a recipient is shown.
const NotificationLimit = 20

type NotificationService struct {
	notificationRepo repositories.NotificationRepository
	userRepo         repositories.UserRepository
	postRepo         repositories.PostRepository
}

func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
	postRepo repositories.PostRepository,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		postRepo:         postRepo,
	}
}

// ListNotifications returns the recipient's most recent notifications,
// newest first, with the actor and the referenced post's image.
func (s *NotificationService) ListNotifications(recipientID int) ([]NotificationView, error) {
	list, err := s.notificationRepo.ListByRecipient(recipientID, NotificationLimit)
	if err != nil {
		return nil, storeError("Error fetching notifications", err)
	}

	actorIDs := make([]int, 0, len(list))
	for _, n := range list {
		actorIDs = append(actorIDs, n.FromUser)
	}
	actors, err := s.userRepo.GetMany(actorIDs)
	if err != nil {
		return nil, storeError("Error fetching notifications", err)
	}

	posts := make(map[int]*PostRef)
	views := make([]NotificationView, 0, len(list))
	for _, n := range list {
		view := NotificationView{
			ID:        n.ID,
			Type:      n.Kind,
			FromUser:  cardOf(actors, n.FromUser),
			ToUser:    n.ToUser,
			Text:      n.Text,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		}
		if n.PostID > 0 {
			ref, err := s.postRef(posts, n.PostID)
			if err != nil {
				return nil, storeError("Error fetching notifications", err)
			}
			view.Post = ref
		}
		views = append(views, view)
	}
	return views, nil
}

// postRef resolves a post once per listing. A post that no longer exists
// yields a nil reference.
func (s *NotificationService) postRef(cache map[int]*PostRef, id int) (*PostRef, error) {
	if ref, ok := cache[id]; ok {
		return ref, nil
	}
	post, err := s.postRepo.GetByID(id)
	if isMissing(err) {
		cache[id] = nil
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	ref := &PostRef{ID: post.ID, Image: post.Image}
	cache[id] = ref
	return ref, nil
}

// MarkAllRead flags every notification of the recipient as read and
// returns how many changed.
func (s *NotificationService) MarkAllRead(recipientID int) (int, error) {
	n, err := s.notificationRepo.MarkAllRead(recipientID)
	if err != nil {
		return 0, storeError("Error updating notifications", err)
	}
	return n, nil
}
