package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"picshare/app/events"
	"picshare/app/models"
	"picshare/app/repositories"
)

// GraphService mutates follow relationships, like sets and comment
// sequences, and fans out the resulting notifications.
type GraphService struct {
	userRepo    repositories.UserRepository
	postRepo    repositories.PostRepository
	commentRepo repositories.CommentRepository
	notifier    *notifier
	assembler   assembler
}

// NewGraphService creates a new GraphService. publisher and logger may be nil.
func NewGraphService(
	userRepo repositories.UserRepository,
	postRepo repositories.PostRepository,
	commentRepo repositories.CommentRepository,
	notificationRepo repositories.NotificationRepository,
	publisher events.Publisher,
	logger *slog.Logger,
) *GraphService {
	return &GraphService{
		userRepo:    userRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		notifier:    newNotifier(notificationRepo, publisher, logger),
		assembler:   assembler{userRepo: userRepo, commentRepo: commentRepo},
	}
}

// ToggleFollow follows targetID if actorID does not follow it yet and
// unfollows it otherwise. It reports whether actorID follows targetID
// afterwards. Following yourself is a no-op that reports false.
func (s *GraphService) ToggleFollow(ctx context.Context, actorID, targetID int) (bool, error) {
	if actorID == targetID {
		if _, err := s.userRepo.GetByID(targetID); err != nil {
			return false, lookupError(err, "User not found", "Follow error")
		}
		return false, nil
	}

	var following bool
	err := s.userRepo.UpdatePair(actorID, targetID, func(actor, target *models.User) error {
		if actor.IsFollowing(target.ID) {
			actor.Unfollow(target)
			following = false
		} else {
			actor.Follow(target)
			following = true
		}
		return nil
	})
	if err != nil {
		return false, lookupError(err, "User not found", "Follow error")
	}

	if following {
		if err := s.notifier.notify(ctx, actorID, targetID, models.FollowPayload{}); err != nil {
			return true, err
		}
	}
	return following, nil
}

// ToggleLike adds actorID to the post's likes, or removes it when already
// present, and returns the updated post.
func (s *GraphService) ToggleLike(ctx context.Context, actorID, postID int) (*PostView, error) {
	if err := s.requireActor(actorID, "Error liking post"); err != nil {
		return nil, err
	}

	var liked bool
	post, err := s.postRepo.Update(postID, func(p *models.Post) error {
		liked = p.ToggleLike(actorID)
		return nil
	})
	if err != nil {
		return nil, lookupError(err, "Post not found", "Error liking post")
	}

	if liked {
		if err := s.notifier.notify(ctx, actorID, post.UserID, models.LikePayload{PostID: post.ID}); err != nil {
			return nil, err
		}
	}

	view, err := s.assembler.post(post)
	if err != nil {
		return nil, storeError("Error liking post", err)
	}
	return view, nil
}

// AddComment appends a comment by actorID to the post and returns it.
func (s *GraphService) AddComment(ctx context.Context, actorID, postID int, text string) (*CommentView, error) {
	if strings.TrimSpace(text) == "" {
		return nil, validationError("Comment cannot be empty")
	}
	if postID <= 0 {
		return nil, notFound("Post not found")
	}
	if err := s.requireActor(actorID, "Error adding comment"); err != nil {
		return nil, err
	}

	comment := &models.Comment{PostID: postID, UserID: actorID, Text: text}
	comment.BeforeCreate()
	if err := comment.Validate(); err != nil {
		return nil, &Error{Kind: ErrValidation, Message: "Invalid comment", Cause: err}
	}

	post, err := s.commentRepo.Append(comment)
	if err != nil {
		return nil, lookupError(err, "Post not found", "Error adding comment")
	}

	if err := s.notifier.notify(ctx, actorID, post.UserID, models.CommentPayload{PostID: post.ID, Text: text}); err != nil {
		return nil, err
	}

	views, err := s.assembler.comments([]*models.Comment{comment})
	if err != nil {
		return nil, storeError("Error adding comment", err)
	}
	return &views[0], nil
}

// requireActor fails with a not-found error when actorID no longer resolves,
// which happens when a token outlives its user.
func (s *GraphService) requireActor(actorID int, failed string) error {
	if _, err := s.userRepo.GetByID(actorID); err != nil {
		return lookupError(err, "User not found", failed)
	}
	return nil
}

// isMissing reports whether err is a repository miss.
func isMissing(err error) bool {
	return errors.Is(err, repositories.ErrNotFound)
}
