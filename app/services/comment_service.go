package services

import (
	"picshare/app/models"
	"picshare/app/repositories"
)

// CommentService reads comments. Creating them is a GraphService operation
// because it fans out a notification.
type CommentService struct {
	commentRepo repositories.CommentRepository
	assembler   assembler
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repositories.CommentRepository, userRepo repositories.UserRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		assembler:   assembler{userRepo: userRepo, commentRepo: commentRepo},
	}
}

// ListPostComments retrieves all comments for a post in the order they were added
func (s *CommentService) ListPostComments(postID int) ([]CommentView, error) {
	comments, err := s.commentRepo.ListByPost(postID)
	if err != nil {
		return nil, lookupError(err, "Post not found", "Error fetching comments")
	}
	views, err := s.assembler.comments(comments)
	if err != nil {
		return nil, storeError("Error fetching comments", err)
	}
	return views, nil
}

// GetComment retrieves a comment by ID
func (s *CommentService) GetComment(id int) (*CommentView, error) {
	comment, err := s.commentRepo.GetByID(id)
	if err != nil {
		return nil, lookupError(err, "Comment not found", "Error fetching comment")
	}
	views, err := s.assembler.comments([]*models.Comment{comment})
	if err != nil {
		return nil, storeError("Error fetching comment", err)
	}
	return &views[0], nil
}
