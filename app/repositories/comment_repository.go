package repositories

import (
	"errors"

	"picshare/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerCommentRepository implements CommentRepository using BadgerDB
type BadgerCommentRepository struct {
	db *badger.DB
}

// NewBadgerCommentRepository creates a new BadgerCommentRepository
func NewBadgerCommentRepository(db *badger.DB) *BadgerCommentRepository {
	return &BadgerCommentRepository{db: db}
}

// Append creates the comment and records it on its parent post
func (r *BadgerCommentRepository) Append(comment *models.Comment) (*models.Post, error) {
	var post models.Post
	err := r.db.Update(func(txn *badger.Txn) error {
		if err := getEntity(txn, postKey(comment.PostID), &post); err != nil {
			return err
		}

		id, err := getNextID(txn, CommentSeqKey)
		if err != nil {
			return err
		}
		comment.ID = id

		if err := post.AddComment(comment); err != nil {
			return err
		}
		if err := setEntity(txn, commentKey(comment.ID), comment); err != nil {
			return err
		}
		return setEntity(txn, postKey(post.ID), &post)
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetByID retrieves a comment by ID
func (r *BadgerCommentRepository) GetByID(id int) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.View(func(txn *badger.Txn) error {
		return getEntity(txn, commentKey(id), &comment)
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetMany retrieves comments in the order of ids
func (r *BadgerCommentRepository) GetMany(ids []int) ([]*models.Comment, error) {
	comments := make([]*models.Comment, 0, len(ids))
	err := r.db.View(func(txn *badger.Txn) error {
		return loadComments(txn, ids, &comments)
	})
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// ListByPost retrieves all comments for a post in the order they were added
func (r *BadgerCommentRepository) ListByPost(postID int) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.View(func(txn *badger.Txn) error {
		var post models.Post
		if err := getEntity(txn, postKey(postID), &post); err != nil {
			return err
		}
		comments = make([]*models.Comment, 0, len(post.Comments))
		return loadComments(txn, post.Comments, &comments)
	})
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func loadComments(txn *badger.Txn, ids []int, out *[]*models.Comment) error {
	for _, id := range ids {
		var comment models.Comment
		err := getEntity(txn, commentKey(id), &comment)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		*out = append(*out, &comment)
	}
	return nil
}
