package models

import (
	"errors"
	"slices"
	"time"
)

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}

	if p.CreatedAt.IsZero() {
		return errors.New("created_at cannot be zero")
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (p *Post) BeforeCreate() {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	p.UpdatedAt = p.CreatedAt
	if p.Likes == nil {
		p.Likes = []int{}
	}
	if p.Comments == nil {
		p.Comments = []int{}
	}
}

// LikedBy reports whether the user is in the post's like set.
func (p *Post) LikedBy(userID int) bool {
	return slices.Contains(p.Likes, userID)
}

// ToggleLike flips userID's membership in the like set and reports
// whether the user likes the post afterwards.
func (p *Post) ToggleLike(userID int) bool {
	p.UpdatedAt = time.Now().UTC()
	if p.LikedBy(userID) {
		p.Likes = removeID(p.Likes, userID)
		return false
	}
	p.Likes = append(p.Likes, userID)
	return true
}

// AddComment appends the comment's id to the post's comment sequence
func (p *Post) AddComment(comment *Comment) error {
	if comment == nil {
		return errors.New("comment cannot be nil")
	}
	if comment.ID <= 0 {
		return errors.New("comment must be persisted before it is attached")
	}

	comment.PostID = p.ID
	p.Comments = append(p.Comments, comment.ID)
	p.UpdatedAt = time.Now().UTC()
	return nil
}
