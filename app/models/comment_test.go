package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCommentValidation(t *testing.T) {
	tests := []struct {
		name    string
		comment *Comment
		wantErr bool
	}{
		{
			name: "valid comment",
			comment: &Comment{
				ID:        1,
				PostID:    1,
				UserID:    1,
				Text:      "nice!",
				CreatedAt: time.Now(),
			},
			wantErr: false,
		},
		{
			name: "empty text",
			comment: &Comment{
				ID:        1,
				PostID:    1,
				UserID:    1,
				Text:      "",
				CreatedAt: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "missing author",
			comment: &Comment{
				ID:        1,
				PostID:    1,
				Text:      "nice!",
				CreatedAt: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "zero creation time",
			comment: &Comment{
				ID:     1,
				PostID: 1,
				UserID: 1,
				Text:   "nice!",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.comment.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCommentBeforeCreate(t *testing.T) {
	comment := &Comment{PostID: 1, UserID: 1, Text: "Test Comment"}

	assert.True(t, comment.CreatedAt.IsZero())
	comment.BeforeCreate()
	assert.False(t, comment.CreatedAt.IsZero())
}
