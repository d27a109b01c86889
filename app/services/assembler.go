package services

import (
	"picshare/app/models"
	"picshare/app/repositories"
)

// assembler joins posts with their authors, likers and comments using one
// batched lookup per collection.
type assembler struct {
	userRepo    repositories.UserRepository
	commentRepo repositories.CommentRepository
}

func (a assembler) posts(posts []*models.Post) ([]PostView, error) {
	var commentIDs []int
	for _, p := range posts {
		commentIDs = append(commentIDs, p.Comments...)
	}
	comments, err := a.commentRepo.GetMany(commentIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[int]*models.Comment, len(comments))
	for _, c := range comments {
		byID[c.ID] = c
	}

	var userIDs []int
	for _, p := range posts {
		userIDs = append(userIDs, p.UserID)
		userIDs = append(userIDs, p.Likes...)
	}
	for _, c := range comments {
		userIDs = append(userIDs, c.UserID)
	}
	users, err := a.userRepo.GetMany(userIDs)
	if err != nil {
		return nil, err
	}

	views := make([]PostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, postViewOf(p, users, byID))
	}
	return views, nil
}

func (a assembler) post(p *models.Post) (*PostView, error) {
	views, err := a.posts([]*models.Post{p})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (a assembler) comments(comments []*models.Comment) ([]CommentView, error) {
	ids := make([]int, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.UserID)
	}
	users, err := a.userRepo.GetMany(ids)
	if err != nil {
		return nil, err
	}

	views := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, commentViewOf(c, users))
	}
	return views, nil
}

func postViewOf(p *models.Post, users map[int]*models.User, comments map[int]*models.Comment) PostView {
	view := PostView{
		ID:        p.ID,
		User:      UserProfile{ID: p.UserID, Followers: []int{}},
		Image:     p.Image,
		Caption:   p.Caption,
		Likes:     make([]UserSummary, 0, len(p.Likes)),
		Comments:  make([]CommentView, 0, len(p.Comments)),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if author, ok := users[p.UserID]; ok {
		view.User = profileOf(author)
	}
	for _, id := range p.Likes {
		view.Likes = append(view.Likes, summaryOf(users, id))
	}
	for _, id := range p.Comments {
		if c, ok := comments[id]; ok {
			view.Comments = append(view.Comments, commentViewOf(c, users))
		}
	}
	return view
}
