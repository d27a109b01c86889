package services

import (
	"fmt"
	"io"
	"strings"

	"picshare/app/models"
	"picshare/app/repositories"
)

// ImageStore keeps uploaded image bytes and returns the reference stored on the post.
type ImageStore interface {
	Save(originalName string, r io.Reader) (string, error)
}

// NewPost is an upload waiting to become a post. Image is nil when the
// request carried no file.
type NewPost struct {
	Filename string
	Image    io.Reader
	Caption  string
}

// PostService creates posts and assembles the feed
type PostService struct {
	postRepo  repositories.PostRepository
	userRepo  repositories.UserRepository
	images    ImageStore
	assembler assembler
}

// NewPostService creates a new PostService
func NewPostService(
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	commentRepo repositories.CommentRepository,
	images ImageStore,
) *PostService {
	return &PostService{
		postRepo:  postRepo,
		userRepo:  userRepo,
		images:    images,
		assembler: assembler{userRepo: userRepo, commentRepo: commentRepo},
	}
}

// CreatePost stores the image and creates a post owned by actorID
func (s *PostService) CreatePost(actorID int, in NewPost) (*PostView, error) {
	if in.Image == nil {
		return nil, validationError("Image is required")
	}
	caption := strings.TrimSpace(in.Caption)
	if len([]rune(caption)) > 2200 {
		return nil, validationError("Caption is too long (maximum 2200 characters)")
	}
	if _, err := s.userRepo.GetByID(actorID); err != nil {
		return nil, lookupError(err, "User not found", "Error creating post")
	}

	image, err := s.images.Save(in.Filename, in.Image)
	if err != nil {
		return nil, storeError("Error creating post", fmt.Errorf("save image: %w", err))
	}

	post := &models.Post{UserID: actorID, Image: image, Caption: caption}
	post.BeforeCreate()
	if err := post.Validate(); err != nil {
		return nil, &Error{Kind: ErrValidation, Message: "Invalid post", Cause: err}
	}
	if err := s.postRepo.Create(post); err != nil {
		return nil, storeError("Error creating post", err)
	}

	view, err := s.assembler.post(post)
	if err != nil {
		return nil, storeError("Error creating post", err)
	}
	return view, nil
}

// ListFeed returns every post, newest first, with authors, likers and comments
func (s *PostService) ListFeed() ([]PostView, error) {
	posts, err := s.postRepo.List()
	if err != nil {
		return nil, storeError("Error fetching posts", err)
	}
	views, err := s.assembler.posts(posts)
	if err != nil {
		return nil, storeError("Error fetching posts", err)
	}
	return views, nil
}

// GetPost retrieves a single post in feed form
func (s *PostService) GetPost(id int) (*PostView, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, lookupError(err, "Post not found", "Error fetching post")
	}
	view, err := s.assembler.post(post)
	if err != nil {
		return nil, storeError("Error fetching post", err)
	}
	return view, nil
}
