package controllers

import (
	"errors"
	"net/http"

	"picshare/app/services"
)

const (
	// maxUploadSize bounds the whole multipart body.
	maxUploadSize = 10 << 20
	maxMemory     = 1 << 20
)

// PostController handles HTTP requests for posts
type PostController struct {
	posts *services.PostService
	graph *services.GraphService
}

func NewPostController(posts *services.PostService, graph *services.GraphService) *PostController {
	return &PostController{posts: posts, graph: graph}
}

// Index returns the feed
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	feed, err := pc.posts.ListFeed()
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, feed)
}

// Show returns a single post
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Post not found")
	if !ok {
		return
	}
	post, err := pc.posts.GetPost(id)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, post)
}

// Create handles a multipart upload with an "image" file and a "caption" field
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			sendMessage(w, http.StatusRequestEntityTooLarge, "Image is too large")
			return
		}
		sendMessage(w, http.StatusBadRequest, "Invalid upload")
		return
	}

	in := services.NewPost{Caption: r.FormValue("caption")}
	file, header, err := r.FormFile("image")
	if err == nil {
		defer file.Close()
		in.Filename = header.Filename
		in.Image = file
	}

	post, err := pc.posts.CreatePost(actorID, in)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusCreated, post)
}

// Like toggles the caller's like on the post
func (pc *PostController) Like(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "Post not found")
	if !ok {
		return
	}

	post, err := pc.graph.ToggleLike(r.Context(), actorID, id)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, post)
}
