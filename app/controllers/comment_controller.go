package controllers

import (
	"net/http"

	"picshare/app/services"
)

// CommentController handles HTTP requests for comments
type CommentController struct {
	comments *services.CommentService
	graph    *services.GraphService
}

func NewCommentController(comments *services.CommentService, graph *services.GraphService) *CommentController {
	return &CommentController{comments: comments, graph: graph}
}

// Index lists a post's comments in the order they were added
func (cc *CommentController) Index(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(w, r, "Post not found")
	if !ok {
		return
	}
	comments, err := cc.comments.ListPostComments(postID)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, comments)
}

type commentRequest struct {
	Text string `json:"text"`
}

// Create adds the caller's comment to the post
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}
	postID, ok := pathID(w, r, "Post not found")
	if !ok {
		return
	}

	var in commentRequest
	err := decodeBody(r, &in, func(get func(string) string) {
		in.Text = get("text")
	})
	if err != nil {
		sendMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	comment, err := cc.graph.AddComment(r.Context(), actorID, postID, in.Text)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusCreated, comment)
}
