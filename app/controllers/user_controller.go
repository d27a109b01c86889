package controllers

import (
	"net/http"

	"picshare/app/services"
)

// UserController handles search, profiles and follows
type UserController struct {
	users *services.UserService
	graph *services.GraphService
}

func NewUserController(users *services.UserService, graph *services.GraphService) *UserController {
	return &UserController{users: users, graph: graph}
}

// Search matches usernames against the query parameter
func (uc *UserController) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		sendMessage(w, http.StatusBadRequest, "Query is required")
		return
	}

	users, err := uc.users.SearchUsers(query)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, users)
}

// Show returns a user's public profile
func (uc *UserController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "User not found")
	if !ok {
		return
	}
	user, err := uc.users.GetProfile(id)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, user)
}

type followResponse struct {
	Following bool `json:"following"`
}

// Follow toggles whether the caller follows the user
func (uc *UserController) Follow(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "User not found")
	if !ok {
		return
	}

	following, err := uc.graph.ToggleFollow(r.Context(), actorID, id)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, followResponse{Following: following})
}
