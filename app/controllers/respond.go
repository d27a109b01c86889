package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"picshare/app/middleware"
	"picshare/app/services"

	"github.com/gorilla/mux"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func sendMessage(w http.ResponseWriter, status int, message string) {
	sendJSON(w, status, ErrorResponse{Message: message})
}

// sendError answers with the status matching the error kind.
func sendError(w http.ResponseWriter, err error) {
	resp := ErrorResponse{Message: services.Message(err)}
	if cause := services.Cause(err); cause != nil {
		resp.Error = cause.Error()
	}
	sendJSON(w, statusFor(err), resp)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// actor returns the authenticated user id, answering 401 when there is none.
func actor(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, ok := middleware.ActorID(r.Context())
	if !ok {
		sendMessage(w, http.StatusUnauthorized, "Not authorized, token missing")
	}
	return id, ok
}

// pathID parses the {id} route variable, answering 404 when it is not a number.
func pathID(w http.ResponseWriter, r *http.Request, missing string) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		sendMessage(w, http.StatusNotFound, missing)
		return 0, false
	}
	return id, true
}

// decodeBody reads a JSON body into v, falling back to form values for
// url-encoded submissions.
func decodeBody(r *http.Request, v interface{}, form func(get func(string) string)) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			return err
		}
		form(r.PostForm.Get)
		return nil
	}
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// NotFound answers unknown routes with the usual JSON error body.
func NotFound(w http.ResponseWriter, r *http.Request) {
	sendMessage(w, http.StatusNotFound, "Not found")
}
