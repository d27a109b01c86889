package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"picshare/app/middleware"
	"picshare/app/models"
	"picshare/app/repositories/mock"
	"picshare/app/services"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

type memoryImages struct{ count int }

func (m *memoryImages) Save(name string, r io.Reader) (string, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	m.count++
	return fmt.Sprintf("http://localhost:5000/uploads/%d-%s", m.count, name), nil
}

type fakeTokens struct{}

func (fakeTokens) Issue(userID int) (string, error) { return fmt.Sprintf("token-%d", userID), nil }

type testEnv struct {
	repos  *mock.Repositories
	router *mux.Router
}

func setupRouter(t *testing.T) *testEnv {
	t.Helper()
	repos := mock.New()
	graph := services.NewGraphService(repos.Users, repos.Posts, repos.Comments, repos.Notifications, nil, nil)

	authController := NewAuthController(services.NewAccountService(repos.Users, fakeTokens{}))
	postController := NewPostController(services.NewPostService(repos.Posts, repos.Users, repos.Comments, &memoryImages{}), graph)
	commentController := NewCommentController(services.NewCommentService(repos.Comments, repos.Users), graph)
	userController := NewUserController(services.NewUserService(repos.Users), graph)
	notificationController := NewNotificationController(services.NewNotificationService(repos.Notifications, repos.Users, repos.Posts))

	router := mux.NewRouter()
	router.HandleFunc("/signup", authController.Signup).Methods("POST")
	router.HandleFunc("/login", authController.Login).Methods("POST")
	router.HandleFunc("/posts", postController.Index).Methods("GET")
	router.HandleFunc("/posts", postController.Create).Methods("POST")
	router.HandleFunc("/posts/{id}", postController.Show).Methods("GET")
	router.HandleFunc("/posts/{id}/like", postController.Like).Methods("POST")
	router.HandleFunc("/posts/{id}/comments", commentController.Index).Methods("GET")
	router.HandleFunc("/posts/{id}/comment", commentController.Create).Methods("POST")
	router.HandleFunc("/users/search", userController.Search).Methods("GET")
	router.HandleFunc("/users/{id}", userController.Show).Methods("GET")
	router.HandleFunc("/users/{id}/follow", userController.Follow).Methods("POST")
	router.HandleFunc("/notifications", notificationController.Index).Methods("GET")
	router.HandleFunc("/notifications/read", notificationController.MarkRead).Methods("POST")

	return &testEnv{repos: repos, router: router}
}

func (e *testEnv) user(t *testing.T, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, Email: username + "@example.com", PasswordHash: "hash"}
	u.BeforeCreate()
	require.NoError(t, e.repos.Users.Create(u))
	return u
}

func (e *testEnv) post(t *testing.T, owner int) *models.Post {
	t.Helper()
	p := &models.Post{UserID: owner, Image: "http://localhost:5000/uploads/x.png"}
	p.BeforeCreate()
	require.NoError(t, e.repos.Posts.Create(p))
	return p
}

// serve runs req as actor; actor 0 means unauthenticated.
func (e *testEnv) serve(req *http.Request, actor int) *httptest.ResponseRecorder {
	if actor > 0 {
		req = req.WithContext(middleware.WithActor(req.Context(), actor))
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func multipartRequest(t *testing.T, fields map[string]string, filename, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		part, err := mw.CreateFormFile("image", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/posts", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func messageOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp ErrorResponse
	decode(t, w, &resp)
	return resp.Message
}
