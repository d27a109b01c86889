package routes

import (
	"log/slog"
	"net/http"

	"picshare/app/auth"
	"picshare/app/controllers"
	"picshare/app/events"
	"picshare/app/middleware"
	"picshare/app/repositories"
	"picshare/app/services"
	"picshare/app/uploads"

	"github.com/gorilla/mux"
	"github.com/klauspost/compress/gzhttp"
	"github.com/rs/cors"
)

// Deps carries everything the route table needs. Publisher and Logger may be nil.
type Deps struct {
	Store       *repositories.Repository
	Tokens      *auth.TokenService
	Images      *uploads.DiskStore
	Publisher   events.Publisher
	Logger      *slog.Logger
	CORSOrigins []string
}

// SetupRoutes builds the services and controllers over deps and returns the
// full handler: router, CORS and gzip.
func SetupRoutes(deps Deps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	store := deps.Store

	graph := services.NewGraphService(store.Users, store.Posts, store.Comments, store.Notifications, deps.Publisher, logger)
	authController := controllers.NewAuthController(services.NewAccountService(store.Users, deps.Tokens))
	postController := controllers.NewPostController(services.NewPostService(store.Posts, store.Users, store.Comments, deps.Images), graph)
	commentController := controllers.NewCommentController(services.NewCommentService(store.Comments, store.Users), graph)
	userController := controllers.NewUserController(services.NewUserService(store.Users), graph)
	notificationController := controllers.NewNotificationController(services.NewNotificationService(store.Notifications, store.Users, store.Posts))

	router := mux.NewRouter()
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recoverer(logger))
	router.Use(middleware.ContentTypeJSON)

	router.NotFoundHandler = http.HandlerFunc(controllers.NotFound)

	// Public
	router.HandleFunc("/signup", authController.Signup).Methods(http.MethodPost)
	router.HandleFunc("/login", authController.Login).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/login", authController.Login).Methods(http.MethodPost)
	router.PathPrefix(uploads.Route).Handler(deps.Images.Handler()).Methods(http.MethodGet, http.MethodHead)

	protected := router.NewRoute().Subrouter()
	protected.Use(middleware.RequireAuth(deps.Tokens))

	posts := protected.PathPrefix("/posts").Subrouter()
	posts.HandleFunc("", postController.Index).Methods(http.MethodGet)
	posts.HandleFunc("", postController.Create).Methods(http.MethodPost)
	posts.HandleFunc("/{id}", postController.Show).Methods(http.MethodGet)
	posts.HandleFunc("/{id}/like", postController.Like).Methods(http.MethodPost)
	posts.HandleFunc("/{id}/comments", commentController.Index).Methods(http.MethodGet)
	posts.HandleFunc("/{id}/comment", commentController.Create).Methods(http.MethodPost)

	users := protected.PathPrefix("/users").Subrouter()
	users.HandleFunc("/search", userController.Search).Methods(http.MethodGet)
	users.HandleFunc("/{id}", userController.Show).Methods(http.MethodGet)
	users.HandleFunc("/{id}/follow", userController.Follow).Methods(http.MethodPost)

	notifications := protected.PathPrefix("/notifications").Subrouter()
	notifications.HandleFunc("", notificationController.Index).Methods(http.MethodGet)
	notifications.HandleFunc("/read", notificationController.MarkRead).Methods(http.MethodPost)

	origins := deps.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})

	return gzhttp.GzipHandler(c.Handler(router))
}
