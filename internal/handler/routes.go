package handler

import (
	"net/http"

	"github.com/Dan9191/deploy-mock/internal/middleware"
	"github.com/Dan9191/deploy-mock/internal/service"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// NewRouter registers all routes. The catch-all file route goes last.
// Routes match the encoded path so file keys may contain "%2F".
func NewRouter(h *Handler, svc *service.Service, logger *logrus.Logger) *mux.Router {
	r := mux.NewRouter().UseEncodedPath()
	r.Use(middleware.LoggingMiddleware(logger))

	// Public routes
	r.HandleFunc("/", h.Help).Methods("GET")
	r.HandleFunc("/dump", h.Dump).Methods("GET")
	r.HandleFunc("/user/create", h.CreateUser).Methods("POST")
	r.HandleFunc("/user/login", h.Login).Methods("POST")

	// Protected routes
	auth := middleware.AuthMiddleware(svc)
	r.Handle("/project", auth(http.HandlerFunc(h.CreateProject))).Methods("POST")
	r.Handle("/projects", auth(http.HandlerFunc(h.ListProjects))).Methods("GET")
	r.Handle("/project/{projectId}/upload", auth(http.HandlerFunc(h.Upload))).Methods("POST")
	r.Handle("/{userId}/{projectId}/{key}", auth(http.HandlerFunc(h.GetFile))).Methods("GET")

	return r
}
