package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/Dan9191/deploy-mock/internal/service"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Handler serves the HTTP API on top of the service
type Handler struct {
	svc  *service.Service
	log  *logrus.Logger
	help string
}

// NewHandler initializes a handler and renders the help page
func NewHandler(svc *service.Service, log *logrus.Logger) (*Handler, error) {
	help, err := renderHelpPage()
	if err != nil {
		return nil, err
	}
	return &Handler{svc: svc, log: log, help: help}, nil
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type createProjectRequest struct {
	Name string `json:"name"`
}

type uploadRequest struct {
	Files map[string]string `json:"files"`
}

type fileResponse struct {
	Content string `json:"content"`
}

// Help serves the HTML help page
func (h *Handler) Help(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, h.help)
}

// Dump returns the whole store
func (h *Handler) Dump(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.svc.Dump())
}

// CreateUser handles user registration
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	h.svc.CreateUser(req.Username, req.Password)
	w.WriteHeader(http.StatusCreated)
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	token, err := h.svc.Login(req.Username, req.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, loginResponse{Token: token})
}

// CreateProject handles project creation for the authenticated user
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if err := h.svc.CreateProject(r.Context(), req.Name); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// ListProjects returns the authenticated user's projects keyed by name
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.svc.ListProjects(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, projects)
}

// Upload merges the posted files into a project of the authenticated user
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	var req uploadRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	vars, err := pathVars(r, "projectId")
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if err := h.svc.Upload(r.Context(), vars[0], req.Files); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// GetFile returns a single file of any user's project
func (h *Handler) GetFile(w http.ResponseWriter, r *http.Request) {
	vars, err := pathVars(r, "userId", "projectId", "key")
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	content, err := h.svc.GetFile(r.Context(), vars[0], vars[1], vars[2])
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, fileResponse{Content: content})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Errorf("Failed to encode response: %v", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrUnauthorized), errors.Is(err, service.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrProjectNotFound),
		errors.Is(err, service.ErrFileNotFound):
		status = http.StatusNotFound
	default:
		h.log.Errorf("Request failed: %v", err)
	}
	http.Error(w, http.StatusText(status), status)
}

// pathVars returns the named route variables with percent-encoding removed.
// The router matches on the encoded path, so "%2F" stays inside one variable.
func pathVars(r *http.Request, names ...string) ([]string, error) {
	vars := mux.Vars(r)
	out := make([]string, len(names))
	for i, name := range names {
		v, err := url.PathUnescape(vars[name])
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// decodeJSON decodes the request body into v. An empty body leaves v untouched.
func decodeJSON(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
