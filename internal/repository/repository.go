package repository

import (
	"errors"
	"math"
	"slices"
	"strconv"
	"sync"

	"github.com/Dan9191/deploy-mock/internal/models"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrProjectNotFound = errors.New("project not found")
	ErrFileNotFound    = errors.New("file not found")
)

// Repository is the process-wide in-memory store of users, their projects and files.
// All returned values are copies; callers never share memory with the store.
type Repository struct {
	mu    sync.RWMutex
	users map[string]*models.User // by username

	// position of each username in insertion order; kept across overwrites
	order map[string]int
	next  int

	// id -> usernames that were assigned that id
	tokens map[string][]string
}

// NewRepository initializes an empty store
func NewRepository() *Repository {
	return &Repository{
		users:  make(map[string]*models.User),
		order:  make(map[string]int),
		tokens: make(map[string][]string),
	}
}

// CreateUser stores a new user under username, replacing any existing one.
// The id is the number of stored usernames plus one, so an overwrite does not advance it.
func (r *Repository) CreateUser(username, password string) *models.User {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := strconv.Itoa(len(r.users) + 1)
	if _, ok := r.order[username]; !ok {
		r.order[username] = r.next
		r.next++
	}

	user := &models.User{
		ID:       id,
		Username: username,
		Password: password,
		Projects: make(map[string]*models.Project),
	}
	r.users[username] = user

	if !slices.Contains(r.tokens[id], username) {
		r.tokens[id] = append(r.tokens[id], username)
	}
	return user.Clone()
}

// FindUserByUsername retrieves a user by username
func (r *Repository) FindUserByUsername(username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user.Clone(), nil
}

// FindUserByToken retrieves the user whose id equals token. If several users
// share the id, the first username in key order wins (see keyBefore).
func (r *Repository) FindUserByToken(token string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var found *models.User
	for _, username := range r.tokens[token] {
		user, ok := r.users[username]
		if !ok || user.ID != token {
			continue
		}
		if found == nil || r.keyBefore(username, found.Username) {
			found = user
		}
	}
	if found == nil {
		return nil, ErrUserNotFound
	}
	return found.Clone(), nil
}

// CreateProject creates an empty project for the user, replacing one with the same name
func (r *Repository) CreateProject(username, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[username]
	if !ok {
		return ErrUserNotFound
	}
	user.Projects[name] = models.NewProject(name)
	return nil
}

// ListProjects returns all projects of the user, keyed by name
func (r *Repository) ListProjects(username string) (map[string]*models.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	projects := make(map[string]*models.Project, len(user.Projects))
	for name, p := range user.Projects {
		projects[name] = p.Clone()
	}
	return projects, nil
}

// UploadFiles merges files into the user's project
func (r *Repository) UploadFiles(username, projectID string, files map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[username]
	if !ok {
		return ErrUserNotFound
	}
	project, ok := user.Projects[projectID]
	if !ok {
		return ErrProjectNotFound
	}
	project.Merge(files)
	return nil
}

// GetFile returns the content stored under key. An empty string is a valid content.
func (r *Repository) GetFile(username, projectID, key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[username]
	if !ok {
		return "", ErrUserNotFound
	}
	project, ok := user.Projects[projectID]
	if !ok {
		return "", ErrProjectNotFound
	}
	content, ok := project.Files[key]
	if !ok {
		return "", ErrFileNotFound
	}
	return content, nil
}

// Dump returns a copy of every stored user keyed by username
func (r *Repository) Dump() map[string]*models.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]*models.User, len(r.users))
	for username, user := range r.users {
		out[username] = user.Clone()
	}
	return out
}

// Stats counts users, projects and files currently stored
func (r *Repository) Stats() models.StoreStats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := models.StoreStats{Users: len(r.users)}
	for _, user := range r.users {
		stats.Projects += len(user.Projects)
		for _, p := range user.Projects {
			stats.Files += len(p.Files)
		}
	}
	return stats
}

// keyBefore orders usernames the way JS object keys are enumerated:
// integer-like keys first in ascending numeric order, then the rest in insertion order.
func (r *Repository) keyBefore(a, b string) bool {
	ai, aIndex := arrayIndex(a)
	bi, bIndex := arrayIndex(b)
	switch {
	case aIndex && bIndex:
		return ai < bi
	case aIndex != bIndex:
		return aIndex
	default:
		return r.order[a] < r.order[b]
	}
}

// arrayIndex reports whether s is a canonical decimal in [0, 2^32-2]
func arrayIndex(s string) (uint64, bool) {
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return 0, false
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil || n == math.MaxUint32 {
		return 0, false
	}
	return n, true
}
