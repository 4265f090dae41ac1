package users

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/pods-community/pods-cli/pkg/files"
	"github.com/pods-community/pods-cli/pkg/models"
)

// Registry manages the local user directory for a project
type Registry struct {
	mu        sync.RWMutex
	directory *models.UserDirectory
	path      string
}

// NewRegistry opens the user directory of the current project
func NewRegistry() (*Registry, error) {
	return NewRegistryAt(files.UsersPath())
}

// NewRegistryAt opens the user directory stored at path. A missing file
// yields an empty registry.
func NewRegistryAt(path string) (*Registry, error) {
	r := &Registry{
		path: path,
	}

	if err := r.Load(); err != nil {
		if os.IsNotExist(err) {
			r.directory = &models.UserDirectory{
				Users: []models.CandidateUser{},
			}
			return r, nil
		}
		return nil, fmt.Errorf("failed to load user directory: %w", err)
	}

	return r, nil
}

// Load reads the user directory from disk
func (r *Registry) Load() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path)
	if err != nil {
		return err
	}

	var directory models.UserDirectory
	if err := yaml.Unmarshal(data, &directory); err != nil {
		return fmt.Errorf("failed to parse user directory: %w", err)
	}
	if directory.Users == nil {
		directory.Users = []models.CandidateUser{}
	}

	r.directory = &directory
	return nil
}

// Save writes the user directory to disk
func (r *Registry) Save() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create user directory folder: %w", err)
	}

	data, err := yaml.Marshal(r.directory)
	if err != nil {
		return fmt.Errorf("failed to marshal user directory: %w", err)
	}

	// Write atomically
	tmpFile := r.path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write user directory: %w", err)
	}

	if err := os.Rename(tmpFile, r.path); err != nil {
		os.Remove(tmpFile)
		return fmt.Errorf("failed to save user directory: %w", err)
	}

	return nil
}

// GetUser retrieves a user by username
func (r *Registry) GetUser(username string) (models.CandidateUser, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	normalized := models.NormalizeUsername(username)
	for _, user := range r.directory.Users {
		if strings.ToLower(user.Username) == normalized {
			return user, true
		}
	}

	return models.CandidateUser{}, false
}

// AddUser adds or updates a user. Usernames are unique case-insensitively.
func (r *Registry) AddUser(user models.CandidateUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user.Username = strings.TrimPrefix(strings.TrimSpace(user.Username), "@")
	if err := models.ValidateUsername(user.Username); err != nil {
		return fmt.Errorf("invalid username: %w", err)
	}
	if err := models.ValidateUserID(user.ID); err != nil {
		return fmt.Errorf("invalid user %s: %w", user.Username, err)
	}
	if user.DisplayName == "" {
		user.DisplayName = user.Username
	}

	for i, existing := range r.directory.Users {
		if strings.EqualFold(existing.Username, user.Username) {
			r.directory.Users[i] = user
			return nil
		}
	}

	r.directory.Users = append(r.directory.Users, user)
	return nil
}

// RemoveUser removes a user by username
func (r *Registry) RemoveUser(username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	normalized := models.NormalizeUsername(username)

	kept := make([]models.CandidateUser, 0, len(r.directory.Users))
	found := false
	for _, user := range r.directory.Users {
		if strings.ToLower(user.Username) == normalized {
			found = true
			continue
		}
		kept = append(kept, user)
	}

	if !found {
		return fmt.Errorf("%w: %s", models.ErrUserNotFound, username)
	}

	r.directory.Users = kept
	return nil
}

// ListUsers returns all users in directory order
func (r *Registry) ListUsers() []models.CandidateUser {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Return a copy to prevent external modification
	users := make([]models.CandidateUser, len(r.directory.Users))
	copy(users, r.directory.Users)
	return users
}

// SearchUsers finds users whose username or display name matches query,
// case-insensitively. Prefix matches come first, then substring matches;
// within each group directory order is kept.
func (r *Registry) SearchUsers(ctx context.Context, query string) ([]models.CandidateUser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if query == "" {
		return nil, models.ErrEmptyQuery
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(query)
	var prefix, contains []models.CandidateUser

	for _, user := range r.directory.Users {
		switch {
		case matchesPrefix(user, needle):
			prefix = append(prefix, user)
		case strings.Contains(strings.ToLower(user.Username), needle),
			strings.Contains(strings.ToLower(user.DisplayName), needle):
			contains = append(contains, user)
		}
	}

	return append(prefix, contains...), nil
}

// matchesPrefix reports whether the username or any word of the display
// name starts with needle
func matchesPrefix(user models.CandidateUser, needle string) bool {
	if strings.HasPrefix(strings.ToLower(user.Username), needle) {
		return true
	}
	for _, word := range strings.Fields(strings.ToLower(user.DisplayName)) {
		if strings.HasPrefix(word, needle) {
			return true
		}
	}
	return false
}
