package models

import (
	"errors"
	"strings"
	"unicode"
)

// User-related errors
var (
	ErrEmptyUsername   = errors.New("username cannot be empty")
	ErrUsernameTooLong = errors.New("username cannot exceed 30 characters")
	ErrInvalidUsername = errors.New("username may only contain letters, digits and underscores")
	ErrInvalidUserID   = errors.New("user id must be numeric")
	ErrUserNotFound    = errors.New("user not found")
	ErrEmptyQuery      = errors.New("search query cannot be empty")
)

// MaxUsernameLength bounds usernames accepted into the directory
const MaxUsernameLength = 30

// CandidateUser is the read-only projection of a community member returned
// by a user lookup. The editor keeps transient copies of these while a
// suggestion list is open.
type CandidateUser struct {
	ID          string `yaml:"id" json:"id"`
	Username    string `yaml:"username" json:"username"`
	DisplayName string `yaml:"display_name" json:"display_name"`
	AvatarURL   string `yaml:"avatar_url,omitempty" json:"avatar_url,omitempty"`
}

// Label returns the text shown for the user in a suggestion row
func (u CandidateUser) Label() string {
	if u.DisplayName == "" || u.DisplayName == u.Username {
		return "@" + u.Username
	}
	return u.DisplayName + " @" + u.Username
}

// UserDirectory holds every member known to the local client
type UserDirectory struct {
	Users []CandidateUser `yaml:"users"`
}

// NormalizeUsername trims whitespace and a leading @ and lowercases the name
func NormalizeUsername(name string) string {
	name = strings.TrimSpace(name)
	name = strings.TrimPrefix(name, "@")
	return strings.ToLower(name)
}

// ValidateUsername checks that a username can round-trip through the plain
// @word mention form.
func ValidateUsername(name string) error {
	if name == "" {
		return ErrEmptyUsername
	}

	if len(name) > MaxUsernameLength {
		return ErrUsernameTooLong
	}

	for _, r := range name {
		if !(r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return ErrInvalidUsername
		}
	}

	return nil
}

// ValidateUserID checks that an id can be carried by the rich @[Name](id) form
func ValidateUserID(id string) error {
	if id == "" {
		return ErrInvalidUserID
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return ErrInvalidUserID
		}
	}
	return nil
}
