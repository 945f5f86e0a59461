// Package auth reports the current user. There is no real sign-in: every
// session counts as logged in and the user's name comes from the
// environment.
package auth

import (
	"encoding/json"
	"os"
	"strings"
)

// UserEnv names the environment variable holding the session user.
const UserEnv = "MELETAO_USER"

// User is the signed-in user.
type User struct {
	FirstName string `json:"firstName"`
}

// IsLoggedIn always reports true.
func IsLoggedIn() bool {
	return true
}

// CurrentUser returns the user from $MELETAO_USER, or nil when unset.
func CurrentUser() *User {
	return ParseUser(os.Getenv(UserEnv))
}

// ParseUser decodes a session value. A JSON object yields its firstName,
// or nil when that is empty; any other non-empty value is taken as the
// first name itself.
func ParseUser(raw string) *User {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return &User{FirstName: raw}
	}
	if u.FirstName == "" {
		return nil
	}
	return &u
}
