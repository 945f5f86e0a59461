package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseUser(t *testing.T) {
	tests := []struct {
		raw  string
		want *User
	}{
		{"", nil},
		{"   ", nil},
		{`{"firstName":"Ana"}`, &User{FirstName: "Ana"}},
		{`{"firstName":""}`, nil},
		{`{"lastName":"Lee"}`, nil},
		{"Ana", &User{FirstName: "Ana"}},
		{"{not json", &User{FirstName: "{not json"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseUser(tt.raw), "raw %q", tt.raw)
	}
}

func TestCurrentUser(t *testing.T) {
	t.Setenv(UserEnv, "")
	assert.Nil(t, CurrentUser())

	t.Setenv(UserEnv, `{"firstName":"Sam"}`)
	assert.Equal(t, &User{FirstName: "Sam"}, CurrentUser())
}

func TestIsLoggedIn(t *testing.T) {
	assert.True(t, IsLoggedIn())
}
