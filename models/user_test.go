package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeaderboardName(t *testing.T) {
	cases := []struct {
		name string
		user User
		want string
	}{
		{"display name wins", User{Username: "somin", DisplayName: "소민"}, "소민"},
		{"falls back to username", User{Username: "somin"}, "somin"},
		{"anonymous when empty", User{}, AnonymousName},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.user.LeaderboardName())
		})
	}
}
