package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_IsMemberOf(t *testing.T) {
	user := &User{
		Projects: []Project{{ID: 1}},
	}

	assert.True(t, user.IsMemberOf(1))
	assert.False(t, user.IsMemberOf(2))
}

func TestUser_IsAdminOf(t *testing.T) {
	user := &User{
		Projects:      []Project{{ID: 1}},
		AdminProjects: []Project{{ID: 2}},
	}

	assert.False(t, user.IsAdminOf(1))
	assert.True(t, user.IsAdminOf(2))
}

func TestUser_AdminIsAlsoMember(t *testing.T) {
	user := &User{
		AdminProjects: []Project{{ID: 3}},
	}

	assert.True(t, user.IsMemberOf(3))
}
