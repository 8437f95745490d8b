package handler

import (
	"testing"

	"github.com/sitegrid/fm-manager/pkg/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestGetUserFromContext(t *testing.T) {
	user := &model.User{
		ID:       1000,
		Email:    "some@thing.dk",
		Username: "some.one",
		Projects: []model.Project{
			{ID: 1, Name: "riverside"},
			{ID: 2, Name: "northgate"},
		},
		AdminProjects: []model.Project{
			{ID: 1, Name: "riverside"},
		},
	}

	c := &gin.Context{}
	c.Set("user", user)

	u, err := GetUserFromContext(c)
	assert.NoError(t, err)

	assert.Equal(t, uint(1000), u.ID)
	assert.Equal(t, "some@thing.dk", u.Email)
	assert.Len(t, u.Projects, 2)
	assert.Len(t, u.AdminProjects, 1)
	assert.Equal(t, "riverside", u.AdminProjects[0].Name)
}

func TestGetUserFromContext_NoUser(t *testing.T) {
	c := &gin.Context{}

	u, err := GetUserFromContext(c)
	assert.Nil(t, u)
	assert.EqualError(t, err, "user not found on context")
}
