package project

import (
	"context"
	"errors"
	"fmt"

	"github.com/sitegrid/fm-manager/internal/errdef"
	"github.com/sitegrid/fm-manager/pkg/model"
	"gorm.io/gorm"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewRepository(db *gorm.DB) *repository {
	return &repository{db}
}

type repository struct {
	db *gorm.DB
}

func (r repository) create(ctx context.Context, project *model.Project) error {
	err := r.db.WithContext(ctx).Create(&project).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errdef.NewDuplicated("project %q already exists", project.Name)
	}
	return err
}

func (r repository) find(ctx context.Context, id uint) (*model.Project, error) {
	var p *model.Project
	err := r.db.
		WithContext(ctx).
		Preload("Users").
		Preload("Admins").
		Preload("Maps").
		First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("failed to find project with id %d", id)
	}
	return p, err
}

func (r repository) findAll(ctx context.Context, user *model.User) ([]model.Project, error) {
	var projects []model.Project
	err := r.db.
		WithContext(ctx).
		Preload("Maps").
		Joins("JOIN project_members ON project_members.project_id = projects.id").
		Where("project_members.user_id = ?", user.ID).
		Or("projects.id IN (?)", r.db.Table("project_admins").Select("project_id").Where("user_id = ?", user.ID)).
		Find(&projects).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find projects: %v", err)
	}
	return projects, nil
}

func (r repository) addMember(ctx context.Context, project *model.Project, user *model.User) error {
	return r.db.WithContext(ctx).Model(&project).Association("Users").Append(user)
}

func (r repository) addAdmin(ctx context.Context, project *model.Project, user *model.User) error {
	return r.db.WithContext(ctx).Model(&project).Association("Admins").Append(user)
}

func (r repository) addMap(ctx context.Context, siteMap *model.SiteMap) error {
	return r.db.WithContext(ctx).Create(&siteMap).Error
}

// findAdmins backs the admin broadcast fan-out. One query per mutation, cost
// grows with the admin count.
func (r repository) findAdmins(ctx context.Context, projectId uint) ([]*model.User, error) {
	var admins []*model.User
	err := r.db.
		WithContext(ctx).
		Joins("JOIN project_admins ON project_admins.user_id = users.id").
		Where("project_admins.project_id = ?", projectId).
		Find(&admins).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find admins of project %d: %v", projectId, err)
	}
	return admins, nil
}

func (r repository) delete(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx).Unscoped().Delete(&model.Project{}, id)
	if db.Error != nil {
		return fmt.Errorf("failed to delete project with id %d: %v", id, db.Error)
	} else if db.RowsAffected < 1 {
		return errdef.NewNotFound("failed to find project with id %d", id)
	}
	return nil
}
