package project

import (
	"context"

	"github.com/sitegrid/fm-manager/pkg/model"
)

func NewService(projectRepository *repository, userService userService) *Service {
	return &Service{
		projectRepository,
		userService,
	}
}

type userService interface {
	FindById(ctx context.Context, id uint) (*model.User, error)
}

type Service struct {
	projectRepository *repository
	userService       userService
}

func (s *Service) Create(ctx context.Context, name string) (*model.Project, error) {
	project := &model.Project{
		Name: name,
	}

	err := s.projectRepository.create(ctx, project)
	if err != nil {
		return nil, err
	}

	return project, nil
}

func (s *Service) Find(ctx context.Context, id uint) (*model.Project, error) {
	return s.projectRepository.find(ctx, id)
}

func (s *Service) FindAll(ctx context.Context, user *model.User) ([]model.Project, error) {
	return s.projectRepository.findAll(ctx, user)
}

func (s *Service) AddMember(ctx context.Context, projectId uint, userId uint) error {
	project, err := s.projectRepository.find(ctx, projectId)
	if err != nil {
		return err
	}

	u, err := s.userService.FindById(ctx, userId)
	if err != nil {
		return err
	}

	return s.projectRepository.addMember(ctx, project, u)
}

func (s *Service) AddAdmin(ctx context.Context, projectId uint, userId uint) error {
	project, err := s.projectRepository.find(ctx, projectId)
	if err != nil {
		return err
	}

	u, err := s.userService.FindById(ctx, userId)
	if err != nil {
		return err
	}

	return s.projectRepository.addAdmin(ctx, project, u)
}

// AddMap registers a site map. ImagePath is an opaque reference into the
// attachment store, already validated by the storage collaborator.
func (s *Service) AddMap(ctx context.Context, projectId uint, name, imagePath string) (*model.SiteMap, error) {
	_, err := s.projectRepository.find(ctx, projectId)
	if err != nil {
		return nil, err
	}

	siteMap := &model.SiteMap{
		ProjectID: projectId,
		Name:      name,
		ImagePath: imagePath,
	}

	err = s.projectRepository.addMap(ctx, siteMap)
	if err != nil {
		return nil, err
	}

	return siteMap, nil
}

// FindAdmins returns the users holding the elevated capability for the
// project.
func (s *Service) FindAdmins(ctx context.Context, projectId uint) ([]*model.User, error) {
	return s.projectRepository.findAdmins(ctx, projectId)
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	return s.projectRepository.delete(ctx, id)
}
