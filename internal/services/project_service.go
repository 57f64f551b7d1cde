package services

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/alimgiray/taskscope/internal/models"
	"github.com/alimgiray/taskscope/internal/repositories"
	"github.com/google/uuid"
)

type ProjectService struct {
	projectRepo *repositories.ProjectRepository
}

func NewProjectService(projectRepo *repositories.ProjectRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
	}
}

// CreateProject creates a new project owned by project.OwnerID
func (s *ProjectService) CreateProject(project *models.Project) error {
	// Trim whitespace from name
	project.Name = strings.TrimSpace(project.Name)

	if err := project.Validate(); err != nil {
		return err
	}

	if project.OwnerID == uuid.Nil {
		return errors.New("owner ID is required")
	}

	if err := s.projectRepo.Create(project); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateProject
		}
		return err
	}

	return nil
}

// ListProjects retrieves the caller's own projects, optionally filtered by a
// case-insensitive substring match on the name.
func (s *ProjectService) ListProjects(ownerID, search string) ([]*models.Project, error) {
	if _, err := uuid.Parse(ownerID); err != nil {
		return nil, errors.New("invalid owner ID format")
	}

	return s.projectRepo.GetByOwnerID(ownerID, search)
}

// GetOwnedProject retrieves a project by ID, scoped to the caller. Projects
// that exist but belong to someone else report ErrProjectNotFound.
func (s *ProjectService) GetOwnedProject(id string, ownerID uuid.UUID) (*models.Project, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrProjectNotFound
	}

	project, err := s.projectRepo.GetByIDForOwner(id, ownerID.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	return project, nil
}

// DeleteProject removes a project owned by the caller together with all of
// its tasks.
func (s *ProjectService) DeleteProject(id string, ownerID uuid.UUID) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrProjectNotFound
	}

	if err := s.projectRepo.Delete(id, ownerID.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrProjectNotFound
		}
		return err
	}

	return nil
}
