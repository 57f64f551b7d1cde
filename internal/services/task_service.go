package services

import (
	"database/sql"
	"errors"
	"time"

	"github.com/alimgiray/taskscope/internal/models"
	"github.com/alimgiray/taskscope/internal/repositories"
	"github.com/google/uuid"
)

// TaskService owns the authorization and validation path for every task
// read and write. Reads are scoped to the visibility union (owned projects
// plus assignments); mutations are scoped to the owning project's owner.
type TaskService struct {
	taskRepo    *repositories.TaskRepository
	projectRepo *repositories.ProjectRepository
	userRepo    *repositories.UserRepository
}

func NewTaskService(taskRepo *repositories.TaskRepository, projectRepo *repositories.ProjectRepository, userRepo *repositories.UserRepository) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

// CreateTaskInput carries the parsed creation request. Defaults are applied
// by the handler; empty AssigneeID means unassigned.
type CreateTaskInput struct {
	Title       string
	Description string
	ProjectID   string
	Status      string
	Priority    int
	DueDate     *time.Time
	AssigneeID  string
}

// UpdateTaskInput carries a partial update: nil pointers leave the field
// untouched. DueDateSet distinguishes "clear the due date" from "not sent".
// An AssigneeID pointing at the empty string clears the assignee.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *int
	DueDate     *time.Time
	DueDateSet  bool
	AssigneeID  *string
}

// ListTasks retrieves every task visible to the user: tasks in projects they
// own plus tasks assigned to them. projectID optionally narrows the result.
func (s *TaskService) ListTasks(userID uuid.UUID, projectID string) ([]*models.Task, error) {
	return s.taskRepo.GetVisibleByUser(userID.String(), projectID)
}

// CreateTask creates a task in a project owned by ownerID. The project and
// the assignee (when given) must resolve before anything is written, and the
// task must pass validation.
func (s *TaskService) CreateTask(ownerID uuid.UUID, in *CreateTaskInput) (*models.Task, error) {
	project, err := s.GetOwnedProject(in.ProjectID, ownerID)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		ProjectID:   project.ID,
		ProjectName: project.Name,
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
	}

	if in.AssigneeID != "" {
		assignee, err := s.resolveAssignee(in.AssigneeID)
		if err != nil {
			return nil, err
		}
		task.AssigneeID = &assignee.ID
		task.AssigneeUsername = &assignee.Username
	}

	if err := task.Validate(time.Now()); err != nil {
		return nil, err
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, err
	}

	return task, nil
}

// UpdateTask applies a partial update to a task in a project owned by
// ownerID. Reference failures abort before anything is applied, and the
// merged record is re-validated before commit, so stored state is either
// fully updated or untouched.
func (s *TaskService) UpdateTask(ownerID uuid.UUID, taskID string, in *UpdateTaskInput) (*models.Task, error) {
	task, err := s.ownedTask(taskID, ownerID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		task.Title = *in.Title
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.Status != nil {
		task.Status = *in.Status
	}
	if in.Priority != nil {
		task.Priority = *in.Priority
	}
	if in.DueDateSet {
		task.DueDate = in.DueDate
	}
	if in.AssigneeID != nil {
		if *in.AssigneeID == "" {
			task.AssigneeID = nil
			task.AssigneeUsername = nil
		} else {
			assignee, err := s.resolveAssignee(*in.AssigneeID)
			if err != nil {
				return nil, err
			}
			task.AssigneeID = &assignee.ID
			task.AssigneeUsername = &assignee.Username
		}
	}

	if err := task.Validate(time.Now()); err != nil {
		return nil, err
	}

	if err := s.taskRepo.Update(task); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	return task, nil
}

// DeleteTask removes a task in a project owned by ownerID
func (s *TaskService) DeleteTask(ownerID uuid.UUID, taskID string) error {
	if _, err := uuid.Parse(taskID); err != nil {
		return ErrTaskNotFound
	}

	if err := s.taskRepo.Delete(taskID, ownerID.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTaskNotFound
		}
		return err
	}

	return nil
}

// GetOwnedProject resolves a project reference scoped to its owner
func (s *TaskService) GetOwnedProject(projectID string, ownerID uuid.UUID) (*models.Project, error) {
	if _, err := uuid.Parse(projectID); err != nil {
		return nil, ErrProjectNotFound
	}

	project, err := s.projectRepo.GetByIDForOwner(projectID, ownerID.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	return project, nil
}

// ownedTask loads a task for mutation. Assignee visibility is not enough
// here; the caller must own the task's project.
func (s *TaskService) ownedTask(taskID string, ownerID uuid.UUID) (*models.Task, error) {
	if _, err := uuid.Parse(taskID); err != nil {
		return nil, ErrTaskNotFound
	}

	task, err := s.taskRepo.GetByIDForOwner(taskID, ownerID.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	return task, nil
}

func (s *TaskService) resolveAssignee(assigneeID string) (*models.User, error) {
	if _, err := uuid.Parse(assigneeID); err != nil {
		return nil, ErrAssigneeNotFound
	}

	assignee, err := s.userRepo.GetByID(assigneeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAssigneeNotFound
		}
		return nil, err
	}

	return assignee, nil
}
