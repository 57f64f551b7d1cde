package repositories

import (
	"database/sql"
	"time"

	"github.com/alimgiray/taskscope/internal/models"
	"github.com/google/uuid"
)

type TaskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{
		db: db,
	}
}

const taskColumns = `
	t.id, t.project_id, p.name, t.title, t.description, t.status, t.priority,
	t.due_date, t.assignee_id, u.username, t.created_at, t.updated_at
`

const taskJoins = `
	FROM tasks t
	JOIN projects p ON p.id = t.project_id
	LEFT JOIN users u ON u.id = t.assignee_id
`

// Create creates a new task
func (r *TaskRepository) Create(task *models.Task) error {
	query := `
		INSERT INTO tasks (id, project_id, title, description, status, priority, due_date, assignee_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	task.ID = uuid.New()

	_, err := r.db.Exec(query,
		task.ID.String(),
		task.ProjectID.String(),
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		task.DueDateString(),
		uuidPtrString(task.AssigneeID),
	)

	return err
}

// GetVisibleByUser retrieves every task the user may read: tasks in projects
// they own plus tasks assigned to them, deduplicated. projectID optionally
// narrows the result to one project.
func (r *TaskRepository) GetVisibleByUser(userID, projectID string) ([]*models.Task, error) {
	query := `SELECT DISTINCT` + taskColumns + taskJoins + `
		WHERE (p.owner_id = ? OR t.assignee_id = ?)
	`
	args := []interface{}{userID, userID}

	if projectID != "" {
		query += ` AND t.project_id = ?`
		args = append(args, projectID)
	}

	query += ` ORDER BY t.created_at DESC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

// GetByIDForOwner retrieves a task by ID, scoped to the owner of its project.
// Tasks merely visible through assignment come back as sql.ErrNoRows here.
func (r *TaskRepository) GetByIDForOwner(id, ownerID string) (*models.Task, error) {
	query := `SELECT` + taskColumns + taskJoins + `
		WHERE t.id = ? AND p.owner_id = ?
	`

	return scanTask(r.db.QueryRow(query, id, ownerID))
}

// Update persists every mutable field of the task
func (r *TaskRepository) Update(task *models.Task) error {
	query := `
		UPDATE tasks
		SET title = ?, description = ?, status = ?, priority = ?, due_date = ?,
		    assignee_id = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	result, err := r.db.Exec(query,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		task.DueDateString(),
		uuidPtrString(task.AssigneeID),
		task.ID.String(),
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// Delete removes a task, scoped to the owner of its project
func (r *TaskRepository) Delete(id, ownerID string) error {
	query := `
		DELETE FROM tasks
		WHERE id = ? AND project_id IN (SELECT id FROM projects WHERE owner_id = ?)
	`

	result, err := r.db.Exec(query, id, ownerID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func scanTask(row rowScanner) (*models.Task, error) {
	task := &models.Task{}
	var id, projectID string
	var dueDate, assigneeID, assigneeUsername sql.NullString

	err := row.Scan(
		&id,
		&projectID,
		&task.ProjectName,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.Priority,
		&dueDate,
		&assigneeID,
		&assigneeUsername,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if task.ID, err = uuid.Parse(id); err != nil {
		return nil, err
	}
	if task.ProjectID, err = uuid.Parse(projectID); err != nil {
		return nil, err
	}

	if dueDate.Valid {
		due, err := time.Parse(models.DateFormat, dueDate.String)
		if err != nil {
			return nil, err
		}
		task.DueDate = &due
	}

	if assigneeID.Valid {
		assignee, err := uuid.Parse(assigneeID.String)
		if err != nil {
			return nil, err
		}
		task.AssigneeID = &assignee
	}
	if assigneeUsername.Valid {
		task.AssigneeUsername = &assigneeUsername.String
	}

	return task, nil
}

func uuidPtrString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
