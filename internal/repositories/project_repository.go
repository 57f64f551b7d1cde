package repositories

import (
	"database/sql"

	"github.com/alimgiray/taskscope/internal/models"
	"github.com/google/uuid"
)

type ProjectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{
		db: db,
	}
}

// Create creates a new project. A (name, owner_id) UNIQUE violation comes
// back as the driver's constraint error.
func (r *ProjectRepository) Create(project *models.Project) error {
	query := `
		INSERT INTO projects (id, name, description, owner_id)
		VALUES (?, ?, ?, ?)
	`

	project.ID = uuid.New()

	_, err := r.db.Exec(query,
		project.ID.String(),
		project.Name,
		project.Description,
		project.OwnerID.String(),
	)

	return err
}

// GetByIDForOwner retrieves a project by ID, scoped to its owner. Projects
// outside the owner's scope come back as sql.ErrNoRows.
func (r *ProjectRepository) GetByIDForOwner(id, ownerID string) (*models.Project, error) {
	query := `
		SELECT id, name, description, owner_id, created_at, updated_at
		FROM projects
		WHERE id = ? AND owner_id = ?
	`

	return r.scanProject(r.db.QueryRow(query, id, ownerID))
}

// GetByOwnerID retrieves all projects for an owner, optionally filtered by a
// case-insensitive substring match on the name.
func (r *ProjectRepository) GetByOwnerID(ownerID, search string) ([]*models.Project, error) {
	query := `
		SELECT id, name, description, owner_id, created_at, updated_at
		FROM projects
		WHERE owner_id = ?
	`
	args := []interface{}{ownerID}

	if search != "" {
		query += ` AND instr(lower(name), lower(?)) > 0`
		args = append(args, search)
	}

	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		project, err := r.scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}

	return projects, rows.Err()
}

// Delete removes a project owned by ownerID. Its tasks go with it through
// the ON DELETE CASCADE on tasks.project_id.
func (r *ProjectRepository) Delete(id, ownerID string) error {
	query := `DELETE FROM projects WHERE id = ? AND owner_id = ?`

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

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *ProjectRepository) scanProject(row rowScanner) (*models.Project, error) {
	project := &models.Project{}
	var id, ownerID string

	err := row.Scan(
		&id,
		&project.Name,
		&project.Description,
		&ownerID,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if project.ID, err = uuid.Parse(id); err != nil {
		return nil, err
	}
	if project.OwnerID, err = uuid.Parse(ownerID); err != nil {
		return nil, err
	}

	return project, nil
}
