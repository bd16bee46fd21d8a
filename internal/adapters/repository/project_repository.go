package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/crewboard/core/internal/domain/entities"
	"github.com/crewboard/core/internal/ports"
)

// ProjectRepositoryImpl implements the ProjectRepository interface
type ProjectRepositoryImpl struct {
	db *sqlx.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *sqlx.DB) ports.ProjectRepository {
	return &ProjectRepositoryImpl{db: db}
}

type projectRow struct {
	ID            uuid.UUID      `db:"id"`
	OwnerID       uuid.UUID      `db:"owner_id"`
	Name          string         `db:"name"`
	Note          *string        `db:"note"`
	Collaborators pq.StringArray `db:"collaborators"`
	TaskOrder     pq.StringArray `db:"task_order"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

func (r projectRow) toEntity() (*entities.Project, error) {
	collaborators, err := arrayToUUIDs(r.Collaborators)
	if err != nil {
		return nil, err
	}
	taskOrder, err := arrayToUUIDs(r.TaskOrder)
	if err != nil {
		return nil, err
	}
	return &entities.Project{
		ID:            r.ID,
		OwnerID:       r.OwnerID,
		Name:          r.Name,
		Note:          r.Note,
		Collaborators: collaborators,
		TaskOrder:     taskOrder,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}, nil
}

const projectColumns = `id, owner_id, name, note, collaborators, task_order, created_at, updated_at`

func (r *ProjectRepositoryImpl) Create(ctx context.Context, project *entities.Project) error {
	query := `
		INSERT INTO projects (id, owner_id, name, note, collaborators, task_order)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		project.ID, project.OwnerID, project.Name, project.Note,
		uuidsToArray(project.Collaborators), uuidsToArray(project.TaskOrder),
	).Scan(&project.CreatedAt, &project.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}

	return nil
}

func (r *ProjectRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`

	var row projectRow
	err := r.db.GetContext(ctx, &row, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrProjectNotFound
		}
		return nil, fmt.Errorf("get project by id: %w", err)
	}

	return row.toEntity()
}

func (r *ProjectRepositoryImpl) Update(ctx context.Context, project *entities.Project) error {
	query := `
		UPDATE projects
		SET name = $2, note = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		project.ID, project.Name, project.Note,
	).Scan(&project.UpdatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return entities.ErrProjectNotFound
		}
		return fmt.Errorf("update project: %w", err)
	}

	return nil
}

func (r *ProjectRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	// Tasks, notes and invitations cascade through their foreign keys.
	query := `DELETE FROM projects WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.ErrProjectNotFound
	}

	return nil
}

func (r *ProjectRepositoryImpl) ListForUser(ctx context.Context, userID uuid.UUID) ([]*entities.Project, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE owner_id = $1 OR $2 = ANY(collaborators)
		ORDER BY created_at`

	var rows []projectRow
	err := r.db.SelectContext(ctx, &rows, query, userID, userID.String())
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	projects := make([]*entities.Project, 0, len(rows))
	for _, row := range rows {
		project, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}

	return projects, nil
}

func (r *ProjectRepositoryImpl) SetTaskOrder(ctx context.Context, projectID uuid.UUID, order []uuid.UUID) error {
	query := `UPDATE projects SET task_order = $2, updated_at = CURRENT_TIMESTAMP WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, projectID, uuidsToArray(order))
	if err != nil {
		return fmt.Errorf("set task order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.ErrProjectNotFound
	}

	return nil
}

func (r *ProjectRepositoryImpl) AddCollaborator(ctx context.Context, projectID, userID uuid.UUID) error {
	query := `
		UPDATE projects
		SET collaborators = array_append(collaborators, $2), updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND NOT ($2 = ANY(collaborators))`

	result, err := r.db.ExecContext(ctx, query, projectID, userID.String())
	if err != nil {
		return fmt.Errorf("add collaborator: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	// Zero rows means either an unknown project or a collaborator that
	// is already present; distinguish the two.
	if rowsAffected == 0 {
		if _, err := r.GetByID(ctx, projectID); err != nil {
			return err
		}
	}

	return nil
}
