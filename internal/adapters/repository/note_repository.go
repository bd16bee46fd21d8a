package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/crewboard/core/internal/domain/entities"
	"github.com/crewboard/core/internal/ports"
)

// NoteRepositoryImpl implements the NoteRepository interface
type NoteRepositoryImpl struct {
	db *sqlx.DB
}

// NewNoteRepository creates a new note repository
func NewNoteRepository(db *sqlx.DB) ports.NoteRepository {
	return &NoteRepositoryImpl{db: db}
}

func (r *NoteRepositoryImpl) Create(ctx context.Context, note *entities.Note) error {
	query := `
		INSERT INTO notes (id, task_id, content)
		VALUES ($1, $2, $3)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		note.ID, note.TaskID, note.Content,
	).Scan(&note.CreatedAt)

	if err != nil {
		return fmt.Errorf("create note: %w", err)
	}

	return nil
}

func (r *NoteRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Note, error) {
	query := `SELECT id, task_id, content, created_at FROM notes WHERE id = $1`

	var note entities.Note
	err := r.db.GetContext(ctx, &note, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrNoteNotFound
		}
		return nil, fmt.Errorf("get note by id: %w", err)
	}

	return &note, nil
}

func (r *NoteRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM notes WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.ErrNoteNotFound
	}

	return nil
}

func (r *NoteRepositoryImpl) ListForTask(ctx context.Context, taskID uuid.UUID) ([]*entities.Note, error) {
	query := `
		SELECT id, task_id, content, created_at
		FROM notes
		WHERE task_id = $1
		ORDER BY created_at`

	var notes []*entities.Note
	err := r.db.SelectContext(ctx, &notes, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	return notes, nil
}
