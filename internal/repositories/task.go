package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/desertthunder/tareas/internal/models"
	"github.com/desertthunder/tareas/internal/shared"
)

var _ models.Repository[models.Task] = (*TaskRepository)(nil)

// TaskRepository implements models.Repository[models.Task] on the tasks table.
type TaskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new TaskRepository with the given database connection
func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create inserts task and sets its ID to the assigned key
func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	if strings.TrimSpace(task.Title) == "" {
		return fmt.Errorf("%w: title is required", shared.ErrInvalidInput)
	}

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (titulo, completada) VALUES (?, ?)`,
		task.Title,
		normalizeFlag(task.Completed),
	)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted id: %w", err)
	}

	task.ID = models.IDFromInt(id)
	task.Completed = normalizeFlag(task.Completed)
	return nil
}

// Get retrieves a task by ID
func (r *TaskRepository) Get(ctx context.Context, id models.ID) (*models.Task, error) {
	key, err := id.Int64()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", shared.ErrTaskNotFound, id)
	}

	row := r.db.QueryRowContext(ctx, `SELECT id, titulo, completada FROM tasks WHERE id = ?`, key)

	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrTaskNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return task, nil
}

// Update overwrites the title and completion flag of an existing task
func (r *TaskRepository) Update(ctx context.Context, task *models.Task) error {
	if strings.TrimSpace(task.Title) == "" {
		return fmt.Errorf("%w: title is required", shared.ErrInvalidInput)
	}

	completed := normalizeFlag(task.Completed)
	return r.Patch(ctx, task.ID, &task.Title, &completed)
}

// Patch changes only the fields that are non-nil.
func (r *TaskRepository) Patch(ctx context.Context, id models.ID, title *string, completed *models.Flag) error {
	key, err := id.Int64()
	if err != nil {
		return fmt.Errorf("%w: %s", shared.ErrTaskNotFound, id)
	}
	if title != nil && strings.TrimSpace(*title) == "" {
		return fmt.Errorf("%w: title is required", shared.ErrInvalidInput)
	}

	sets := []string{"updated_at = CURRENT_TIMESTAMP"}
	args := []any{}

	if title != nil {
		sets = append(sets, "titulo = ?")
		args = append(args, *title)
	}
	if completed != nil {
		sets = append(sets, "completada = ?")
		args = append(args, normalizeFlag(*completed))
	}
	args = append(args, key)

	query := fmt.Sprintf("UPDATE tasks SET %s WHERE id = ?", strings.Join(sets, ", "))

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	return checkAffected(result, shared.ErrTaskNotFound, id)
}

// Delete removes a task by ID
func (r *TaskRepository) Delete(ctx context.Context, id models.ID) error {
	key, err := id.Int64()
	if err != nil {
		return fmt.Errorf("%w: %s", shared.ErrTaskNotFound, id)
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return checkAffected(result, shared.ErrTaskNotFound, id)
}

// List retrieves every task ordered by id
func (r *TaskRepository) List(ctx context.Context) ([]models.Task, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, titulo, completada FROM tasks ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return tasks, nil
}

// Count returns the number of tasks, split by completion.
func (r *TaskRepository) Count(ctx context.Context) (pending, done int, err error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(CASE WHEN completada = 0 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN completada = 1 THEN 1 ELSE 0 END), 0)
		FROM tasks
	`)
	if err := row.Scan(&pending, &done); err != nil {
		return 0, 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	return pending, done, nil
}

// scanTask scans a single row into a [models.Task]
func scanTask(row rowScanner) (*models.Task, error) {
	var (
		id        int64
		title     string
		completed int
	)

	if err := row.Scan(&id, &title, &completed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan task: %w", err)
	}

	return &models.Task{
		ID:        models.IDFromInt(id),
		Title:     title,
		Completed: models.Flag(completed),
	}, nil
}

// normalizeFlag maps anything but Done to Pending so the CHECK constraint holds.
func normalizeFlag(f models.Flag) models.Flag {
	if f.IsDone() {
		return models.Done
	}
	return models.Pending
}
