// package services defines interface TaskService for talking to the remote task endpoint
package services

import (
	"context"

	"github.com/desertthunder/tareas/internal/models"
)

// TaskService defines the operations offered by the task endpoint.
//
// Write operations return the server-supplied message text.
type TaskService interface {
	// List retrieves the full task collection in server order.
	List(ctx context.Context) ([]models.Task, error)

	// Create adds a task with the given title.
	Create(ctx context.Context, title string) (string, error)

	// Rename replaces the title of the task identified by id.
	Rename(ctx context.Context, id models.ID, title string) (string, error)

	// SetCompleted writes the completion flag of the task identified by id.
	SetCompleted(ctx context.Context, id models.ID, completed models.Flag) (string, error)

	// Delete removes the task identified by id.
	Delete(ctx context.Context, id models.ID) (string, error)
}
