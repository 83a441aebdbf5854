// package models defines the data model for the task list client
package models

import "context"

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific record types.
type Repository[T any] interface {
	Create(ctx context.Context, record *T) error // Create inserts a new record and assigns its ID
	Get(ctx context.Context, id ID) (*T, error)  // Get retrieves a record by its ID
	Update(ctx context.Context, record *T) error // Update modifies an existing record
	Delete(ctx context.Context, id ID) error     // Delete removes a record by its ID
	List(ctx context.Context) ([]T, error)       // List retrieves all records in insertion order
}
