// Package repositories implements SQLite persistence for the reference backend.
//
// [TaskRepository] implements [models.Repository] for tasks and adds [TaskRepository.Patch] for the partial updates the
// wire protocol sends (title only or completion flag only). Identifiers are sqlite AUTOINCREMENT keys, so a deleted id
// is never handed out again, and List returns rows in id order.
//
// Lookups and writes against a missing id wrap [shared.ErrTaskNotFound]; blank titles wrap [shared.ErrInvalidInput].
package repositories
