// Package server provides the reference task backend: HTTP routing, middleware, the task handler and metrics.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Task Endpoint
//
// [TaskHandler] serves the whole protocol on the root path, backed by a [TaskStore]
// (repositories.TaskRepository in practice):
//   - GET / → JSON array of {id, titulo, completada} in id order
//   - POST / {titulo} → 201 {"mensaje":"Tarea creada"}, or 400 when the title is blank
//   - PUT / {id, titulo} or {id, completada} → {"mensaje":"Tarea actualizada"}, 404 for unknown ids
//   - DELETE /?id= → {"mensaje":"Tarea eliminada"}, 404 for unknown ids
//
// # Operations
//
// [New] wires the handler with request ids, request logging, prometheus metrics and permissive CORS. "/health"
// reports task totals and "/metrics" exposes a private prometheus registry. [Serve] runs until its context is
// cancelled and then shuts down gracefully.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
