// Package models defines the task records exchanged with the task endpoint and the persistence interface used by the reference backend.
//
// Wire types:
//   - [Task] : a server-owned record (id, titulo, completada)
//   - [ID] : opaque server-assigned identifier, encoded as a bare number when numeric
//   - [Flag] : the two-valued completion flag, always sent as the integers 0/1
//   - [Message] : the {"mensaje": ...} body returned by every write
//
// Request bodies ([CreateRequest], [UpdateRequest]) mirror the JSON the endpoint expects for POST and PUT.
//
// The [Repository] interface defines the CRUD operations backing the local reference server.
package models
