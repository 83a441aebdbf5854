// Package services defines the [TaskService] interface for the remote task endpoint and implements it over HTTP.
//
// # Wire Protocol
//
// Every operation targets one base URL:
//   - GET base → JSON array of {id, titulo, completada}
//   - POST base with {titulo} → {mensaje}
//   - PUT base with {id, titulo} or {id, completada} → {mensaje}
//   - DELETE base?id=<id> → {mensaje}
//
// The completion flag travels as the integers 0/1.
//
// # Response Handling
//
// Write responses are trusted: whatever {mensaje} the server returns is passed back to the caller, even alongside a
// non-2xx status. Only transport failures and bodies that cannot be decoded are reported as errors:
//   - [shared.ErrAPIRequest] : the request could not be sent, or a non-2xx status came without a decodable body
//   - [shared.ErrDecode] : the body was not the expected JSON shape
//
// # Request Spacing
//
// [TaskAPI] optionally waits on a [rate.Limiter] before each request. It never retries.
package services
