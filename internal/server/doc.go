// Package server exposes the party planner over HTTP.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation registers method patterns ("GET /tasks/{id}") on [http.ServeMux], so path
// values come from [http.Request.PathValue] and unknown methods get a 405 from the mux itself.
//
// # Handler Interface
//
// Resource handlers implement [Handler], returning their [Route] list so each resource keeps its endpoint
// definitions next to the code serving them. [New] registers every handler along with recovery, request logging
// and, when enabled, Prometheus instrumentation.
//
// # Errors
//
// Failures are written as {"message": "..."}. Not-found and invalid-reference errors map to 404 with an
// entity-specific message ("Task not found", "Song not found in playlist"), invalid input to 400 and anything
// else to 500.
package server
