// Package controller contains HTTP middlewares and helper handlers used by the API server.
//
// Provided middlewares:
//   - WithCORS: Allows any origin and answers OPTIONS preflight with 204.
//   - WithLogger: Attaches a request-scoped logger and request ID to the context and logs access info.
//   - WithBodyLimit: Caps request body size.
//
// Provided helpers:
//   - PprofMux: Returns a ServeMux exposing net/http/pprof handlers.
//   - WriteJSON: Encodes a JSON response with a status code.
package controller
