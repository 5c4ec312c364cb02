// Package server provides HTTP routing, middleware, and the local JSON facade for the movie browser.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # API Handler
//
// [APIHandler] exposes the catalog and session operations over localhost HTTP:
//
//	GET  /health              → Service liveness and metadata provider name
//	GET  /api/search?q=       → Catalog search (empty q clears, no upstream call)
//	GET  /api/detail?i=       → Full record for one IMDb ID
//	GET  /api/dashboard       → All category rows plus the hero pick
//	GET  /api/session         → Current session state
//	POST /api/session/signup  → Register the local account slot
//	POST /api/session/login   → Exact-match credential check, mints a token
//	POST /api/session/logout  → Clears the session
//
// Search and dashboard requests run through the same [tasks.DashboardEngine] the
// TUI uses, so the facade inherits its per-row failure isolation and stale-result
// discarding.
//
// # Current Usage
//
// The serve command starts this facade on the configured host and port so other
// local tooling can script against the catalog without a terminal.
package server
