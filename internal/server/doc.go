// Package server provides HTTP routing, middleware, and the artist lookup passthrough.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
// Middleware runs before the method check so CORS preflight requests are answered for every route.
//
// # Artist Lookup
//
// [ArtistsHandler] serves GET /api/artists?q=NAME by forwarding the query to Last.fm artist.getinfo
// with the server-side API key and returning the upstream JSON body unchanged. Failures map onto
// fixed JSON error bodies:
//   - 400 {"error":"Missing query parameter"} when q is absent or empty
//   - 500 {"error":"Failed to fetch from Last.fm"} when Last.fm answers with a non-2xx status
//   - 500 {"error":"Server Error","detail":"..."} when the request fails or the body is not JSON
//   - 500 {"error":"Last.fm API key not configured"} when no server key is set
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
