package server

import (
	"net/http"
	"slices"
	"strings"
)

// anyMethod registers a handler for every method on a path.
const anyMethod = "*"

// BasicRouter is a simple HTTP router implementing the [Router] interface.
//
// Routes are matched on the exact request path, then on method. The middleware stack wraps
// the whole dispatch, so unknown paths (404) and unsupported methods (405) are logged and
// get CORS headers like any other response.
type BasicRouter struct {
	routes      map[string]map[string]http.Handler
	middlewares []Middleware
}

// NewBasicRouter creates a new [BasicRouter] instance.
func NewBasicRouter() *BasicRouter {
	return &BasicRouter{
		routes:      make(map[string]map[string]http.Handler),
		middlewares: []Middleware{},
	}
}

// Use adds [Middleware] to the [Router] instance's middleware stack, applied in the order it's added.
func (r *BasicRouter) Use(middleware ...Middleware) {
	r.middlewares = append(r.middlewares, middleware...)
}

// Handle registers a handler for the specified HTTP method and path.
// A GET handler also answers HEAD unless HEAD is registered separately.
func (r *BasicRouter) Handle(method, path string, handler http.Handler) {
	methods, ok := r.routes[path]
	if !ok {
		methods = make(map[string]http.Handler)
		r.routes[path] = methods
	}
	methods[strings.ToUpper(method)] = handler
}

// Handler registers a custom Handler implementation for every method on each of its
// [Handler.Routes].
func (r *BasicRouter) Handler(handler Handler) {
	for _, route := range handler.Routes() {
		r.Handle(anyMethod, route, handler)
	}
}

// Routes lists the registered routes as "METHOD /path", sorted. "*" marks a path served for
// every method.
func (r *BasicRouter) Routes() []string {
	var routes []string
	for path, methods := range r.routes {
		for m := range methods {
			routes = append(routes, m+" "+path)
		}
	}
	slices.Sort(routes)
	return routes
}

// ServeHTTP implements [http.Handler] for the entire router.
func (r *BasicRouter) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.Apply(http.HandlerFunc(r.dispatch)).ServeHTTP(w, req)
}

func (r *BasicRouter) dispatch(w http.ResponseWriter, req *http.Request) {
	methods, ok := r.routes[req.URL.Path]
	if !ok {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	if h, ok := methods[req.Method]; ok {
		h.ServeHTTP(w, req)
		return
	}
	if h, ok := methods[http.MethodGet]; ok && req.Method == http.MethodHead {
		h.ServeHTTP(w, req)
		return
	}
	if h, ok := methods[anyMethod]; ok {
		h.ServeHTTP(w, req)
		return
	}

	w.Header().Set("Allow", strings.Join(allowed(methods), ", "))
	writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
}

// allowed returns the sorted methods a path answers, HEAD included when GET is registered.
func allowed(methods map[string]http.Handler) []string {
	var out []string
	for m := range methods {
		if m != anyMethod {
			out = append(out, m)
		}
	}
	if _, ok := methods[http.MethodGet]; ok {
		if _, ok := methods[http.MethodHead]; !ok {
			out = append(out, http.MethodHead)
		}
	}
	slices.Sort(out)
	return out
}

// Apply wraps a handler with all registered middleware.
//
// Middleware is applied in reverse order (last added wraps first).
func (r *BasicRouter) Apply(handler http.Handler) http.Handler {
	wrapped := handler

	for i := len(r.middlewares) - 1; i >= 0; i-- {
		wrapped = r.middlewares[i](wrapped)
	}

	return wrapped
}
