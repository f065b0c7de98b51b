package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

// routeMethods are the methods any API route can be registered with.
var routeMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
}

func (h *handler) notFound() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.log.Debug("no route", "method", r.Method, "path", r.URL.Path)
		writeError(w, http.StatusNotFound, codeNotFound, fmt.Sprintf("no route for %s", r.URL.Path))
	})
}

// methodNotAllowed answers 405 and lists in Allow the methods router does
// serve for the same path.
func (h *handler) methodNotAllowed(router *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed := allowedMethods(router, r)
		if len(allowed) > 0 {
			w.Header().Set("Allow", strings.Join(allowed, ", "))
		}
		h.log.Debug("method not allowed", "method", r.Method, "path", r.URL.Path, "allow", allowed)
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed,
			fmt.Sprintf("method %s not allowed on %s", r.Method, r.URL.Path))
	})
}

func allowedMethods(router *mux.Router, r *http.Request) []string {
	var out []string
	for _, method := range routeMethods {
		alt := r.Clone(r.Context())
		alt.Method = method
		var match mux.RouteMatch
		if router.Match(alt, &match) && match.MatchErr == nil {
			out = append(out, method)
		}
	}
	return out
}
