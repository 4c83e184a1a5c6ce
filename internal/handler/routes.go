package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if _, err := h.PostService.ListPosts(r.Context()); err != nil {
		h.Log.Warn("health check failed")
		WriteError(w, "store unavailable", http.StatusServiceUnavailable)
		return
	}

	WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// Router registers every route. protect wraps the routes that need a bearer token.
func (h *Handlers) Router(protect func(http.Handler) http.Handler) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", h.HealthHandler).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/register", h.Register).Methods(http.MethodPost)
	api.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	api.HandleFunc("/posts", h.GetPosts).Methods(http.MethodGet)
	api.HandleFunc("/posts/{id:[0-9]+}", h.GetPost).Methods(http.MethodGet)

	api.Handle("/users/me", protect(http.HandlerFunc(h.GetCurrentUser))).Methods(http.MethodGet)
	api.Handle("/posts", protect(http.HandlerFunc(h.CreatePost))).Methods(http.MethodPost)
	api.Handle("/posts/{id:[0-9]+}", protect(http.HandlerFunc(h.UpdatePost))).Methods(http.MethodPut)
	api.Handle("/posts/{id:[0-9]+}", protect(http.HandlerFunc(h.DeletePost))).Methods(http.MethodDelete)

	for _, router := range []*mux.Router{r, api} {
		router.NotFoundHandler = http.HandlerFunc(notFound)
		router.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
	}

	return r
}

func notFound(w http.ResponseWriter, r *http.Request) {
	WriteError(w, "Not found", http.StatusNotFound)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
}
