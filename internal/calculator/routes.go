package calculator

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts one GET endpoint per operation at the router root,
// e.g. GET /add and GET /square_root.
func RegisterRoutes(r chi.Router, h *Handler) {
	for _, op := range Operations() {
		r.Get("/"+op.Name(), h.Serve(op))
	}
}
