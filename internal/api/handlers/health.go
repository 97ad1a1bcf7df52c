package handlers

import (
	"circuit-planner-service/internal/ports"
	"net/http"
)

// HealthHandler reports liveness and whether the route catalog answers.
type HealthHandler struct {
	Catalog ports.RouteCatalog
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	hubs, err := h.Catalog.ListHubs(r.Context())
	if err != nil {
		writeJSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "catalog unavailable"})
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{"status": "ok", "hubs": len(hubs)})
}
