package handlers

import (
	"circuit-planner-service/internal/api/dto"
	"circuit-planner-service/internal/ports"
	"net/http"
)

// HubHandler exposes the catalog's hub directory.
type HubHandler struct {
	Catalog ports.RouteCatalog
}

func (h *HubHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	hubs, err := h.Catalog.ListHubs(r.Context())
	if err != nil {
		writeServiceError(w, r, "list hubs", err)
		return
	}

	res := dto.ListHubsResponse{
		Hubs: make([]dto.HubResponse, 0, len(hubs)),
	}
	for _, hub := range hubs {
		res.Hubs = append(res.Hubs, dto.HubResponse{Code: hub.Code, Name: hub.Name})
	}

	writeJSON(w, r, http.StatusOK, res)
}
