package handlers

import (
	"circuit-planner-service/internal/api/dto"
	"circuit-planner-service/internal/platform/metrics"
	"circuit-planner-service/internal/ports"
	"circuit-planner-service/internal/services"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type CircuitHandler struct {
	Catalog    ports.RouteCatalog
	Exclusions ports.ExclusionSource
	Search     services.SearchOptions
	Metrics    *metrics.Recorder
}

// Plan runs one planning session for the requested hub and aircraft profile.
// Fewer circuits than requested is a successful response; Status tells why.
func (h *CircuitHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.CircuitRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	count := req.Circuits
	if count == 0 {
		count = 1
	}

	svcReq := services.PlanCircuitsRequest{
		Hub:       strings.TrimSpace(req.Hub),
		Member:    strings.TrimSpace(req.Member),
		ClassTier: req.AircraftClass,
		Speed:     req.Speed,
		MaxRange:  req.MaxRange,
		Count:     count,
		Search:    h.Search,
	}

	start := time.Now()
	plan, err := services.PlanCircuits(r.Context(), svcReq, h.Catalog, h.Exclusions)
	if err != nil {
		h.Metrics.ObservePlanError()
		writeServiceError(w, r, "plan circuits", err)
		return
	}
	h.Metrics.ObservePlan(string(plan.Status()), len(plan.Circuits), plan.Steps, time.Since(start))

	writeJSON(w, r, http.StatusOK, toPlanResponse(plan))
}

func toPlanResponse(p *services.CircuitPlan) dto.CircuitPlanResponse {
	res := dto.CircuitPlanResponse{
		Hub:         dto.HubResponse{Code: p.Hub.Code, Name: p.Hub.Name},
		Status:      string(p.Status()),
		Message:     planMessage(p),
		Requested:   p.Requested,
		Built:       len(p.Circuits),
		BudgetHours: p.Budget.Hours(),
		Excluded:    p.Excluded,
		PoolSize:    p.PoolSize,
		Steps:       p.Steps,
		Truncated:   p.Truncated,
		Annotation: dto.AnnotationResponse{
			Total:         p.Annotation.Total,
			Excluded:      p.Annotation.Excluded,
			Malformed:     p.Annotation.Malformed,
			OutOfRange:    p.Annotation.OutOfRange,
			ClassMismatch: p.Annotation.ClassMismatch,
			Kept:          p.Annotation.Kept,
		},
		Circuits: make([]dto.CircuitResponse, 0, len(p.Circuits)),
	}

	for _, c := range p.Circuits {
		legs := make([]dto.LegResponse, 0, len(c.Legs))
		for _, l := range c.Legs {
			legs = append(legs, dto.LegResponse{
				Destination: l.Destination,
				DutyHours:   l.DutyTime.Hours(),
			})
		}

		res.Circuits = append(res.Circuits, dto.CircuitResponse{
			Number:       c.Number,
			Destinations: c.Destinations(),
			Legs:         legs,
			TotalHours:   c.Budget.Hours(),
			DutySumHours: c.DutySum().Hours(),
		})
	}

	return res
}

func planMessage(p *services.CircuitPlan) string {
	switch p.Status() {
	case services.StatusNoValidRoutes:
		return "no valid routes available for the given criteria"
	case services.StatusTruncated:
		return "the search stopped at its step limit before building a circuit"
	case services.StatusNoCircuits:
		return "no circuit fills the duty budget exactly"
	case services.StatusPartial:
		if p.Truncated {
			return fmt.Sprintf("only %d of %d requested circuits were built before the search stopped at its step limit", len(p.Circuits), p.Requested)
		}
		return fmt.Sprintf("only %d of %d requested circuits could be built", len(p.Circuits), p.Requested)
	default:
		return ""
	}
}
