package main

import (
	"circuit-planner-service/internal/domain"
	"circuit-planner-service/internal/services"
	"fmt"
	"io"
	"strconv"
	"strings"
)

func renderPlan(w io.Writer, p *services.CircuitPlan) {
	switch p.Status() {
	case services.StatusNoValidRoutes:
		fmt.Fprintln(w, "No valid routes available for the given criteria.")
		return
	case services.StatusTruncated:
		fmt.Fprintln(w, "The search stopped at its step limit before building a circuit; raise the limit to search further.")
		return
	case services.StatusNoCircuits:
		fmt.Fprintf(w, "No circuit adds up to exactly %s hours with the available routes.\n", formatHours(p.Budget))
		return
	}

	for _, c := range p.Circuits {
		fmt.Fprintf(w, "Circuit %d Details:\n", c.Number)
		fmt.Fprintln(w, strings.Join(c.Destinations(), ", "))
		fmt.Fprintf(w, "Total Flight Time for Circuit %d: %s hours\n\n", c.Number, formatHours(c.Budget))
	}

	if p.Status() == services.StatusPartial {
		fmt.Fprintf(w, "Only %d of %d requested circuits could be built.\n", len(p.Circuits), p.Requested)
	}
	if p.Truncated {
		fmt.Fprintln(w, "The search stopped at its step limit; more circuits may exist.")
	}
}

// formatHours prints whole hours without a fraction ("168") and others with
// the shortest exact form ("7.25").
func formatHours(d domain.DutyTime) string {
	return strconv.FormatFloat(d.Hours(), 'f', -1, 64)
}
