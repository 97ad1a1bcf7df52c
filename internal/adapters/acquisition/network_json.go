package acquisition

import (
	"bytes"
	"circuit-planner-service/internal/domain"
	"encoding/json"
	"fmt"
)

type networkRoute struct {
	AirportTwo struct {
		IATA string `json:"iata"`
	} `json:"airportTwo"`
}

// ParseNetworkJSON reads the network map payload of a company page, a JSON
// array of routes, and returns the set of arrival airports it already serves.
// Blank input yields an empty set.
func ParseNetworkJSON(data []byte) (domain.DestinationSet, error) {
	set := domain.NewDestinationSet()
	if len(bytes.TrimSpace(data)) == 0 {
		return set, nil
	}

	var routes []networkRoute
	if err := json.Unmarshal(data, &routes); err != nil {
		return nil, fmt.Errorf("parse network json: %w", err)
	}

	for _, r := range routes {
		set.Add(r.AirportTwo.IATA)
	}
	return set, nil
}
