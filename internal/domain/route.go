package domain

// A route record as stored in the hub catalog, before any session filtering.
// Distance is free-form text from the source feed (e.g. "1,234 km").
type RawRoute struct {
	Destination string
	Distance    string
	Categories  int
}

// Represents one candidate leg from the session hub to a destination.
// A Route is produced by annotation: DutyTime is frozen at that point and only
// RemainingUses changes afterwards, while circuits are being searched.
type Route struct {
	Destination      string
	Distance         int
	ClassRequirement int
	DutyTime         DutyTime
	RemainingUses    int
}
