package domain

// Represents one leg committed to a circuit.
type Leg struct {
	Destination string
	DutyTime    DutyTime
}

// Represents one completed circuit: routes whose duty times sum exactly to the
// budget, with no destination repeated.
//
// Legs are in commitment order, which carries no meaning beyond that.
// Budget is the reported total; it equals DutySum for every accepted circuit.
type Circuit struct {
	Number int
	Legs   []Leg
	Budget DutyTime
}

func (c Circuit) Destinations() []string {
	out := make([]string, 0, len(c.Legs))
	for _, l := range c.Legs {
		out = append(out, l.Destination)
	}
	return out
}

// DutySum adds up the duty time of every leg.
func (c Circuit) DutySum() DutyTime {
	var sum DutyTime
	for _, l := range c.Legs {
		sum += l.DutyTime
	}
	return sum
}
