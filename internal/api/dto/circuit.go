package dto

type CircuitRequest struct {
	Hub           string `json:"hub"`
	Member        string `json:"member"`
	AircraftClass int    `json:"aircraft_class"`
	Speed         int    `json:"speed"`
	MaxRange      int    `json:"max_range"`
	Circuits      int    `json:"circuits"`
}

type LegResponse struct {
	Destination string  `json:"destination"`
	DutyHours   float64 `json:"duty_hours"`
}

type CircuitResponse struct {
	Number       int           `json:"number"`
	Destinations []string      `json:"destinations"`
	Legs         []LegResponse `json:"legs"`
	TotalHours   float64       `json:"total_hours"`
	DutySumHours float64       `json:"duty_sum_hours"`
}

type AnnotationResponse struct {
	Total         int `json:"total"`
	Excluded      int `json:"excluded"`
	Malformed     int `json:"malformed"`
	OutOfRange    int `json:"out_of_range"`
	ClassMismatch int `json:"class_mismatch"`
	Kept          int `json:"kept"`
}

type CircuitPlanResponse struct {
	Hub         HubResponse        `json:"hub"`
	Status      string             `json:"status"`
	Message     string             `json:"message,omitempty"`
	Requested   int                `json:"requested"`
	Built       int                `json:"built"`
	BudgetHours float64            `json:"budget_hours"`
	Excluded    int                `json:"excluded"`
	PoolSize    int                `json:"pool_size"`
	Steps       int                `json:"steps"`
	Truncated   bool               `json:"truncated"`
	Annotation  AnnotationResponse `json:"annotation"`
	Circuits    []CircuitResponse  `json:"circuits"`
}
