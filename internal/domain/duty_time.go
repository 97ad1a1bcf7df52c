package domain

import "fmt"

// DutyTime is an amount of aircraft time counted in quarter hours.
//
// Duty times are rounded up to the quarter hour when computed, so an integer
// count of quarters represents every value exactly and budget sums never drift.
type DutyTime int

const (
	QuartersPerHour = 4

	// TurnaroundAllowance is the fixed ground time added to every leg.
	TurnaroundAllowance DutyTime = 2 * QuartersPerHour

	// WeeklyBudget is the duty capacity of one circuit: a week in hours.
	WeeklyBudget DutyTime = 168 * QuartersPerHour
)

// Hours converts a whole number of hours to a DutyTime.
func Hours(h int) DutyTime { return DutyTime(h * QuartersPerHour) }

// Return the duty time as fractional hours.
func (d DutyTime) Hours() float64 { return float64(d) / QuartersPerHour }

func (d DutyTime) String() string { return fmt.Sprintf("%.2fh", d.Hours()) }

// ComputeDutyTime returns the round-trip flight time for a leg of the given
// distance at the given speed, rounded up to the next quarter hour, plus the
// turnaround allowance.
//
// ceil((2*distance/speed)*4) is evaluated as ceil(8*distance/speed) in integer
// arithmetic. speed must be positive and distance non-negative.
func ComputeDutyTime(distance, speed int) DutyTime {
	num := 2 * QuartersPerHour * int64(distance)
	quarters := (num + int64(speed) - 1) / int64(speed)
	return DutyTime(quarters) + TurnaroundAllowance
}
