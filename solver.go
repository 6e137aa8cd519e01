package cargoalloc

import "math"

// Status is the outcome of a solve, normalized across backends.
type Status int

const (
	StatusUnknown Status = iota
	StatusOptimal
	StatusTimeLimit
	StatusInfeasible
	StatusInfOrUnbd
	StatusUnbounded
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "OPTIMAL"
	case StatusTimeLimit:
		return "TIME_LIMIT"
	case StatusInfeasible:
		return "INFEASIBLE"
	case StatusInfOrUnbd:
		return "INFEASIBLE_OR_UNBOUNDED"
	case StatusUnbounded:
		return "UNBOUNDED"
	}
	return "UNKNOWN"
}

// Solution is what a backend hands back. Values holds one entry per declared
// model column and is only valid when HasSolution is set; Objective and Bound
// include the model offset. Gap is in percent.
type Solution struct {
	Status      Status
	HasSolution bool
	Objective   float64
	Bound       float64
	Gap         float64
	Time        float64
	Values      []float64
}

// Solver is the narrow contract to the optimization engine: solve the model
// within the wall-clock budget (seconds, 0 = unlimited) and report status,
// bounds and variable values. The budget is a soft deadline honored by the
// engine itself; there is no mid-solve cancellation.
type Solver interface {
	Solve(m *Model, timeLimit float64) (*Solution, error)
}

// RelativeGap is |objective - bound| / |objective| in percent, computed the
// same way for every backend.
func RelativeGap(objective, bound float64) float64 {
	return 100.0 * math.Abs(objective-bound) / math.Max(math.Abs(objective), 1e-10)
}
