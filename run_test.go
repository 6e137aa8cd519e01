package cargoalloc

import (
	"errors"
	"strings"
	"testing"
)

// stubSolver answers with a canned reply, or computes one from the model.
type stubSolver struct {
	reply func(m *Model, timeLimit float64) (*Solution, error)
}

func (s *stubSolver) Solve(m *Model, timeLimit float64) (*Solution, error) {
	return s.reply(m, timeLimit)
}

func TestSolveInstance(t *testing.T) {
	inst := scenarioInstance(
		CargoUnit{ID: 1, Weight: 600, Volume: 10, ClientID: 1, Destination: "R1", PenaltyRate: 1.0},
	)
	solver := &stubSolver{reply: func(m *Model, timeLimit float64) (*Solution, error) {
		if !almostEqual(timeLimit, 30, 1e-9) {
			t.Errorf("time limit not passed through, got %f", timeLimit)
		}
		values := make([]float64, m.NumVars())
		values[m.X[Triple{1, 1, 1}]] = 1
		values[m.Y[Leg{1, 1}]] = 1
		values[m.Alpha[1]] = 1
		return &Solution{
			Status:      StatusOptimal,
			HasSolution: true,
			Objective:   100,
			Bound:       100,
			Values:      values,
		}, nil
	}}

	res, err := SolveInstance(inst, solver, ModelConfig{}, 30)
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != "OPTIMAL" || res.AllocatedUnits != 1 {
		t.Errorf("got %+v", res)
	}
}

func TestSolveInstanceSolverError(t *testing.T) {
	inst := scenarioInstance()
	wantErr := errors.New("license not found")
	solver := &stubSolver{reply: func(m *Model, timeLimit float64) (*Solution, error) {
		return nil, wantErr
	}}

	_, err := SolveInstance(inst, solver, ModelConfig{}, 10)
	if err == nil || !errors.Is(err, wantErr) {
		t.Fatalf("solver error not wrapped: %v", err)
	}
	if !strings.Contains(err.Error(), "instance scenario") {
		t.Errorf("error must name the instance: %v", err)
	}
}

// A panicking backend must not take the whole batch down.
func TestSolveInstanceRecoversPanic(t *testing.T) {
	inst := scenarioInstance()
	solver := &stubSolver{reply: func(m *Model, timeLimit float64) (*Solution, error) {
		panic("index out of range")
	}}

	res, err := SolveInstance(inst, solver, ModelConfig{}, 10)
	if res != nil {
		t.Errorf("a recovered panic must not return a result")
	}
	if err == nil || !strings.Contains(err.Error(), "instance scenario") {
		t.Errorf("recovered error must name the instance: %v", err)
	}
}

func TestSolveInstanceTimeLimitNoSolution(t *testing.T) {
	inst := scenarioInstance(
		CargoUnit{ID: 1, Weight: 600, Volume: 10, ClientID: 1, Destination: "R1", PenaltyRate: 1.0},
	)
	solver := &stubSolver{reply: func(m *Model, timeLimit float64) (*Solution, error) {
		return &Solution{Status: StatusTimeLimit, Time: timeLimit}, nil
	}}

	res, err := SolveInstance(inst, solver, ModelConfig{}, 5)
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != "TIME_LIMIT" || res.HasSolution {
		t.Errorf("got %+v", res)
	}
}
