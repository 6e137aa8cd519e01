// Package highssolver runs cargoalloc models through the open-source HiGHS
// solver, as an alternative to the Gurobi backend.
package highssolver

import (
	"fmt"
	"math"
	"time"

	"git.solver4all.com/azaryc2s/cargoalloc"
	"github.com/bartolsthoorn/gohighs/highs"
)

type Solver struct {
	// Output enables the solver's own console log.
	Output bool
	// Threads caps the solver's worker pool, 0 leaves the default.
	Threads int
}

func (s *Solver) Solve(m *cargoalloc.Model, timeLimit float64) (*cargoalloc.Solution, error) {
	if m.NumVars() == 0 {
		// degenerate model: the objective is just the constant offset
		return &cargoalloc.Solution{
			Status:      cargoalloc.StatusOptimal,
			HasSolution: true,
			Objective:   m.Offset,
			Bound:       m.Offset,
		}, nil
	}

	solver, err := highs.NewSolver()
	if err != nil {
		return nil, err
	}
	defer solver.Close()

	if err := solver.SetBoolOption("output_flag", s.Output); err != nil {
		return nil, err
	}
	if timeLimit > 0 {
		if err := solver.SetFloatOption("time_limit", timeLimit); err != nil {
			return nil, err
		}
	}
	if s.Threads > 0 {
		if err := solver.SetIntOption("threads", s.Threads); err != nil {
			return nil, err
		}
	}

	if err := solver.AddVars(m.Lower, m.Upper); err != nil {
		return nil, err
	}
	if err := solver.SetColCosts(m.Cost); err != nil {
		return nil, err
	}
	varTypes := make([]highs.VariableType, m.NumVars())
	for i, t := range m.Types {
		if t == cargoalloc.Binary {
			varTypes[i] = highs.Integer
		} else {
			varTypes[i] = highs.Continuous
		}
	}
	if err := solver.SetIntegrality(varTypes); err != nil {
		return nil, err
	}
	if err := solver.SetObjectiveOffset(m.Offset); err != nil {
		return nil, err
	}
	if err := solver.SetMaximize(false); err != nil {
		return nil, err
	}

	for _, c := range m.Constrs {
		lower, upper := math.Inf(-1), math.Inf(1)
		switch c.Sense {
		case cargoalloc.LessEqual:
			upper = c.RHS
		case cargoalloc.GreaterEqual:
			lower = c.RHS
		default:
			lower, upper = c.RHS, c.RHS
		}
		ind := make([]int, len(c.Ind))
		for i, v := range c.Ind {
			ind[i] = int(v)
		}
		if err := solver.AddRow(lower, upper, ind, c.Val); err != nil {
			return nil, fmt.Errorf("adding %s: %w", c.Name, err)
		}
	}

	startTime := time.Now()
	hsol, err := solver.Run()
	if err != nil {
		return nil, err
	}

	sol := &cargoalloc.Solution{Time: time.Since(startTime).Seconds()}
	switch hsol.Status {
	case highs.ModelStatusOptimal:
		sol.Status = cargoalloc.StatusOptimal
	case highs.ModelStatusTimeLimit:
		sol.Status = cargoalloc.StatusTimeLimit
	case highs.ModelStatusInfeasible:
		sol.Status = cargoalloc.StatusInfeasible
	case highs.ModelStatusUnboundedOrInfeasible:
		sol.Status = cargoalloc.StatusInfOrUnbd
	case highs.ModelStatusUnbounded:
		sol.Status = cargoalloc.StatusUnbounded
	default:
		sol.Status = cargoalloc.StatusUnknown
	}

	if !hsol.Status.HasSolution() || len(hsol.ColValues) == 0 {
		return sol, nil
	}
	sol.HasSolution = true
	sol.Objective = hsol.Objective
	sol.Bound = hsol.Objective
	if bound, err := solver.GetFloatInfo("mip_dual_bound"); err == nil {
		sol.Bound = bound
	}
	sol.Gap = cargoalloc.RelativeGap(sol.Objective, sol.Bound)
	sol.Values = hsol.ColValues
	return sol, nil
}
