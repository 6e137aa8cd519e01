/* Copyright 2021, Arkadiusz Zarychta, arkadiusz.zarychta@h-brs.de */
/* Copyright 2021, Gurobi Optimization, LLC */

// Package gurobisolver runs cargoalloc models through the Gurobi bindings.
package gurobisolver

import (
	"fmt"
	"time"

	"git.solver4all.com/azaryc2s/cargoalloc"
	"git.solver4all.com/azaryc2s/gorobi/gurobi"
)

type Solver struct {
	// LogFile defaults to cargoalloc-gurobi.log.
	LogFile string
	// LogToConsole enables the solver's own console output.
	LogToConsole bool
}

func (s *Solver) Solve(m *cargoalloc.Model, timeLimit float64) (*cargoalloc.Solution, error) {
	logFile := s.LogFile
	if logFile == "" {
		logFile = "cargoalloc-gurobi.log"
	}
	env, err := gurobi.LoadEnv(logFile)
	if err != nil {
		return nil, err
	}
	defer env.Free()
	if !s.LogToConsole {
		env.SetIntParam("LogToConsole", int32(0))
	}

	model, err := env.NewModel("cargoalloc", 0, nil, nil, nil, nil, nil)
	if err != nil {
		return nil, err
	}
	defer model.Free()

	for i := 0; i < m.NumVars(); i++ {
		vtype := int8(gurobi.CONTINUOUS)
		if m.Types[i] == cargoalloc.Binary {
			vtype = gurobi.BINARY
		}
		err = model.AddVar(nil, nil, m.Cost[i], m.Lower[i], m.Upper[i], vtype, m.Names[i])
		if err != nil {
			return nil, fmt.Errorf("adding %s: %w", m.Names[i], err)
		}
	}

	err = model.SetIntAttr(gurobi.INT_ATTR_MODELSENSE, gurobi.MINIMIZE)
	if err != nil {
		return nil, err
	}

	for _, c := range m.Constrs {
		var sense int8
		switch c.Sense {
		case cargoalloc.LessEqual:
			sense = gurobi.LESS_EQUAL
		case cargoalloc.GreaterEqual:
			sense = gurobi.GREATER_EQUAL
		default:
			sense = gurobi.EQUAL
		}
		err = model.AddConstr(c.Ind, c.Val, sense, c.RHS, c.Name)
		if err != nil {
			return nil, fmt.Errorf("adding %s: %w", c.Name, err)
		}
	}

	if timeLimit > 0 {
		err = model.SetDblParam(gurobi.DBL_PAR_TIMELIMIT, timeLimit)
		if err != nil {
			return nil, err
		}
	}

	startTime := time.Now()
	err = model.Optimize()
	if err != nil {
		return nil, err
	}

	sol := &cargoalloc.Solution{Time: time.Since(startTime).Seconds()}

	optimstatus, err := model.GetIntAttr(gurobi.INT_ATTR_STATUS)
	if err != nil {
		return nil, err
	}
	switch optimstatus {
	case gurobi.OPTIMAL:
		sol.Status = cargoalloc.StatusOptimal
	case gurobi.TIME_LIMIT:
		sol.Status = cargoalloc.StatusTimeLimit
	case gurobi.INFEASIBLE:
		sol.Status = cargoalloc.StatusInfeasible
	case gurobi.INF_OR_UNBD:
		sol.Status = cargoalloc.StatusInfOrUnbd
	case gurobi.UNBOUNDED:
		sol.Status = cargoalloc.StatusUnbounded
	default:
		sol.Status = cargoalloc.StatusUnknown
	}

	solCount, err := model.GetIntAttr(gurobi.INT_ATTR_SOLCOUNT)
	if err != nil {
		return nil, err
	}
	if solCount == 0 {
		return sol, nil
	}

	objval, err := model.GetDblAttr(gurobi.DBL_ATTR_OBJVAL)
	if err != nil {
		return nil, err
	}
	bound, err := model.GetDblAttr(gurobi.DBL_ATTR_OBJBOUND)
	if err != nil {
		return nil, err
	}
	sol.HasSolution = true
	// the constant objective part is applied here, not passed to the solver
	sol.Objective = objval + m.Offset
	sol.Bound = bound + m.Offset
	sol.Gap = cargoalloc.RelativeGap(sol.Objective, sol.Bound)

	if m.NumVars() > 0 {
		values, err := model.GetDblAttrArray(gurobi.DBL_ATTR_X, 0, int32(m.NumVars()))
		if err != nil {
			return nil, err
		}
		sol.Values = values
	}
	return sol, nil
}
