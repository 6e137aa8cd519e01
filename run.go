package cargoalloc

import "fmt"

// SolveInstance runs one build/solve/extract cycle. Each cycle owns its model
// and solution, so callers may process instances sequentially without shared
// state. Panics from model build or extraction are turned into errors so a
// bad instance can be skipped while a batch continues.
func SolveInstance(inst *Instance, solver Solver, cfg ModelConfig, timeLimit float64) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = fmt.Errorf("instance %s: %v", inst.Name, r)
		}
	}()

	compat := NewCompatibility(inst)
	model := BuildModel(inst, compat, cfg)
	sol, err := solver.Solve(model, timeLimit)
	if err != nil {
		return nil, fmt.Errorf("instance %s: %w", inst.Name, err)
	}
	return Extract(inst, model, sol), nil
}
