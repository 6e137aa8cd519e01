package cargoalloc

import (
	"fmt"
	"math"
)

// DeadFreightMode selects how an active vehicle running below its contractual
// minimum load is charged. The two formulations are not equivalent.
type DeadFreightMode int

const (
	// DeadFreightShortfall charges only the gap between the minimum load and
	// the carried load, via the continuous z variables.
	DeadFreightShortfall DeadFreightMode = iota
	// DeadFreightIdleCapacity charges all idle weight capacity of an active
	// vehicle and enforces the minimum load as a hard constraint instead.
	DeadFreightIdleCapacity
)

func (m DeadFreightMode) String() string {
	if m == DeadFreightIdleCapacity {
		return "IDLE_CAPACITY"
	}
	return "SHORTFALL"
}

// PenaltyPolicy selects how a unit's non-allocation penalty is computed.
type PenaltyPolicy int

const (
	// PenaltyWeightScaled charges weight * penalty rate (primary form).
	PenaltyWeightScaled PenaltyPolicy = iota
	// PenaltyFlatRate charges the rate alone, the rate already incorporating weight.
	PenaltyFlatRate
)

func (p PenaltyPolicy) String() string {
	if p == PenaltyFlatRate {
		return "FLAT"
	}
	return "WEIGHT"
}

type ModelConfig struct {
	DeadFreight DeadFreightMode
	Penalty     PenaltyPolicy
	// IdleRate is the per-kg rate for idle capacity (IDLE_CAPACITY mode only).
	// Zero means the default of 1.
	IdleRate float64
}

func (cfg ModelConfig) idleRate() float64 {
	if cfg.IdleRate == 0 {
		return 1.0
	}
	return cfg.IdleRate
}

// UnitPenalty is the cost of leaving the unit unallocated under the policy.
func (cfg ModelConfig) UnitPenalty(u CargoUnit) float64 {
	if cfg.Penalty == PenaltyFlatRate {
		return u.PenaltyRate
	}
	return u.Weight * u.PenaltyRate
}

type VarType int8

const (
	Continuous VarType = iota
	Binary
)

type Sense int8

const (
	LessEqual    Sense = '<'
	GreaterEqual Sense = '>'
	Equal        Sense = '='
)

// Constr is one linear constraint in sparse form: sum(Val * col(Ind)) Sense RHS.
type Constr struct {
	Ind   []int32
	Val   []float64
	Sense Sense
	RHS   float64
	Name  string
}

// Triple keys an x variable: unit carried by vehicle on the leg to client.
type Triple struct {
	Unit    int
	Vehicle int
	Client  int
}

// Leg keys a y variable: vehicle used to serve client.
type Leg struct {
	Vehicle int
	Client  int
}

// Model is the solver-agnostic MILP: per-column cost/bounds/integrality plus
// sparse linear constraints, minimized. Offset carries the constant part of
// the objective (the sum of all non-allocation penalties). The index maps are
// keyed by the instance ids used at build time; the extractor only ever looks
// ids up here, it never infers them.
type Model struct {
	Offset float64

	Cost  []float64
	Lower []float64
	Upper []float64
	Types []VarType
	Names []string

	Constrs []Constr

	X     map[Triple]int32
	Y     map[Leg]int32
	Alpha map[int]int32
	Z     map[int]int32

	Config ModelConfig
}

func (m *Model) addVar(cost, lower, upper float64, t VarType, name string) int32 {
	idx := int32(len(m.Cost))
	m.Cost = append(m.Cost, cost)
	m.Lower = append(m.Lower, lower)
	m.Upper = append(m.Upper, upper)
	m.Types = append(m.Types, t)
	m.Names = append(m.Names, name)
	return idx
}

func (m *Model) addConstr(ind []int32, val []float64, sense Sense, rhs float64, name string) {
	m.Constrs = append(m.Constrs, Constr{Ind: ind, Val: val, Sense: sense, RHS: rhs, Name: name})
}

// NumVars returns the number of declared columns.
func (m *Model) NumVars() int {
	return len(m.Cost)
}

// BuildModel emits the allocation MILP for the instance. Variables are only
// created for index combinations admitted by gamma and delta, so the
// compatibility and destination constraints are implicit. An instance without
// vehicles or clients yields an empty variable set and Offset equal to the
// total non-allocation penalty, which is a valid degenerate model.
func BuildModel(inst *Instance, compat *Compatibility, cfg ModelConfig) *Model {
	m := &Model{
		X:      make(map[Triple]int32),
		Y:      make(map[Leg]int32),
		Alpha:  make(map[int]int32),
		Z:      make(map[int]int32),
		Config: cfg,
	}
	beta := cfg.idleRate()

	// Unallocated units pay their full penalty; every x variable credits its
	// unit's penalty back, so sum(w*p*(1 - sum x)) becomes Offset + costs.
	for _, u := range inst.Units {
		m.Offset += cfg.UnitPenalty(u)
	}

	for _, u := range inst.Units {
		cost := -cfg.UnitPenalty(u)
		if cfg.DeadFreight == DeadFreightIdleCapacity {
			// each carried kg reduces the vehicle's idle capacity
			cost -= beta * u.Weight
		}
		for _, v := range inst.Vehicles {
			if !compat.Gamma(u.ID, v.ID) {
				continue
			}
			for _, c := range inst.Clients {
				if !compat.Delta(c.ID, v.ID) {
					continue
				}
				name := fmt.Sprintf("x_%d_%d_%d", u.ID, v.ID, c.ID)
				m.X[Triple{u.ID, v.ID, c.ID}] = m.addVar(cost, 0, 1, Binary, name)
			}
		}
	}

	for _, v := range inst.Vehicles {
		alphaCost := v.Cost
		if cfg.DeadFreight == DeadFreightIdleCapacity {
			alphaCost += beta * v.WeightCapacity
		}
		m.Alpha[v.ID] = m.addVar(alphaCost, 0, 1, Binary, fmt.Sprintf("alpha_%d", v.ID))
		if cfg.DeadFreight == DeadFreightShortfall {
			m.Z[v.ID] = m.addVar(1.0, 0, math.Inf(1), Continuous, fmt.Sprintf("z_%d", v.ID))
		}
		for _, c := range inst.Clients {
			if !compat.Delta(c.ID, v.ID) {
				continue
			}
			m.Y[Leg{v.ID, c.ID}] = m.addVar(0, 0, 1, Binary, fmt.Sprintf("y_%d_%d", v.ID, c.ID))
		}
	}

	for _, v := range inst.Vehicles {
		var (
			ind  []int32
			wVal []float64
			vVal []float64
		)
		for _, u := range inst.Units {
			for _, c := range inst.Clients {
				if xi, ok := m.X[Triple{u.ID, v.ID, c.ID}]; ok {
					ind = append(ind, xi)
					wVal = append(wVal, u.Weight)
					vVal = append(vVal, u.Volume)
				}
			}
		}
		// a zero-capacity placeholder vehicle is self-excluding here
		m.addConstr(ind, wVal, LessEqual, v.WeightCapacity, fmt.Sprintf("cap_weight_%d", v.ID))
		m.addConstr(ind, vVal, LessEqual, v.VolumeCapacity, fmt.Sprintf("cap_vol_%d", v.ID))

		alpha := m.Alpha[v.ID]
		if cfg.DeadFreight == DeadFreightShortfall {
			// z >= alpha*minLoad - load
			zInd := append([]int32{m.Z[v.ID], alpha}, ind...)
			zVal := append([]float64{1.0, -v.MinLoad}, wVal...)
			m.addConstr(zInd, zVal, GreaterEqual, 0, fmt.Sprintf("dead_freight_%d", v.ID))
		} else {
			// load >= alpha*minLoad, enforced hard
			lInd := append([]int32{alpha}, ind...)
			lVal := append([]float64{-v.MinLoad}, wVal...)
			m.addConstr(lInd, lVal, GreaterEqual, 0, fmt.Sprintf("min_load_%d", v.ID))
		}

		// alpha = 1 <=> some y = 1
		var legInd []int32
		var legVal []float64
		for _, c := range inst.Clients {
			yi, ok := m.Y[Leg{v.ID, c.ID}]
			if !ok {
				continue
			}
			m.addConstr([]int32{alpha, yi}, []float64{1.0, -1.0}, GreaterEqual, 0,
				fmt.Sprintf("activation_%d_%d", v.ID, c.ID))
			legInd = append(legInd, yi)
			legVal = append(legVal, -1.0)
		}
		m.addConstr(append([]int32{alpha}, legInd...), append([]float64{1.0}, legVal...),
			LessEqual, 0, fmt.Sprintf("activation_max_%d", v.ID))
	}

	for _, u := range inst.Units {
		var ind []int32
		var val []float64
		for _, v := range inst.Vehicles {
			for _, c := range inst.Clients {
				if xi, ok := m.X[Triple{u.ID, v.ID, c.ID}]; ok {
					ind = append(ind, xi)
					val = append(val, 1.0)
					m.addConstr([]int32{xi, m.Y[Leg{v.ID, c.ID}]}, []float64{1.0, -1.0},
						LessEqual, 0, fmt.Sprintf("usage_%d_%d_%d", u.ID, v.ID, c.ID))
				}
			}
		}
		if len(ind) > 0 {
			m.addConstr(ind, val, LessEqual, 1, fmt.Sprintf("unique_%d", u.ID))
		}
	}

	return m
}
