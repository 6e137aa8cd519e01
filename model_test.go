package cargoalloc

import (
	"math"
	"strings"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}

/// scenarioInstance is the single-vehicle setup of the solve scenarios:
// 1000 kg / 50 m3 capacity, 500 kg minimum load, usage cost 100, region R1.
func scenarioInstance(units ...CargoUnit) *Instance {
	return &Instance{
		Name:    "scenario",
		Clients: []Client{{ID: 1, Name: "Client_R1_1", Destination: "R1"}},
		Vehicles: []Vehicle{
			{ID: 1, Type: "Truck", WeightCapacity: 1000, VolumeCapacity: 50, Cost: 100, MinLoad: 500, Destination: "R1"},
		},
		Units: units,
	}
}

func buildScenario(cfg ModelConfig, units ...CargoUnit) (*Instance, *Model) {
	inst := scenarioInstance(units...)
	return inst, BuildModel(inst, NewCompatibility(inst), cfg)
}

func TestBuildModelShortfallStructure(t *testing.T) {
	_, m := buildScenario(ModelConfig{},
		CargoUnit{ID: 1, Weight: 300, Volume: 10, ClientID: 1, Destination: "R1", PenaltyRate: 1.0},
		CargoUnit{ID: 2, Weight: 250, Volume: 8, ClientID: 1, Destination: "R1", PenaltyRate: 1.0},
	)

	if len(m.X) != 2 || len(m.Y) != 1 || len(m.Alpha) != 1 || len(m.Z) != 1 {
		t.Fatalf("got %d x, %d y, %d alpha, %d z variables", len(m.X), len(m.Y), len(m.Alpha), len(m.Z))
	}
	if m.NumVars() != 5 {
		t.Errorf("expected 5 columns, got %d", m.NumVars())
	}
	// cap_weight, cap_vol, dead_freight, activation, activation_max, 2x usage, 2x unique... unique is per unit
	want := []string{"cap_weight_1", "cap_vol_1", "dead_freight_1", "activation_1_1",
		"activation_max_1", "usage_1_1_1", "unique_1", "usage_2_1_1", "unique_2"}
	if len(m.Constrs) != len(want) {
		t.Fatalf("expected %d constraints, got %d", len(want), len(m.Constrs))
	}
	names := make(map[string]bool, len(m.Constrs))
	for _, c := range m.Constrs {
		names[c.Name] = true
	}
	for _, n := range want {
		if !names[n] {
			t.Errorf("missing constraint %s", n)
		}
	}

	// offset carries the total penalty, x columns credit it back
	if !almostEqual(m.Offset, 550, 1e-9) {
		t.Errorf("offset = %f, expected 550", m.Offset)
	}
	if xi := m.X[Triple{1, 1, 1}]; !almostEqual(m.Cost[xi], -300, 1e-9) {
		t.Errorf("x_1_1_1 cost = %f, expected -300", m.Cost[xi])
	}
	if ai := m.Alpha[1]; !almostEqual(m.Cost[ai], 100, 1e-9) {
		t.Errorf("alpha_1 cost = %f, expected the usage cost 100", m.Cost[ai])
	}
	if zi := m.Z[1]; !almostEqual(m.Cost[zi], 1, 1e-9) || m.Types[zi] != Continuous {
		t.Errorf("z_1 must be a continuous column with unit cost")
	}
}

func TestBuildModelIdleCapacity(t *testing.T) {
	_, m := buildScenario(ModelConfig{DeadFreight: DeadFreightIdleCapacity},
		CargoUnit{ID: 1, Weight: 300, Volume: 10, ClientID: 1, Destination: "R1", PenaltyRate: 1.0},
	)

	if len(m.Z) != 0 {
		t.Errorf("idle-capacity mode must not declare z variables")
	}
	// beta defaults to 1: alpha pays cost + capacity, x credits penalty + weight
	if ai := m.Alpha[1]; !almostEqual(m.Cost[ai], 100+1000, 1e-9) {
		t.Errorf("alpha_1 cost = %f, expected 1100", m.Cost[ai])
	}
	if xi := m.X[Triple{1, 1, 1}]; !almostEqual(m.Cost[xi], -300-300, 1e-9) {
		t.Errorf("x_1_1_1 cost = %f, expected -600", m.Cost[xi])
	}

	var hasMinLoad, hasDeadFreight bool
	for _, c := range m.Constrs {
		if strings.HasPrefix(c.Name, "min_load_") {
			hasMinLoad = true
			if c.Sense != GreaterEqual || c.RHS != 0 {
				t.Errorf("min_load row must be a >= 0 row")
			}
		}
		if strings.HasPrefix(c.Name, "dead_freight_") {
			hasDeadFreight = true
		}
	}
	if !hasMinLoad || hasDeadFreight {
		t.Errorf("idle-capacity mode must enforce min load hard and emit no dead_freight rows")
	}
}

func TestBuildModelPruning(t *testing.T) {
	inst := testInstance() // 2 regions, 2 vehicles, unit 3 only fits vehicle 2
	m := BuildModel(inst, NewCompatibility(inst), ModelConfig{})

	// delta prunes cross-region legs entirely
	if _, ok := m.Y[Leg{1, 2}]; ok {
		t.Errorf("vehicle 1 (R1) must have no leg to client 2 (R2)")
	}
	// gamma prunes incompatible pairs
	if _, ok := m.X[Triple{2, 2, 2}]; ok {
		t.Errorf("unit 2 (Truck only) must have no variable on vehicle 2")
	}
	if _, ok := m.X[Triple{3, 2, 2}]; !ok {
		t.Errorf("unit 3 must have a variable on vehicle 2 serving client 2")
	}
	if _, ok := m.X[Triple{3, 1, 1}]; ok {
		t.Errorf("unit 3 is destined to R2, no variable may exist on the R1 vehicle")
	}
}

func TestBuildModelZeroCapacityVehicle(t *testing.T) {
	inst := scenarioInstance(
		CargoUnit{ID: 1, Weight: 300, Volume: 10, ClientID: 1, Destination: "R1", PenaltyRate: 1.0},
	)
	inst.Vehicles = append(inst.Vehicles, Vehicle{ID: 99, Type: "No resources", Destination: "R1"})
	m := BuildModel(inst, NewCompatibility(inst), ModelConfig{})

	// not special-cased: the placeholder gets variables and zero-RHS capacity rows
	if _, ok := m.X[Triple{1, 99, 1}]; !ok {
		t.Fatalf("the placeholder vehicle must still be a legal choice")
	}
	for _, c := range m.Constrs {
		if c.Name == "cap_weight_99" && c.RHS != 0 {
			t.Errorf("cap_weight_99 RHS = %f, expected 0", c.RHS)
		}
	}
}

func TestBuildModelDegenerate(t *testing.T) {
	inst := &Instance{
		Name: "degenerate",
		Units: []CargoUnit{
			{ID: 1, Weight: 100, Volume: 1, PenaltyRate: 2.0},
			{ID: 2, Weight: 50, Volume: 1, PenaltyRate: 1.0},
		},
	}
	m := BuildModel(inst, NewCompatibility(inst), ModelConfig{})

	if m.NumVars() != 0 || len(m.Constrs) != 0 {
		t.Errorf("no vehicles and clients must yield an empty model")
	}
	if !almostEqual(m.Offset, 250, 1e-9) {
		t.Errorf("offset = %f, expected the total penalty 250", m.Offset)
	}
}

func TestBuildModelFlatPenaltyPolicy(t *testing.T) {
	_, m := buildScenario(ModelConfig{Penalty: PenaltyFlatRate},
		CargoUnit{ID: 1, Weight: 300, Volume: 10, ClientID: 1, Destination: "R1", PenaltyRate: 7.5},
	)

	if !almostEqual(m.Offset, 7.5, 1e-9) {
		t.Errorf("offset = %f, expected the flat rate 7.5", m.Offset)
	}
	if xi := m.X[Triple{1, 1, 1}]; !almostEqual(m.Cost[xi], -7.5, 1e-9) {
		t.Errorf("x cost = %f, expected -7.5", m.Cost[xi])
	}
}

func TestBuildModelCapacityRows(t *testing.T) {
	_, m := buildScenario(ModelConfig{},
		CargoUnit{ID: 1, Weight: 300, Volume: 10, ClientID: 1, Destination: "R1", PenaltyRate: 1.0},
		CargoUnit{ID: 2, Weight: 250, Volume: 8, ClientID: 1, Destination: "R1", PenaltyRate: 1.0},
	)

	for _, c := range m.Constrs {
		switch c.Name {
		case "cap_weight_1":
			if c.Sense != LessEqual || !almostEqual(c.RHS, 1000, 1e-9) {
				t.Errorf("cap_weight_1 must be <= 1000")
			}
			sum := 0.0
			for _, v := range c.Val {
				sum += v
			}
			if !almostEqual(sum, 550, 1e-9) {
				t.Errorf("cap_weight_1 coefficients sum to %f, expected 550", sum)
			}
		case "cap_vol_1":
			if c.Sense != LessEqual || !almostEqual(c.RHS, 50, 1e-9) {
				t.Errorf("cap_vol_1 must be <= 50")
			}
		case "dead_freight_1":
			// z - minLoad*alpha + load >= 0
			if c.Sense != GreaterEqual || c.RHS != 0 {
				t.Errorf("dead_freight_1 must be a >= 0 row")
			}
			if !almostEqual(c.Val[1], -500, 1e-9) {
				t.Errorf("dead_freight_1 alpha coefficient = %f, expected -500", c.Val[1])
			}
		}
	}
}
