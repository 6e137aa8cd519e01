package cargoalloc

import "testing"

func testInstance() *Instance {
	return &Instance{
		Name: "test",
		Clients: []Client{
			{ID: 1, Name: "Client_R1_1", Destination: "R1"},
			{ID: 2, Name: "Client_R2_1", Destination: "R2"},
		},
		Vehicles: []Vehicle{
			{ID: 1, Type: "Truck", WeightCapacity: 1000, VolumeCapacity: 50, Cost: 100, MinLoad: 500, Destination: "R1"},
			{ID: 2, Type: "Road Train", WeightCapacity: 2000, VolumeCapacity: 90, Cost: 200, MinLoad: 1000, Destination: "R2"},
		},
		Units: []CargoUnit{
			{ID: 1, Type: "sheet", Weight: 300, Volume: 10, ClientID: 1, Destination: "R1", PenaltyRate: 1.0},
			{ID: 2, Type: "tube", Weight: 250, Volume: 8, ClientID: 1, Destination: "R1", PenaltyRate: 1.0,
				Compatibility: []string{"Truck"}},
			{ID: 3, Type: "strip", Weight: 400, Volume: 5, ClientID: 2, Destination: "R2", PenaltyRate: 2.0,
				Compatibility: []string{"Road Train"}},
		},
	}
}

func TestGammaExplicitList(t *testing.T) {
	m := NewCompatibility(testInstance())

	if !m.Gamma(2, 1) {
		t.Errorf("unit 2 must be compatible with vehicle 1 (Truck)")
	}
	if m.Gamma(2, 2) {
		t.Errorf("unit 2 must not be compatible with vehicle 2 (Road Train)")
	}
}

func TestGammaEmptyListMeansAllTypes(t *testing.T) {
	m := NewCompatibility(testInstance())

	for _, vehicleID := range []int{1, 2} {
		if !m.Gamma(1, vehicleID) {
			t.Errorf("unit 1 declares no list, must be compatible with vehicle %d", vehicleID)
		}
	}
}

func TestGammaTrimsTypeNames(t *testing.T) {
	inst := testInstance()
	inst.Units[1].Compatibility = []string{" Truck ", ""}
	m := NewCompatibility(inst)

	if !m.Gamma(2, 1) {
		t.Errorf("type names must be matched with surrounding spaces stripped")
	}
	if m.Gamma(2, 2) {
		t.Errorf("empty entries in the list must not mean 'all types'")
	}
}

func TestDelta(t *testing.T) {
	m := NewCompatibility(testInstance())

	if !m.Delta(1, 1) {
		t.Errorf("client 1 and vehicle 1 share destination R1")
	}
	if m.Delta(1, 2) {
		t.Errorf("client 1 (R1) must not match vehicle 2 (R2)")
	}
	if !m.Delta(2, 2) {
		t.Errorf("client 2 and vehicle 2 share destination R2")
	}
}
