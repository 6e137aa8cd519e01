package cargoalloc

import "strings"

// Compatibility holds the two boolean matrices derived once per instance:
// gamma (may this unit type ride on this vehicle type) and delta (does this
// vehicle serve this client's region). Never mutated after construction.
type Compatibility struct {
	gamma map[[2]int]bool
	delta map[[2]int]bool
}

func NewCompatibility(inst *Instance) *Compatibility {
	m := &Compatibility{
		gamma: make(map[[2]int]bool, len(inst.Units)*len(inst.Vehicles)),
		delta: make(map[[2]int]bool, len(inst.Clients)*len(inst.Vehicles)),
	}

	for _, u := range inst.Units {
		allowed := make(map[string]bool, len(u.Compatibility))
		for _, t := range u.Compatibility {
			t = strings.TrimSpace(t)
			if t != "" {
				allowed[t] = true
			}
		}
		for _, v := range inst.Vehicles {
			// no explicit list means every known vehicle type is allowed
			m.gamma[[2]int{u.ID, v.ID}] = len(allowed) == 0 || allowed[v.Type]
		}
	}

	for _, c := range inst.Clients {
		for _, v := range inst.Vehicles {
			m.delta[[2]int{c.ID, v.ID}] = v.Destination == c.Destination
		}
	}

	return m
}

// Gamma reports whether the unit may be carried by the vehicle.
func (m *Compatibility) Gamma(unitID, vehicleID int) bool {
	return m.gamma[[2]int{unitID, vehicleID}]
}

// Delta reports whether the vehicle's destination matches the client's region.
func (m *Compatibility) Delta(clientID, vehicleID int) bool {
	return m.delta[[2]int{clientID, vehicleID}]
}
