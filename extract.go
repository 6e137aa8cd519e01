package cargoalloc

import (
	"fmt"
	"math"
	"sort"
)

const (
	// binThreshold absorbs solver floating-point slack when reading binaries.
	binThreshold = 0.9
	// binLower: anything in (binLower, binThreshold) is a consistency warning.
	binLower = 0.1
	// costTolerance bounds the allowed mismatch between the recomputed cost
	// decomposition and the solver's reported objective.
	costTolerance = 1e-4
)

// Extract turns a raw Solution back into operational metrics. It only looks
// ids up in the model's index maps and never mutates instance or solution.
// Solves that produced no variable values yield a zeroed Result with the
// status propagated.
func Extract(inst *Instance, m *Model, sol *Solution) *Result {
	res := &Result{
		Status:           sol.Status.String(),
		Time:             fmt.Sprintf("%.3fs", sol.Time),
		InactiveVehicles: len(inst.Vehicles),
	}
	if !sol.HasSolution {
		return res
	}

	res.HasSolution = true
	res.Objective = sol.Objective
	res.Bound = sol.Bound
	res.Gap = sol.Gap

	val := func(idx int32) float64 {
		if int(idx) < len(sol.Values) {
			return sol.Values[idx]
		}
		return 0
	}
	bin := func(idx int32, name string) bool {
		v := val(idx)
		if v > binLower && v < binThreshold {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("fractional binary %s = %f", name, v))
		}
		return v > binThreshold
	}

	// admissible legs and chosen legs per entity, from the build-time keys
	hasLeg := make(map[int]bool, len(inst.Units))
	carried := make(map[int][]int)
	allocated := make(map[int]bool, len(inst.Units))
	for t, xi := range m.X {
		hasLeg[t.Unit] = true
		if bin(xi, m.Names[xi]) {
			carried[t.Vehicle] = append(carried[t.Vehicle], t.Unit)
			allocated[t.Unit] = true
		}
	}

	units := make(map[int]CargoUnit, len(inst.Units))
	for _, u := range inst.Units {
		units[u.ID] = u
	}

	beta := m.Config.idleRate()
	res.ActiveVehicles = 0
	for _, v := range inst.Vehicles {
		active := bin(m.Alpha[v.ID], m.Names[m.Alpha[v.ID]]) || len(carried[v.ID]) > 0
		if !active {
			continue
		}
		res.ActiveVehicles++
		res.TransportCost += v.Cost

		ids := carried[v.ID]
		sort.Ints(ids)
		var weight, volume float64
		for _, id := range ids {
			weight += units[id].Weight
			volume += units[id].Volume
		}

		var deadFreight float64
		if m.Config.DeadFreight == DeadFreightShortfall {
			deadFreight = val(m.Z[v.ID])
		} else {
			deadFreight = beta * (v.WeightCapacity - weight)
		}
		if deadFreight < 0 {
			deadFreight = 0
		}
		if m.Config.DeadFreight == DeadFreightIdleCapacity {
			res.DeadFreightCost += deadFreight
		}

		alloc := VehicleAllocation{
			VehicleID:      v.ID,
			VehicleType:    v.Type,
			Destination:    v.Destination,
			Units:          ids,
			Weight:         weight,
			Volume:         volume,
			WeightCapacity: v.WeightCapacity,
			VolumeCapacity: v.VolumeCapacity,
			MinLoad:        v.MinLoad,
			UsageCost:      v.Cost,
			DeadFreight:    deadFreight,
		}
		if v.WeightCapacity > 0 {
			alloc.WeightUtilization = 100.0 * weight / v.WeightCapacity
		}
		if v.VolumeCapacity > 0 {
			alloc.VolumeUtilization = 100.0 * volume / v.VolumeCapacity
		}
		res.Allocations = append(res.Allocations, alloc)
	}
	res.InactiveVehicles = len(inst.Vehicles) - res.ActiveVehicles

	// In SHORTFALL mode the total is the sum of all z values, active or not:
	// a non-optimal feasible solution may leave z slack on an idle vehicle
	// and the objective charges it either way.
	if m.Config.DeadFreight == DeadFreightShortfall {
		for _, v := range inst.Vehicles {
			if z := val(m.Z[v.ID]); z > 0 {
				res.DeadFreightCost += z
			}
		}
	}

	for _, u := range inst.Units {
		if allocated[u.ID] {
			res.AllocatedUnits++
			continue
		}
		penalty := m.Config.UnitPenalty(u)
		reason := ReasonNotSelected
		if !hasLeg[u.ID] {
			reason = ReasonNoCompatibleVehicle
		}
		res.Unallocated = append(res.Unallocated, UnallocatedUnit{
			UnitID:  u.ID,
			Weight:  u.Weight,
			Volume:  u.Volume,
			Penalty: penalty,
			Reason:  reason,
		})
		res.UnallocatedWeight += u.Weight
		res.UnallocatedVolume += u.Volume
		res.NonAllocationCost += penalty
	}
	sort.Slice(res.Unallocated, func(i, j int) bool {
		return res.Unallocated[i].UnitID < res.Unallocated[j].UnitID
	})

	total := res.TransportCost + res.DeadFreightCost + res.NonAllocationCost
	if math.Abs(total-res.Objective) > costTolerance*(1.0+math.Abs(res.Objective)) {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("cost decomposition %f does not match objective %f", total, res.Objective))
	}

	return res
}
