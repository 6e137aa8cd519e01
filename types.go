package cargoalloc

type Instance struct {
	Name    string `json:"name"`
	Comment string `json:"comment,omitempty"`

	Parameters map[string]float64 `json:"parameters,omitempty"`
	Clients    []Client           `json:"clients"`
	Vehicles   []Vehicle          `json:"vehicles"`
	Units      []CargoUnit        `json:"units"`

	Result *Result `json:"result,omitempty"`
}

type Client struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Destination string `json:"destination"`
}

type Vehicle struct {
	ID             int     `json:"id"`
	Type           string  `json:"type"`
	WeightCapacity float64 `json:"weight_capacity"`
	VolumeCapacity float64 `json:"volume_capacity"`
	Cost           float64 `json:"cost"`
	MinLoad        float64 `json:"min_load"`
	Destination    string  `json:"destination"`
}

// CargoUnit is a single metallic unit to be shipped. Destination is inherited
// from the owning client when the instance is loaded. An empty Compatibility
// list means the unit may ride on every vehicle type of the instance.
type CargoUnit struct {
	ID            int      `json:"id"`
	Type          string   `json:"type"`
	Weight        float64  `json:"weight"`
	Volume        float64  `json:"volume"`
	ClientID      int      `json:"client"`
	Destination   string   `json:"destination"`
	Compatibility []string `json:"compatibility,omitempty"`
	Restriction   string   `json:"restriction,omitempty"`
	PenaltyRate   float64  `json:"penalty_rate"`
}

// Result is the domain-level interpretation of a solve, written back next to
// the instance. The three cost components are recomputed from the variable
// values and must sum to Objective within tolerance.
type Result struct {
	Status      string  `json:"status"`
	Time        string  `json:"time"`
	HasSolution bool    `json:"has_solution"`
	Objective   float64 `json:"objective"`
	Bound       float64 `json:"bound"`
	Gap         float64 `json:"gap"`

	ActiveVehicles   int `json:"active_vehicles"`
	InactiveVehicles int `json:"inactive_vehicles"`
	AllocatedUnits   int `json:"allocated_units"`

	TransportCost     float64 `json:"transport_cost"`
	DeadFreightCost   float64 `json:"dead_freight_cost"`
	NonAllocationCost float64 `json:"non_allocation_cost"`

	UnallocatedWeight float64 `json:"unallocated_weight"`
	UnallocatedVolume float64 `json:"unallocated_volume"`

	Allocations []VehicleAllocation `json:"allocations,omitempty"`
	Unallocated []UnallocatedUnit   `json:"unallocated,omitempty"`

	Warnings []string `json:"warnings,omitempty"`
	System   SysInfo  `json:"system"`
	Comment  string   `json:"comment,omitempty"`
}

type VehicleAllocation struct {
	VehicleID         int     `json:"vehicle_id"`
	VehicleType       string  `json:"vehicle_type"`
	Destination       string  `json:"destination"`
	Units             []int   `json:"units"`
	Weight            float64 `json:"weight"`
	Volume            float64 `json:"volume"`
	WeightCapacity    float64 `json:"weight_capacity"`
	VolumeCapacity    float64 `json:"volume_capacity"`
	MinLoad           float64 `json:"min_load"`
	UsageCost         float64 `json:"usage_cost"`
	DeadFreight       float64 `json:"dead_freight"`
	WeightUtilization float64 `json:"weight_utilization"`
	VolumeUtilization float64 `json:"volume_utilization"`
}

const (
	// ReasonNoCompatibleVehicle marks units that no admissible leg could carry.
	ReasonNoCompatibleVehicle = "no_compatible_vehicle"
	// ReasonNotSelected marks units a compatible leg existed for, left out by the optimum.
	ReasonNotSelected = "not_selected"
)

type UnallocatedUnit struct {
	UnitID  int     `json:"unit_id"`
	Weight  float64 `json:"weight"`
	Volume  float64 `json:"volume"`
	Penalty float64 `json:"penalty"`
	Reason  string  `json:"reason"`
}

// SysInfo saves the basic system information
type SysInfo struct {
	Platform string
	CPU      string
	RAM      string
}
