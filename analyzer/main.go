package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"strings"

	"git.solver4all.com/azaryc2s/cargoalloc"
)

// Reads every result JSON in the given directory and prints a CSV summary to
// stdout, one line per solved instance.
func main() {
	if len(os.Args) < 2 {
		log.Printf("No arguments passed!")
		return
	}
	dirName := os.Args[1]
	dir, err := ioutil.ReadDir(dirName)
	if err != nil {
		log.Printf("Couldn't open directory %s: %s\n", dirName, err.Error())
		return
	}
	fmt.Printf("Name,Status,Time,Objective,Bound,Gap,Vehicles,Active,Units,Allocated,UnallocatedWeight,Transport,DeadFreight,NonAllocation,Warnings\n")
	for _, f := range dir {
		fileName := dirName + "/" + f.Name()
		if !strings.HasSuffix(fileName, ".json") {
			continue
		}
		inst, err := cargoalloc.LoadInstanceJSON(fileName)
		if err != nil {
			log.Printf("Couldn't parse %s: %s\n", f.Name(), err.Error())
			return
		}
		if inst.Result == nil {
			log.Printf("%s carries no result, skipping\n", f.Name())
			continue
		}
		res := inst.Result
		if err := checkResult(inst); err != nil {
			res.Comment += fmt.Sprintf("ANALYZER: Error = %s", err.Error())
		}
		fmt.Printf("%s,%s,%s,%.2f,%.2f,%.4f,%d,%d,%d,%d,%.0f,%.2f,%.2f,%.2f,%d\n",
			inst.Name, res.Status, res.Time, res.Objective, res.Bound, res.Gap,
			res.ActiveVehicles+res.InactiveVehicles, res.ActiveVehicles,
			len(inst.Units), res.AllocatedUnits, res.UnallocatedWeight,
			res.TransportCost, res.DeadFreightCost, res.NonAllocationCost,
			len(res.Warnings))
	}
}

// checkResult re-validates the reported allocations against the instance:
// capacities respected, every unit carried at most once.
func checkResult(inst *cargoalloc.Instance) error {
	units := make(map[int]cargoalloc.CargoUnit, len(inst.Units))
	for _, u := range inst.Units {
		units[u.ID] = u
	}
	seen := make(map[int]bool)
	for _, alloc := range inst.Result.Allocations {
		var weight, volume float64
		for _, id := range alloc.Units {
			if seen[id] {
				return fmt.Errorf("unit %d carried twice", id)
			}
			seen[id] = true
			weight += units[id].Weight
			volume += units[id].Volume
		}
		if weight > alloc.WeightCapacity+1e-6 {
			return fmt.Errorf("vehicle %d exceeds weight capacity: %.1f > %.1f",
				alloc.VehicleID, weight, alloc.WeightCapacity)
		}
		if volume > alloc.VolumeCapacity+1e-6 {
			return fmt.Errorf("vehicle %d exceeds volume capacity: %.1f > %.1f",
				alloc.VehicleID, volume, alloc.VolumeCapacity)
		}
	}
	return nil
}
