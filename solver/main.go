/* Copyright 2021, Arkadiusz Zarychta, arkadiusz.zarychta@h-brs.de */

package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"git.solver4all.com/azaryc2s/cargoalloc"
	"git.solver4all.com/azaryc2s/cargoalloc/gurobisolver"
	"git.solver4all.com/azaryc2s/cargoalloc/highssolver"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/host"
	"github.com/shirou/gopsutil/mem"
)

const (
	ENGINE_GUROBI = "gurobi"
	ENGINE_HIGHS  = "highs"

	MODE_SHORTFALL = "SHORTFALL"
	MODE_IDLE      = "IDLE"

	PENALTY_WEIGHT = "WEIGHT"
	PENALTY_FLAT   = "FLAT"
)

var (
	inputs    cargoalloc.ArrayStringFlags
	engine    *string
	mode      *string
	penalty   *string
	idleRate  *float64
	timeLimit *float64
	outDir    *string
	quiet     *bool
)

func main() {
	flag.Var(&inputs, "input", "Path to an instance file (.csv or .json), repeatable")
	engine = flag.String("engine", ENGINE_GUROBI, "Optimization engine: gurobi (default) or highs")
	mode = flag.String("deadfreight", MODE_SHORTFALL, "Dead-freight mode: SHORTFALL (default) or IDLE")
	penalty = flag.String("penalty", PENALTY_WEIGHT, "Non-allocation penalty policy: WEIGHT (default) or FLAT")
	idleRate = flag.Float64("idlerate", 1.0, "Per-kg rate for idle capacity (IDLE mode only)")
	timeLimit = flag.Float64("timelimit", 3600, "Wall-clock solve budget in seconds per instance, 0 = unlimited")
	outDir = flag.String("output", "", "Directory for result files. By default results are written next to the input")
	quiet = flag.Bool("quiet", true, "Suppress the engine's own console log")

	flag.Parse()

	if len(inputs) == 0 {
		log.Printf("No instances passed! Use -input at least once.")
		return
	}

	cfg := cargoalloc.ModelConfig{IdleRate: *idleRate}
	switch *mode {
	case MODE_SHORTFALL:
		cfg.DeadFreight = cargoalloc.DeadFreightShortfall
	case MODE_IDLE:
		cfg.DeadFreight = cargoalloc.DeadFreightIdleCapacity
	default:
		log.Printf("Unsupported dead-freight mode: %s\n", *mode)
		return
	}
	switch *penalty {
	case PENALTY_WEIGHT:
		cfg.Penalty = cargoalloc.PenaltyWeightScaled
	case PENALTY_FLAT:
		cfg.Penalty = cargoalloc.PenaltyFlatRate
	default:
		log.Printf("Unsupported penalty policy: %s\n", *penalty)
		return
	}

	var solver cargoalloc.Solver
	switch *engine {
	case ENGINE_GUROBI:
		solver = &gurobisolver.Solver{LogToConsole: !*quiet}
	case ENGINE_HIGHS:
		solver = &highssolver.Solver{Output: !*quiet}
	default:
		log.Printf("Unsupported engine: %s\n", *engine)
		return
	}

	sys := readSysInfo()

	for _, input := range inputs {
		inst, err := loadInstance(input)
		if err != nil {
			log.Printf("At %s: %s\n", input, err.Error())
			continue
		}

		log.Printf("Solving %s (%d vehicles, %d clients, %d units) with %s, %s dead freight\n",
			inst.Name, len(inst.Vehicles), len(inst.Clients), len(inst.Units), *engine, cfg.DeadFreight)

		res, err := cargoalloc.SolveInstance(inst, solver, cfg, *timeLimit)
		if err != nil {
			log.Printf("At %s: %s\n", input, err.Error())
			continue
		}
		res.System = sys
		res.Comment = fmt.Sprintf("engine=%s deadfreight=%s penalty=%s", *engine, cfg.DeadFreight, cfg.Penalty)
		inst.Result = res

		log.Printf("%s: status=%s obj=%.2f bound=%.2f gap=%.2f%% active=%d unallocated=%d\n",
			inst.Name, res.Status, res.Objective, res.Bound, res.Gap,
			res.ActiveVehicles, len(res.Unallocated))

		out := resultPath(input, *outDir)
		if err = cargoalloc.WriteInstanceJSON(inst, out); err != nil {
			log.Printf("At %s: %s\n", out, err.Error())
			continue
		}
	}
}

func loadInstance(path string) (*cargoalloc.Instance, error) {
	if strings.HasSuffix(path, ".json") {
		return cargoalloc.LoadInstanceJSON(path)
	}
	return cargoalloc.LoadInstanceCSV(path)
}

// resultPath places the result JSON next to the input (or into dir), keeping
// the instance name: foo.csv -> foo_result.json.
func resultPath(input, dir string) string {
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base)) + "_result.json"
	if dir == "" {
		dir = filepath.Dir(input)
	}
	return filepath.Join(dir, base)
}

func readSysInfo() cargoalloc.SysInfo {
	sys := cargoalloc.SysInfo{}
	if hostStat, err := host.Info(); err == nil {
		sys.Platform = hostStat.Platform
	}
	if cpuStat, err := cpu.Info(); err == nil && len(cpuStat) > 0 {
		sys.CPU = cpuStat[0].ModelName
	}
	if vmStat, err := mem.VirtualMemory(); err == nil {
		sys.RAM = fmt.Sprintf("%d GB", (vmStat.Total / 1024 / 1024 / 1024))
	}
	return sys
}
