package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"git.solver4all.com/azaryc2s/cargoalloc"
)

// base vehicle catalogue: type, weight capacity (kg), volume capacity (m3), fixed cost
type baseVehicle struct {
	vehicleType string
	weightCap   float64
	volumeCap   float64
	cost        float64
}

var catalogue = []baseVehicle{
	{"Dry Cargo B-Train", 36000, 70, 1500},
	{"Specialized B-Train", 36000, 60, 1800},
	{"Bi-truck", 18000, 35, 1200},
	{"Semi-trailer L", 25000, 50, 1350},
	{"Semi-trailer LS", 30000, 60, 1600},
	{"Dry Cargo Road Train", 48000, 90, 2000},
	{"Specialized Road Train", 48000, 80, 2200},
	{"Truck", 13000, 25, 1000},
	{"Vanderleia Trailer", 34000, 65, 1700},
}

var restrictions = []string{"No stacking", "Fragile", "Heavy", ""}
var unitTypes = []string{"sheet", "strip", "profile", "tube"}

var (
	vehicleCounts cargoalloc.ArrayIntFlags
	clientCounts  cargoalloc.ArrayIntFlags
	unitCounts    cargoalloc.ArrayIntFlags
)

func main() {
	flag.Var(&vehicleCounts, "vehicles", "List of vehicle counts, paired by position with -clients and -units")
	flag.Var(&clientCounts, "clients", "List of client counts")
	flag.Var(&unitCounts, "units", "List of cargo unit counts")
	count := flag.Int("count", 10, "Number of instances per size combination")
	regions := flag.Int("regions", 4, "Number of destination regions")
	minPer := flag.Int("minper", 6, "Minimum units per client")
	maxPer := flag.Int("maxper", 20, "Maximum units per client")
	outDir := flag.String("out", "instances", "Output directory")
	seed := flag.Int64("seed", 0, "Random seed, 0 = time-based")

	flag.Parse()

	if len(vehicleCounts) != len(clientCounts) || len(vehicleCounts) != len(unitCounts) {
		log.Printf("-vehicles, -clients and -units must be given the same number of times")
		return
	}
	if len(vehicleCounts) == 0 {
		// default set: two large configurations plus a mini instance
		vehicleCounts = cargoalloc.ArrayIntFlags{30, 20, 2}
		clientCounts = cargoalloc.ArrayIntFlags{30, 20, 2}
		unitCounts = cargoalloc.ArrayIntFlags{400, 300, 5}
	}

	if *seed == 0 {
		rand.Seed(time.Now().UnixNano())
	} else {
		rand.Seed(*seed)
	}

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatal(err)
	}

	var summary []string
	for i := 0; i < len(vehicleCounts); i++ {
		for variation := 1; variation <= *count; variation++ {
			name, total, err := generate(*outDir, vehicleCounts[i], clientCounts[i], unitCounts[i],
				*regions, *minPer, *maxPer, variation)
			if err != nil {
				log.Fatal(err)
			}
			log.Printf("Generated %s\n", name)
			summary = append(summary, fmt.Sprintf("%s;%d;%d;%d",
				name, vehicleCounts[i], clientCounts[i], total))
		}
	}

	summaryFile := filepath.Join(*outDir, "00_SUMMARY.csv")
	content := "name;vehicles;clients;units\n" + strings.Join(summary, "\n") + "\n"
	if err := ioutil.WriteFile(summaryFile, []byte(content), 0644); err != nil {
		log.Fatal(err)
	}
}

func generate(outDir string, numVehicles, numClients, maxUnits, numRegions, minPer, maxPer, variation int) (string, int, error) {
	vehicles := makeFleet(numVehicles, numRegions)
	perClient := distributeUnits(numClients, minPer, maxPer, maxUnits)
	total := 0
	for _, n := range perClient {
		total += n
	}

	name := fmt.Sprintf("%dv%dc%dp_%d", numVehicles, numClients, total, variation)
	var sb strings.Builder
	sb.WriteString("type;id;description;value;weight;volume;destination;client;compatibility;restriction;weight_capacity;volume_capacity;cost;min_load;penalty\n")

	sb.WriteString(fmt.Sprintf("parameter;1;Non-allocation penalty rate;%.4f;;;;;;;;;;;\n",
		globalPenaltyRate(vehicles)))

	clientID := 1
	for region := 1; region <= numRegions; region++ {
		share := numClients / numRegions
		if region <= numClients%numRegions {
			share++
		}
		for j := 1; j <= share; j++ {
			sb.WriteString(fmt.Sprintf("client;%d;Client_R%d_%d;;;;R%d;;;;;;;;\n",
				clientID, region, j, region))
			clientID++
		}
	}

	for _, v := range vehicles {
		sb.WriteString(fmt.Sprintf("vehicle;%d;Vehicle_%s;;;;%s;;;;%.0f;%.0f;%.0f;%.0f;\n",
			v.id, v.vehicleType, v.destination, v.weightCap, v.volumeCap, v.cost, v.minLoad))
	}

	unitID := 1
	for c := 1; c <= numClients; c++ {
		for k := 0; k < perClient[c-1]; k++ {
			weight := float64(500 + rand.Intn(2501))
			volume := 0.5 + rand.Float64()*9.5
			restriction := restrictions[rand.Intn(len(restrictions))]
			compatibility := ""
			if restriction != "" {
				// restricted cargo only fits the specialized part of the fleet
				compatibility = specializedTypes()
			}
			penalty := penaltyRate(weight, volume, restriction, c)
			sb.WriteString(fmt.Sprintf("unit;%d;%s;;%.0f;%.1f;;%d;%s;%s;;;;;%.2f\n",
				unitID, unitTypes[rand.Intn(len(unitTypes))], weight, volume, c,
				compatibility, restriction, penalty))
			unitID++
		}
	}

	path := filepath.Join(outDir, name+".csv")
	if err := ioutil.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return "", 0, err
	}
	return name, total, nil
}

type fleetVehicle struct {
	baseVehicle
	id          int
	destination string
	minLoad     float64
}

// makeFleet guarantees a vehicle in every region and always appends the
// zero-capacity placeholder.
func makeFleet(numVehicles, numRegions int) []fleetVehicle {
	var fleet []fleetVehicle
	for i := 1; i <= numVehicles; i++ {
		base := catalogue[rand.Intn(len(catalogue))]
		region := 1 + rand.Intn(numRegions)
		if i <= numRegions {
			region = i
		}
		fleet = append(fleet, fleetVehicle{
			baseVehicle: base,
			id:          i,
			destination: fmt.Sprintf("R%d", region),
			minLoad:     base.weightCap / 2,
		})
	}
	fleet = append(fleet, fleetVehicle{
		baseVehicle: baseVehicle{vehicleType: "No resources"},
		id:          numVehicles + 1,
		destination: "R1",
	})
	return fleet
}

func distributeUnits(numClients, minPer, maxPer, total int) []int {
	// small instances cannot honor the per-client bounds, relax them
	if numClients*minPer > total {
		minPer = total / numClients
	}
	if numClients*maxPer < total {
		maxPer = total/numClients + 1
	}
	perClient := make([]int, numClients)
	assigned := 0
	for i := range perClient {
		perClient[i] = minPer + rand.Intn(maxPer-minPer+1)
		assigned += perClient[i]
	}
	for assigned > total {
		for i := range perClient {
			if perClient[i] > minPer {
				perClient[i]--
				assigned--
				if assigned == total {
					break
				}
			}
		}
	}
	for assigned < total {
		i := rand.Intn(numClients)
		if perClient[i] < maxPer {
			perClient[i]++
			assigned++
		}
	}
	return perClient
}

// globalPenaltyRate derives the default per-kg penalty from the fleet's
// average cost per kg, scaled up so leaving cargo behind is never free.
func globalPenaltyRate(fleet []fleetVehicle) float64 {
	sum, n := 0.0, 0
	for _, v := range fleet {
		if v.weightCap > 0 {
			sum += v.cost / v.weightCap
			n++
		}
	}
	if n == 0 {
		return 0.5
	}
	rate := (sum / float64(n)) * 1.2
	if rate < 0.3 {
		rate = 0.3
	}
	if rate > 1.5 {
		rate = 1.5
	}
	return rate
}

// penaltyRate applies the tiered policy: strategic cargo, important clients,
// oversized cargo, restricted cargo, then size.
func penaltyRate(weight, volume float64, restriction string, clientID int) float64 {
	switch {
	case rand.Float64() < 0.05:
		return round2(5.0 + rand.Float64()*5.0)
	case rand.Float64() < 0.15 || clientID%5 == 0:
		return round2(2.0 + rand.Float64()*3.0)
	case weight > 1000 || volume > 8:
		return round2(2.0 + rand.Float64()*3.0)
	case restriction != "":
		return round2(1.5 + rand.Float64()*1.5)
	case weight >= 500:
		return round2(0.8 + rand.Float64()*0.7)
	default:
		return round2(0.3 + rand.Float64()*0.2)
	}
}

func specializedTypes() string {
	types := []string{"Specialized B-Train", "Specialized Road Train", "Semi-trailer LS"}
	return strings.Join(types, ",")
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
