package cargoalloc

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Row types of the tabular instance format. Rows with any other type value
// (grid nodes, comments) are ignored by the loader.
const (
	rowParameter = "parameter"
	rowClient    = "client"
	rowVehicle   = "vehicle"
	rowUnit      = "unit"
)

// LoadInstanceCSV reads a row-tagged semicolon-delimited instance table. The
// instance name is the file name without extension.
func LoadInstanceCSV(path string) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	inst, err := ParseInstanceCSV(f, name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return inst, nil
}

// ParseInstanceCSV parses the row-tagged table from r. Client rows must
// appear for every client referenced by a unit row; units inherit their
// destination from the owning client.
func ParseInstanceCSV(r io.Reader, name string) (*Instance, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.TrimSpace(strings.ToLower(h))] = i
	}

	field := func(record []string, key string) string {
		i, ok := col[key]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}
	number := func(record []string, key, rowType string, id int) (float64, error) {
		s := field(record, key)
		if s == "" {
			return 0, fmt.Errorf("%s %d: missing required field %q", rowType, id, key)
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("%s %d: field %q: %w", rowType, id, key, err)
		}
		return v, nil
	}

	inst := &Instance{Name: name, Parameters: make(map[string]float64)}
	type unitRow struct {
		record []string
		id     int
	}
	var unitRows []unitRow

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rowType := field(record, "type")

		var id int
		if s := field(record, "id"); s != "" {
			id, err = strconv.Atoi(s)
			if err != nil {
				return nil, fmt.Errorf("row type %s: bad id %q", rowType, s)
			}
		}

		switch rowType {
		case rowParameter:
			desc := field(record, "description")
			value, err := number(record, "value", rowParameter, id)
			if err != nil {
				return nil, err
			}
			inst.Parameters[desc] = value

		case rowClient:
			dest := field(record, "destination")
			if dest == "" {
				return nil, fmt.Errorf("client %d: missing required field %q", id, "destination")
			}
			inst.Clients = append(inst.Clients, Client{
				ID:          id,
				Name:        field(record, "description"),
				Destination: dest,
			})

		case rowVehicle:
			weightCap, err := number(record, "weight_capacity", rowVehicle, id)
			if err != nil {
				return nil, err
			}
			volumeCap, err := number(record, "volume_capacity", rowVehicle, id)
			if err != nil {
				return nil, err
			}
			cost, err := number(record, "cost", rowVehicle, id)
			if err != nil {
				return nil, err
			}
			minLoad, err := number(record, "min_load", rowVehicle, id)
			if err != nil {
				return nil, err
			}
			inst.Vehicles = append(inst.Vehicles, Vehicle{
				ID:             id,
				Type:           strings.TrimPrefix(field(record, "description"), "Vehicle_"),
				WeightCapacity: weightCap,
				VolumeCapacity: volumeCap,
				Cost:           cost,
				MinLoad:        minLoad,
				Destination:    field(record, "destination"),
			})

		case rowUnit:
			// resolved after the loop so client rows may follow unit rows
			unitRows = append(unitRows, unitRow{record: record, id: id})
		}
	}

	clients := make(map[int]Client, len(inst.Clients))
	for _, c := range inst.Clients {
		clients[c.ID] = c
	}

	for _, row := range unitRows {
		record, id := row.record, row.id
		weight, err := number(record, "weight", rowUnit, id)
		if err != nil {
			return nil, err
		}
		volume, err := number(record, "volume", rowUnit, id)
		if err != nil {
			return nil, err
		}
		penalty, err := number(record, "penalty", rowUnit, id)
		if err != nil {
			return nil, err
		}
		clientID, err := strconv.Atoi(field(record, "client"))
		if err != nil {
			return nil, fmt.Errorf("unit %d: bad client reference %q", id, field(record, "client"))
		}
		client, ok := clients[clientID]
		if !ok {
			return nil, fmt.Errorf("unit %d: unknown client %d", id, clientID)
		}

		var compatibility []string
		if s := field(record, "compatibility"); s != "" {
			for _, t := range strings.Split(s, ",") {
				if t = strings.TrimSpace(t); t != "" {
					compatibility = append(compatibility, t)
				}
			}
		}

		inst.Units = append(inst.Units, CargoUnit{
			ID:            id,
			Type:          field(record, "description"),
			Weight:        weight,
			Volume:        volume,
			ClientID:      clientID,
			Destination:   client.Destination,
			Compatibility: compatibility,
			Restriction:   field(record, "restriction"),
			PenaltyRate:   penalty,
		})
	}

	return inst, nil
}
