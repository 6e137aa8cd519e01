package cargoalloc

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"regexp"
)

// LoadInstanceJSON reads an instance previously written by WriteInstanceJSON
// (or hand-made in the same layout).
func LoadInstanceJSON(path string) (*Instance, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	inst := &Instance{}
	if err := json.Unmarshal(data, inst); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return inst, nil
}

// WriteInstanceJSON writes the instance (with its embedded result, if any),
// compacting numeric arrays onto single lines.
func WriteInstanceJSON(inst *Instance, path string) error {
	data, err := json.MarshalIndent(inst, "", "\t")
	if err != nil {
		return err
	}
	data = []byte(SanitizeJsonArrayLineBreaks(string(data)))
	return ioutil.WriteFile(path, data, 0644)
}

func SanitizeJsonArrayLineBreaks(json string) string {
	res := fmt.Sprintf("%s", json)
	var numbers = regexp.MustCompile(`\s*([-]?[0-9]+(\.[0-9]+)?),\s+([-]?[0-9]+(\.[0-9]+)?)(,)?`)
	var brackets = regexp.MustCompile(`\[(([-]?[0-9]+(\.[0-9]+)?,)+[-]?[0-9]+(\.[0-9]+)?)\s+\](,?)(\s+)`)
	for numbers.MatchString(res) {
		res = numbers.ReplaceAllString(res, "$1,$3$5")
	}
	for brackets.MatchString(res) {
		res = brackets.ReplaceAllString(res, "[$1]$5$6")
	}
	return res
}
