package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/iancoleman/orderedmap"
	"gopkg.in/yaml.v3"
)

/**
 * Convert a struct into an ordered map keyed by its JSON field names
 * @description
 * - Field order follows the struct declaration order
 */
func StructToOrderedMap(v interface{}) (*orderedmap.OrderedMap, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	m := orderedmap.New()
	if err := json.Unmarshal(data, m); err != nil {
		return nil, err
	}
	return m, nil
}

/**
 * Print a list of ordered maps as an aligned table
 * @param {[]*orderedmap.OrderedMap} rows - Rows to print, all with the same keys
 * @description
 * - Header row is built from the first row's keys, uppercased
 */
func PrintFormat(rows []*orderedmap.OrderedMap) {
	if len(rows) == 0 {
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	keys := rows[0].Keys()
	headers := make([]string, 0, len(keys))
	for _, k := range keys {
		headers = append(headers, strings.ToUpper(k))
	}
	fmt.Fprintln(w, strings.Join(headers, "\t"))
	for _, row := range rows {
		cells := make([]string, 0, len(keys))
		for _, k := range keys {
			val, _ := row.Get(k)
			cells = append(cells, fmt.Sprintf("%v", val))
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	w.Flush()
}

/**
 * Print any value as YAML
 */
func PrintYaml(v interface{}) {
	data, err := yaml.Marshal(v)
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Print(string(data))
}
