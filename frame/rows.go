package frame

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/danthegoodman1/gojsonutils"
)

var (
	ErrNotFlatMap    = errors.New("not a flat map")
	ErrNotJSONObject = errors.New("line was not a JSON object")
)

// FromRows builds a table from decoded JSON objects. Nested objects are flattened
// into their own columns, top level arrays are kept as list cells. Column order is
// first seen, with keys sorted inside each row.
func FromRows(rows []map[string]any) (*Table, error) {
	var names []string
	seen := make(map[string]struct{})
	flatRows := make([]map[string]any, len(rows))

	for i, row := range rows {
		flatMap, err := flattenRow(row)
		if err != nil {
			return nil, fmt.Errorf("error flattening row %d: %w", i, err)
		}
		keys := make([]string, 0, len(flatMap))
		for key := range flatMap {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if _, exists := seen[key]; !exists {
				seen[key] = struct{}{}
				names = append(names, key)
			}
		}
		flatRows[i] = flatMap
	}

	t, err := NewTable()
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		vals := make([]Value, len(flatRows))
		for i, row := range flatRows {
			// absent keys are missing
			vals[i] = FromInterface(row[name])
		}
		typ := InferType(vals)
		if typ == TypeText {
			// a text column only holds text cells
			vals = CoerceText(vals)
		}
		if err := t.AddColumn(NewColumn(name, typ, vals...)); err != nil {
			return nil, fmt.Errorf("error in AddColumn: %w", err)
		}
	}
	if len(names) == 0 {
		t.rows = len(rows)
	}
	return t, nil
}

// FromNDJSON reads line-delimited JSON objects, blank lines are skipped
func FromNDJSON(r io.Reader) (*Table, error) {
	var rows []map[string]any
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var raw any
		if err := json.Unmarshal([]byte(text), &raw); err != nil {
			return nil, fmt.Errorf("error in json.Unmarshal on line %d: %w", line, err)
		}
		jsonMap, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: line %d", ErrNotJSONObject, line)
		}
		rows = append(rows, jsonMap)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning NDJSON: %w", err)
	}
	return FromRows(rows)
}

func flattenRow(row map[string]any) (map[string]any, error) {
	lists := make(map[string]any)
	nested := make(map[string]any, len(row))
	hasObject := false
	for key, val := range row {
		switch val.(type) {
		case []any, []string:
			lists[key] = val
		case map[string]any:
			hasObject = true
			nested[key] = val
		default:
			nested[key] = val
		}
	}

	flatMap := nested
	if hasObject {
		flat, err := gojsonutils.Flatten(nested, nil)
		if err != nil {
			return nil, fmt.Errorf("error in gojsonutils.Flatten: %w", err)
		}
		var ok bool
		flatMap, ok = flat.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %+v", ErrNotFlatMap, flat)
		}
	}
	for key, val := range lists {
		flatMap[key] = val
	}
	return flatMap, nil
}
