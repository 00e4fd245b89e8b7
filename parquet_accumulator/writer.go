package parquet_accumulator

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/danthegoodman1/frameclean/frame"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/writer"
)

const parallelism = 4

// WriteParquet serializes t to w and returns the schema that was used
func WriteParquet(t *frame.Table, w io.Writer) (string, error) {
	pa := NewParquetAccumulator()
	pa.WriteTable(t)
	parquetSchema, err := pa.GetSchemaString()
	if err != nil {
		return "", fmt.Errorf("error in GetSchemaString: %w", err)
	}

	pw, err := writer.NewJSONWriterFromWriter(parquetSchema, w, parallelism)
	if err != nil {
		return "", fmt.Errorf("error in NewJSONWriterFromWriter: %w", err)
	}
	if err := writeRows(t, pw); err != nil {
		return "", err
	}
	return parquetSchema, nil
}

// WriteParquetFile writes t to a local parquet file at path
func WriteParquetFile(t *frame.Table, path string) (string, error) {
	pa := NewParquetAccumulator()
	pa.WriteTable(t)
	parquetSchema, err := pa.GetSchemaString()
	if err != nil {
		return "", fmt.Errorf("error in GetSchemaString: %w", err)
	}

	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return "", fmt.Errorf("error in local.NewLocalFileWriter: %w", err)
	}
	defer fw.Close()

	pw, err := writer.NewJSONWriter(parquetSchema, fw, parallelism)
	if err != nil {
		return "", fmt.Errorf("error in NewJSONWriter: %w", err)
	}
	if err := writeRows(t, pw); err != nil {
		return "", err
	}
	return parquetSchema, nil
}

func writeRows(t *frame.Table, pw *writer.JSONWriter) error {
	cols := t.Columns()
	elemTypes := make(map[string]frame.Type)
	for _, col := range cols {
		if col.Type == frame.TypeList {
			elemTypes[col.Name] = ListElementType(col)
		}
	}

	for r := 0; r < t.NumRows(); r++ {
		row := make(map[string]any, len(cols))
		for _, col := range cols {
			row[col.Name] = cellJSON(col.Values[r], col.Type, elemTypes[col.Name])
		}
		rowBytes, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("error in json.Marshal of row %d: %w", r, err)
		}
		err = pw.Write(string(rowBytes))
		if err != nil {
			return fmt.Errorf("error in pw.Write for row %+v: %w", string(rowBytes), err)
		}
	}

	err := pw.WriteStop()
	if err != nil {
		return fmt.Errorf("error in pw.WriteStop: %w", err)
	}
	return nil
}

func cellJSON(v frame.Value, typ, elemType frame.Type) any {
	if v.IsMissing() {
		return nil
	}
	switch typ {
	case frame.TypeList:
		items, ok := v.AsList()
		if !ok {
			return nil
		}
		out := make([]any, 0, len(items))
		for _, item := range items {
			// elements are REQUIRED
			if item.IsMissing() {
				continue
			}
			out = append(out, cellJSON(item, elemType, 0))
		}
		return out
	case frame.TypeNumber:
		if f, ok := v.AsNumber(); ok {
			return f
		}
		return nil
	case frame.TypeInt:
		if i, ok := v.AsInt(); ok {
			return i
		}
		if f, ok := v.AsNumber(); ok {
			return int64(f)
		}
		return nil
	default:
		return v.String()
	}
}
