package parquet_accumulator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/danthegoodman1/frameclean/frame"
)

type (
	ParquetSchemaAccumulator struct {
		schema ParquetSchema
	}

	ParquetSchema struct {
		TagStructs SchemaTag        `json:"-,omitempty"`
		Fields     []*ParquetSchema `json:",omitempty"`
	}

	ParquetJSONSchema struct {
		Tag    string               `json:",omitempty"`
		Fields []*ParquetJSONSchema `json:",omitempty"`
	}

	SchemaTag struct {
		Name           string         `json:"name,omitempty"`
		Type           string         `json:"type,omitempty"`
		ConvertedType  string         `json:"convertedtype,omitempty"`
		RepetitionType RepetitionType `json:"repetitiontype,omitempty"`
		Encoding       string         `json:"encoding,omitempty"`
	}

	RepetitionType string
)

var (
	Optional RepetitionType = "OPTIONAL"
	Required RepetitionType = "REQUIRED"
)

func NewParquetAccumulator() ParquetSchemaAccumulator {
	return ParquetSchemaAccumulator{
		schema: ParquetSchema{
			TagStructs: SchemaTag{
				Name:           "parquet_go_root",
				RepetitionType: Required,
			},
		},
	}
}

// WriteTable accumulates the schema for every column of t, in table order
func (pa *ParquetSchemaAccumulator) WriteTable(t *frame.Table) {
	for _, col := range t.Columns() {
		pa.WriteColumn(col)
	}
}

// WriteColumn adds a column to the schema, columns already present are ignored
func (pa *ParquetSchemaAccumulator) WriteColumn(col *frame.Column) {
	if pa.fieldExists(col.Name) {
		return
	}
	pa.schema.Fields = append(pa.schema.Fields, getParquetSchema(col))
}

func getParquetSchema(col *frame.Column) *ParquetSchema {
	schema := &ParquetSchema{
		TagStructs: SchemaTag{
			Name:           col.Name,
			RepetitionType: Optional,
		},
	}
	switch col.Type {
	case frame.TypeList:
		schema.TagStructs.Type = "LIST"
		element := &ParquetSchema{
			TagStructs: SchemaTag{
				Name:           "Element",
				RepetitionType: Required,
			},
		}
		setScalarType(&element.TagStructs, ListElementType(col))
		schema.Fields = append(schema.Fields, element)
	default:
		setScalarType(&schema.TagStructs, col.Type)
	}
	return schema
}

func setScalarType(tag *SchemaTag, typ frame.Type) {
	switch typ {
	case frame.TypeNumber:
		tag.Type = "DOUBLE"
	case frame.TypeInt:
		tag.Type = "INT64"
	default:
		tag.Type = "BYTE_ARRAY"
		tag.ConvertedType = "UTF8"
		tag.Encoding = "PLAIN"
	}
}

// ListElementType picks the parquet element type for a list column: INT64 when every
// item is an int, DOUBLE when every item is numeric, text otherwise.
func ListElementType(col *frame.Column) frame.Type {
	var items []frame.Value
	for _, v := range col.Values {
		if list, ok := v.AsList(); ok {
			for _, item := range list {
				if !item.IsMissing() {
					items = append(items, item)
				}
			}
		}
	}
	if len(items) == 0 {
		return frame.TypeText
	}
	typ := frame.InferType(items)
	if typ == frame.TypeList {
		return frame.TypeText
	}
	return typ
}

func (pa *ParquetSchemaAccumulator) fieldExists(fieldName string) (exists bool) {
	for _, field := range pa.schema.Fields {
		if field.TagStructs.Name == fieldName {
			return true
		}
	}
	return
}

func (pa *ParquetSchemaAccumulator) GetColumnNames() []string {
	var cols []string
	for _, field := range pa.schema.Fields {
		cols = append(cols, field.TagStructs.Name)
	}
	return cols
}

func (ps *ParquetSchema) GetType() string {
	switch ps.TagStructs.Type {
	case "BYTE_ARRAY":
		return "string"
	case "DOUBLE":
		return "float"
	case "INT64":
		return "int"
	case "LIST":
		return fmt.Sprintf("list(%s)", ps.Fields[0].GetType())
	default:
		return "unknown"
	}
}

// GetColumnTypes returns the types of columns in the same order, either `string`, `float`, `int`, or `list(x)`
func (pa *ParquetSchemaAccumulator) GetColumnTypes() []string {
	var cols []string
	for _, field := range pa.schema.Fields {
		cols = append(cols, field.GetType())
	}
	return cols
}

// ToParquetJSONSchema recursively converts
func (ps *ParquetSchema) ToParquetJSONSchema() *ParquetJSONSchema {
	var tagArr []string
	if ps.TagStructs.Type != "" {
		tagArr = append(tagArr, "type="+ps.TagStructs.Type)
	}
	if ps.TagStructs.ConvertedType != "" {
		tagArr = append(tagArr, "convertedtype="+ps.TagStructs.ConvertedType)
	}
	if ps.TagStructs.Encoding != "" {
		tagArr = append(tagArr, "encoding="+ps.TagStructs.Encoding)
	}
	if ps.TagStructs.Name != "" {
		tagArr = append(tagArr, "name="+ps.TagStructs.Name)
	}
	if string(ps.TagStructs.RepetitionType) != "" {
		tagArr = append(tagArr, "repetitiontype="+string(ps.TagStructs.RepetitionType))
	}
	var fields []*ParquetJSONSchema
	for _, field := range ps.Fields {
		fields = append(fields, field.ToParquetJSONSchema())
	}
	return &ParquetJSONSchema{
		Tag:    strings.Join(tagArr, ", "),
		Fields: fields,
	}
}

// GetSchemaString returns the JSON formatted schema string
func (pa *ParquetSchemaAccumulator) GetSchemaString() (string, error) {
	var fields []*ParquetJSONSchema
	for _, field := range pa.schema.Fields {
		fields = append(fields, field.ToParquetJSONSchema())
	}
	pjs := ParquetJSONSchema{
		Tag:    "name=parquet_go_root, repetitiontype=REQUIRED",
		Fields: fields,
	}

	b, err := json.Marshal(pjs)
	if err != nil {
		return "", fmt.Errorf("error in json.Marshal: %w", err)
	}
	return string(b), nil
}
