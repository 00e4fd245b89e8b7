package frame

type (
	Type uint8

	Column struct {
		Name   string
		Type   Type
		Values []Value
	}
)

const (
	TypeText Type = iota + 1
	TypeNumber
	TypeInt
	TypeList
)

func (t Type) String() string {
	switch t {
	case TypeText:
		return "string"
	case TypeNumber:
		return "float"
	case TypeInt:
		return "int"
	case TypeList:
		return "list"
	default:
		return "unknown"
	}
}

func NewColumn(name string, typ Type, values ...Value) *Column {
	if values == nil {
		values = []Value{}
	}
	return &Column{
		Name:   name,
		Type:   typ,
		Values: values,
	}
}

// TextColumn is shorthand for a Text column built from strings. Empty strings stay
// as empty text, they are not converted to missing.
func TextColumn(name string, values ...string) *Column {
	vals := make([]Value, len(values))
	for i, s := range values {
		vals[i] = Text(s)
	}
	return NewColumn(name, TypeText, vals...)
}

func (c *Column) Len() int {
	return len(c.Values)
}

// MissingFraction is the share of missing cells, 0 for an empty column
func (c *Column) MissingFraction() float64 {
	if len(c.Values) == 0 {
		return 0
	}
	missing := 0
	for _, v := range c.Values {
		if v.IsMissing() {
			missing++
		}
	}
	return float64(missing) / float64(len(c.Values))
}

// NumDistinct counts distinct non-missing values
func (c *Column) NumDistinct() int {
	seen := make(map[string]struct{})
	for _, v := range c.Values {
		if v.IsMissing() {
			continue
		}
		seen[v.Key()] = struct{}{}
	}
	return len(seen)
}

func (c *Column) Clone() *Column {
	vals := make([]Value, len(c.Values))
	copy(vals, c.Values)
	return NewColumn(c.Name, c.Type, vals...)
}

// InferType picks the column type from its non-missing values. Any list cell makes
// it a list column. Other mixed kinds are treated as text, and so is a column with
// nothing but missing values.
func InferType(values []Value) Type {
	var sawText, sawNumber, sawInt, sawList bool
	for _, v := range values {
		switch v.Kind() {
		case KindText:
			sawText = true
		case KindNumber:
			sawNumber = true
		case KindInt:
			sawInt = true
		case KindList:
			sawList = true
		}
	}
	switch {
	case sawList:
		return TypeList
	case sawText:
		return TypeText
	case sawNumber:
		return TypeNumber
	case sawInt:
		return TypeInt
	default:
		return TypeText
	}
}

// CoerceText returns values with every non-missing cell converted to its text form
func CoerceText(values []Value) []Value {
	out := make([]Value, len(values))
	for i, v := range values {
		if v.IsMissing() || v.Kind() == KindText {
			out[i] = v
			continue
		}
		out[i] = Text(v.String())
	}
	return out
}
