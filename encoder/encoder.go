package encoder

import (
	"sort"
	"strings"

	"github.com/danthegoodman1/frameclean/frame"
	"github.com/danthegoodman1/frameclean/gologger"
)

type (
	// Mapping converts codes back to the original text. MissingCode is never present.
	Mapping map[int64]string

	// Mappings holds one Mapping per encoded column name
	Mappings map[string]Mapping

	Options struct {
		// ExcludeSubstrings skips text columns whose name contains any of them
		ExcludeSubstrings []string
	}
)

const (
	MissingCode int64 = -1

	// CandidateMarker marks identifier columns that stay human readable
	CandidateMarker = "Candidate"
)

var (
	logger = gologger.NewLogger()
)

func DefaultOptions() Options {
	return Options{
		ExcludeSubstrings: []string{CandidateMarker},
	}
}

// Encode replaces every text column (except names containing "Candidate") with
// integer codes, in place, and returns the reverse mappings alongside t.
func Encode(t *frame.Table) (Mappings, *frame.Table) {
	return EncodeWith(t, DefaultOptions())
}

func EncodeWith(t *frame.Table, opts Options) (Mappings, *frame.Table) {
	mappings := make(Mappings)
	for _, col := range t.Columns() {
		if col.Type != frame.TypeText || excluded(col.Name, opts.ExcludeSubstrings) {
			continue
		}
		encoded, mapping := EncodeColumn(col)
		// same name and length, Replace cannot fail
		_ = t.Replace(encoded)
		mappings[col.Name] = mapping
		logger.Debug().Str("column", col.Name).Int("categories", len(mapping)).Msg("encoded column")
	}
	return mappings, t
}

// EncodeColumn assigns codes in sorted order of the distinct non-missing values.
// Missing cells get MissingCode.
func EncodeColumn(col *frame.Column) (*frame.Column, Mapping) {
	seen := make(map[string]struct{})
	var categories []string
	for _, v := range col.Values {
		if v.IsMissing() {
			continue
		}
		s := v.String()
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			categories = append(categories, s)
		}
	}
	sort.Strings(categories)

	codes := make(map[string]int64, len(categories))
	mapping := make(Mapping, len(categories))
	for i, s := range categories {
		codes[s] = int64(i)
		mapping[int64(i)] = s
	}

	out := make([]frame.Value, col.Len())
	for i, v := range col.Values {
		if v.IsMissing() {
			out[i] = frame.Int(MissingCode)
			continue
		}
		out[i] = frame.Int(codes[v.String()])
	}
	return frame.NewColumn(col.Name, frame.TypeInt, out...), mapping
}

// Decode turns a code back into its original text
func (m Mapping) Decode(code int64) (string, bool) {
	s, ok := m[code]
	return s, ok
}

// Decode reverses EncodeColumn. Unknown codes and MissingCode become missing.
func Decode(col *frame.Column, m Mapping) *frame.Column {
	out := make([]frame.Value, col.Len())
	for i, v := range col.Values {
		code, ok := v.AsInt()
		if !ok {
			continue
		}
		if s, ok := m.Decode(code); ok {
			out[i] = frame.Text(s)
		}
	}
	return frame.NewColumn(col.Name, frame.TypeText, out...)
}

func excluded(name string, substrings []string) bool {
	for _, sub := range substrings {
		if sub != "" && strings.Contains(name, sub) {
			return true
		}
	}
	return false
}
