package dates

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/danthegoodman1/frameclean/frame"
	"github.com/danthegoodman1/frameclean/gologger"
)

type (
	// Layout is one fixed date pattern tried against a whole column
	Layout struct {
		Name string
		// Format is a Go reference time layout
		Format string
	}

	FormatError struct {
		Column string
		Tried  []string
	}
)

var (
	logger = gologger.NewLogger()

	YearMonthDay = Layout{Name: "YYYYMMDD", Format: "20060102"}
	YearMonth    = Layout{Name: "YYMM", Format: "0601"}
	DayMonthYear = Layout{Name: "DDMonYY", Format: "02Jan06"}

	// DefaultLayouts are tried in order, the first one that parses any value wins
	DefaultLayouts = []Layout{YearMonthDay, YearMonth, DayMonthYear}

	Epoch = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

	ErrFormatUnclear = errors.New("date formatting unclear")
)

func (e *FormatError) Error() string {
	return fmt.Sprintf("date formatting of %s unclear, tried %s", e.Column, strings.Join(e.Tried, ", "))
}

func (e *FormatError) Unwrap() error {
	return ErrFormatUnclear
}

// Normalize converts a column of date-like values into whole days since Epoch
// using DefaultLayouts. The input column is never modified.
func Normalize(col *frame.Column) (*frame.Column, error) {
	return NormalizeWith(col, DefaultLayouts)
}

// NormalizeWith commits to the first layout under which at least one value parses.
// Values that do not parse under that layout become missing.
func NormalizeWith(col *frame.Column, layouts []Layout) (*frame.Column, error) {
	raw := make([]string, col.Len())
	parseable := make([]bool, col.Len())
	for i, v := range col.Values {
		raw[i], parseable[i] = dateString(v)
	}

	if col.Len() == 0 {
		return frame.NewColumn(col.Name, frame.TypeInt), nil
	}

	var tried []string
	for _, layout := range layouts {
		out := make([]frame.Value, len(raw))
		parsed := 0
		for i, s := range raw {
			if !parseable[i] {
				continue
			}
			t, err := time.Parse(layout.Format, s)
			if err != nil {
				continue
			}
			out[i] = frame.Int(DaysSinceEpoch(t))
			parsed++
		}
		if parsed == 0 {
			tried = append(tried, layout.Name)
			continue
		}
		logger.Debug().Str("column", col.Name).Str("layout", layout.Name).Int("parsed", parsed).Int("rows", len(raw)).Msg("committed to date layout")
		return frame.NewColumn(col.Name, frame.TypeInt, out...), nil
	}

	return nil, &FormatError{Column: col.Name, Tried: tried}
}

// NormalizeTable normalizes the named columns in place. Either every column is
// replaced or, on error, none are.
func NormalizeTable(t *frame.Table, names ...string) error {
	normalized := make([]*frame.Column, 0, len(names))
	for _, name := range names {
		col, ok := t.Column(name)
		if !ok {
			return fmt.Errorf("%w: %s", frame.ErrColumnNotFound, name)
		}
		out, err := Normalize(col)
		if err != nil {
			return fmt.Errorf("error normalizing %s: %w", name, err)
		}
		normalized = append(normalized, out)
	}
	for _, col := range normalized {
		if err := t.Replace(col); err != nil {
			return fmt.Errorf("error in Replace: %w", err)
		}
	}
	return nil
}

// DaysSinceEpoch counts whole days from Epoch, dates before it are negative
func DaysSinceEpoch(t time.Time) int64 {
	secs := t.Unix() - Epoch.Unix()
	days := secs / 86400
	if secs%86400 != 0 && secs < 0 {
		days--
	}
	return days
}

func dateString(v frame.Value) (string, bool) {
	switch v.Kind() {
	case frame.KindText:
		s, _ := v.AsText()
		return s, true
	case frame.KindInt:
		i, _ := v.AsInt()
		return strconv.FormatInt(i, 10), true
	case frame.KindNumber:
		f, _ := v.AsNumber()
		if f != math.Trunc(f) || math.IsInf(f, 0) {
			return "", false
		}
		return strconv.FormatFloat(f, 'f', 0, 64), true
	default:
		return "", false
	}
}
