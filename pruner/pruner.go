package pruner

import (
	"github.com/danthegoodman1/frameclean/frame"
	"github.com/danthegoodman1/frameclean/gologger"
	"github.com/rs/zerolog"
)

type (
	Options struct {
		// MissingThreshold deletes columns whose missing fraction is strictly above it
		MissingThreshold float64
		// Verbose logs every deleted column at info level
		Verbose bool
		// Logger overrides the package logger for verbose output
		Logger *zerolog.Logger
	}

	Reason string

	Drop struct {
		Column          string
		Reason          Reason
		MissingFraction float64
	}
)

const (
	DefaultMissingThreshold = 0.95

	ReasonMostlyMissing Reason = "mostly_missing"
	ReasonInvariant     Reason = "invariant"
)

var (
	logger = gologger.NewLogger()
)

func DefaultOptions() Options {
	return Options{
		MissingThreshold: DefaultMissingThreshold,
	}
}

// Prune deletes mostly missing and invariant columns from t in place and returns t
func Prune(t *frame.Table, opts Options) *frame.Table {
	t, _ = PruneWithReport(t, opts)
	return t
}

// PruneWithReport is Prune, also returning what was deleted and why, in table order.
//
// Empty text cells are replaced with missing before a column is evaluated, and
// that replacement stays visible to the caller for the columns that are kept.
func PruneWithReport(t *frame.Table, opts Options) (*frame.Table, []Drop) {
	l := &logger
	if opts.Logger != nil {
		l = opts.Logger
	}

	var dropped []Drop
	for _, name := range t.Names() {
		col, _ := t.Column(name)
		blankToMissing(col)

		missing := col.MissingFraction()
		if missing > opts.MissingThreshold {
			t.Drop(name)
			dropped = append(dropped, Drop{Column: name, Reason: ReasonMostlyMissing, MissingFraction: missing})
			if opts.Verbose {
				l.Info().Str("column", name).Str("reason", string(ReasonMostlyMissing)).Float64("missingFraction", missing).Float64("threshold", opts.MissingThreshold).Msg("column was mostly missing and deleted")
			}
			continue
		}

		if col.NumDistinct() == 1 {
			t.Drop(name)
			dropped = append(dropped, Drop{Column: name, Reason: ReasonInvariant, MissingFraction: missing})
			if opts.Verbose {
				l.Info().Str("column", name).Str("reason", string(ReasonInvariant)).Float64("missingFraction", missing).Msg("column was invariant and deleted")
			}
		}
	}
	return t, dropped
}

func blankToMissing(col *frame.Column) {
	for i, v := range col.Values {
		if s, ok := v.AsText(); ok && s == "" {
			col.Values[i] = frame.Missing()
		}
	}
}
