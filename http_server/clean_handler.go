package http_server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/danthegoodman1/frameclean/dates"
	"github.com/danthegoodman1/frameclean/encoder"
	"github.com/danthegoodman1/frameclean/flattener"
	"github.com/danthegoodman1/frameclean/frame"
	"github.com/danthegoodman1/frameclean/parquet_accumulator"
	"github.com/danthegoodman1/frameclean/pruner"
	"github.com/danthegoodman1/frameclean/utils"
	"github.com/rs/zerolog"
)

type (
	CleanReqBody struct {
		// Namespace groups exported files, defaults to `default`
		Namespace *string `validate:"omitempty,min=1,excludesall=/"`
		// Line-delimited JSON (NDJSON)
		RowsString *string
		// Array of JSON
		Rows []map[string]any

		// List columns to join into text, runs first
		FlattenColumns []string
		// Columns to convert to days since 1970-01-01
		DateColumns []string
		// Prune mostly missing and invariant columns when set
		Prune *PruneOpts
		// Replace text columns with integer codes
		Encode bool
		// Either `json` (default) or `parquet`
		Export string `validate:"omitempty,oneof=json parquet"`
	}

	PruneOpts struct {
		// Default `MISSING_THRESHOLD` (0.95)
		MissingThreshold *float64 `validate:"omitempty,gte=0,lte=1"`
		Verbose          bool
	}

	ColumnInfo struct {
		Name string
		// string, float, int, or list
		Type string
	}

	CleanStats struct {
		NumRows      int64
		NumCols      int64
		BytesWritten int64
		TimeMS       int64
	}

	CleanResponse struct {
		RunID    string
		Columns  []ColumnInfo
		Rows     []map[string]any `json:",omitempty"`
		Mappings encoder.Mappings `json:",omitempty"`
		Dropped  []pruner.Drop    `json:",omitempty"`
		File     *string          `json:",omitempty"`
		Stats    CleanStats
	}
)

var (
	ErrNoRows = errors.New("no rows found")
)

func (s *HTTPServer) CleanHandler(c *CustomContext) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), time.Second*60)
	defer cancel()

	runID := utils.GenRandomShortID()
	logger := zerolog.Ctx(ctx).With().Str("runID", runID).Logger()

	start := time.Now()

	var reqBody CleanReqBody
	if err := ValidateRequest(c, &reqBody); err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}

	tbl, err := tableFromRequest(reqBody)
	if errors.Is(err, ErrNoRows) {
		return c.String(http.StatusBadRequest, err.Error())
	}
	if err != nil {
		return c.String(http.StatusBadRequest, fmt.Sprintf("error reading rows: %s", err))
	}
	logger.Debug().Int("rows", tbl.NumRows()).Int("cols", tbl.NumCols()).Msg("read table")

	res := CleanResponse{
		RunID: runID,
	}

	if len(reqBody.FlattenColumns) > 0 {
		if err := flattener.FlattenTable(tbl, reqBody.FlattenColumns...); err != nil {
			return c.String(http.StatusBadRequest, err.Error())
		}
	}

	if len(reqBody.DateColumns) > 0 {
		err := dates.NormalizeTable(tbl, reqBody.DateColumns...)
		if errors.Is(err, dates.ErrFormatUnclear) || errors.Is(err, frame.ErrColumnNotFound) {
			return c.String(http.StatusBadRequest, err.Error())
		}
		if err != nil {
			return c.InternalError(err, "error normalizing dates")
		}
	}

	if reqBody.Prune != nil {
		_, res.Dropped = pruner.PruneWithReport(tbl, pruner.Options{
			MissingThreshold: utils.Deref(reqBody.Prune.MissingThreshold, utils.MISSING_THRESHOLD),
			Verbose:          reqBody.Prune.Verbose,
			Logger:           &logger,
		})
	}

	if reqBody.Encode {
		res.Mappings, _ = encoder.Encode(tbl)
	}

	for _, col := range tbl.Columns() {
		res.Columns = append(res.Columns, ColumnInfo{Name: col.Name, Type: col.Type.String()})
	}
	res.Columns = utils.ArrayOrEmpty(res.Columns)

	switch reqBody.Export {
	case "parquet":
		var b bytes.Buffer
		_, err := parquet_accumulator.WriteParquet(tbl, &b)
		if err != nil {
			return c.InternalError(err, "error in WriteParquet")
		}
		res.Stats.BytesWritten = int64(b.Len())

		fileName := fmt.Sprintf("%s.parquet", utils.GenKSortedID(""))
		location, err := s.DataStore.WriteFile(ctx, utils.Deref(reqBody.Namespace, "default"), fileName, &b)
		if err != nil {
			return c.InternalError(err, "error writing file to datastore")
		}
		res.File = &location
	default:
		res.Rows = tbl.Rows()
	}

	res.Stats.NumRows = int64(tbl.NumRows())
	res.Stats.NumCols = int64(tbl.NumCols())
	res.Stats.TimeMS = time.Since(start).Milliseconds()

	logger.Debug().Interface("stats", res.Stats).Int("dropped", len(res.Dropped)).Int("encoded", len(res.Mappings)).Msg("cleaned table")

	return c.JSON(http.StatusOK, res)
}

func tableFromRequest(reqBody CleanReqBody) (*frame.Table, error) {
	if reqBody.RowsString != nil {
		return frame.FromNDJSON(strings.NewReader(*reqBody.RowsString))
	}
	if len(reqBody.Rows) > 0 {
		return frame.FromRows(reqBody.Rows)
	}
	return nil, ErrNoRows
}
