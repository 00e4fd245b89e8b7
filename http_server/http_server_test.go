package http_server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/danthegoodman1/frameclean/datastore"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cleanResponse struct {
	RunID    string
	Columns  []ColumnInfo
	Rows     []map[string]any
	Mappings map[string]map[string]string
	Dropped  []struct {
		Column string
		Reason string
	}
	File  *string
	Stats CleanStats
}

func newTestServer(t *testing.T) *HTTPServer {
	t.Helper()
	ds, err := datastore.NewDiskDataStore(t.TempDir())
	require.NoError(t, err)
	return NewHTTPServer(ds)
}

func doRequest(t *testing.T, s *HTTPServer, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	return rec
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(t, s, http.MethodGet, "/hc", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestRequestIDHeader(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/hc", nil)
	req.Header.Set(echo.HeaderXRequestID, "upstream-id")
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	assert.Equal(t, "upstream-id", rec.Header().Get(echo.HeaderXRequestID))

	req = httptest.NewRequest(http.MethodGet, "/hc", nil)
	req.Header.Set(echo.HeaderXRequestID, strings.Repeat("a", 200))
	rec = httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	assert.Len(t, rec.Header().Get(echo.HeaderXRequestID), 36)
}

func TestCleanHandler(t *testing.T) {
	s := newTestServer(t)
	body := `{
		"Rows": [
			{"when": "19700101", "color": "red", "constant": "x", "blank": "", "tags": ["a", "b"], "CandidateName": "Ann"},
			{"when": "19700102", "color": "blue", "constant": "x", "blank": "", "tags": [], "CandidateName": "Bob"},
			{"when": "19691231", "color": null, "constant": "x", "blank": "", "tags": ["c"], "CandidateName": "Cy"}
		],
		"FlattenColumns": ["tags"],
		"DateColumns": ["when"],
		"Prune": {},
		"Encode": true
	}`

	rec := doRequest(t, s, http.MethodPost, "/clean", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res cleanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))

	assert.NotEmpty(t, res.RunID)
	assert.Nil(t, res.File)
	assert.Equal(t, int64(3), res.Stats.NumRows)

	var names []string
	for _, col := range res.Columns {
		names = append(names, col.Name)
	}
	assert.ElementsMatch(t, []string{"CandidateName", "color", "tags", "when"}, names)

	dropped := map[string]string{}
	for _, d := range res.Dropped {
		dropped[d.Column] = d.Reason
	}
	assert.Equal(t, map[string]string{"blank": "mostly_missing", "constant": "invariant"}, dropped)

	assert.Equal(t, map[string]string{"0": "blue", "1": "red"}, res.Mappings["color"])
	assert.Equal(t, map[string]string{"0": "a, b", "1": "c"}, res.Mappings["tags"])
	assert.NotContains(t, res.Mappings, "CandidateName")
	assert.NotContains(t, res.Mappings, "when")

	require.Len(t, res.Rows, 3)
	assert.Equal(t, 0.0, res.Rows[0]["when"])
	assert.Equal(t, 1.0, res.Rows[1]["when"])
	assert.Equal(t, -1.0, res.Rows[2]["when"])
	assert.Equal(t, -1.0, res.Rows[2]["color"])
	assert.Equal(t, -1.0, res.Rows[1]["tags"])
	assert.Equal(t, "Bob", res.Rows[1]["CandidateName"])
}

func TestCleanHandlerNDJSON(t *testing.T) {
	s := newTestServer(t)
	rows, err := json.Marshal("{\"a\": \"x\", \"b\": 1}\n{\"a\": \"y\", \"b\": 2}\n")
	require.NoError(t, err)

	rec := doRequest(t, s, http.MethodPost, "/clean", `{"RowsString": `+string(rows)+`}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res cleanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, []ColumnInfo{{Name: "a", Type: "string"}, {Name: "b", Type: "float"}}, res.Columns)
	assert.Empty(t, res.Mappings)
	assert.Empty(t, res.Dropped)
}

func TestCleanHandlerParquetExport(t *testing.T) {
	s := newTestServer(t)
	body := `{"Namespace": "events", "Rows": [{"a": "x", "b": 1.5}, {"a": "y", "b": 2}], "Export": "parquet"}`

	rec := doRequest(t, s, http.MethodPost, "/clean", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res cleanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.NotNil(t, res.File)
	assert.Contains(t, *res.File, "ns=events")
	assert.Empty(t, res.Rows)
	assert.Greater(t, res.Stats.BytesWritten, int64(0))

	info, err := os.Stat(*res.File)
	require.NoError(t, err)
	assert.Equal(t, res.Stats.BytesWritten, info.Size())
}

func TestCleanHandlerBadRequests(t *testing.T) {
	s := newTestServer(t)

	cases := map[string]string{
		"no rows":        `{}`,
		"bad export":     `{"Rows": [{"a": "x"}], "Export": "xml"}`,
		"bad threshold":  `{"Rows": [{"a": "x"}], "Prune": {"MissingThreshold": 2}}`,
		"bad dates":      `{"Rows": [{"a": "yesterday"}], "DateColumns": ["a"]}`,
		"unknown column": `{"Rows": [{"a": "x"}], "DateColumns": ["nope"]}`,
		"bad flatten":    `{"Rows": [{"a": "x"}], "FlattenColumns": ["nope"]}`,
		"bad ndjson":     `{"RowsString": "[1, 2]"}`,
		"bad namespace":  `{"Namespace": "a/b", "Rows": [{"a": "x"}]}`,
	}
	for name, body := range cases {
		rec := doRequest(t, s, http.MethodPost, "/clean", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, name)
	}

	rec := doRequest(t, s, http.MethodPost, "/clean", `{"Rows": [{"a": "yesterday"}], "DateColumns": ["a"]}`)
	assert.Contains(t, rec.Body.String(), "date formatting of a unclear")
}
