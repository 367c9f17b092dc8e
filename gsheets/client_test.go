package gsheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

type request struct {
	method string
	path   string
	query  string
	body   map[string]any
}

func newTestClient(t *testing.T, handler func(w http.ResponseWriter, rq *request)) (*Client, *[]request) {
	t.Helper()

	requests := []request{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rq := request{
			method: r.Method,
			path:   r.URL.Path,
			query:  r.URL.RawQuery,
		}

		if r.Body != nil {
			json.NewDecoder(r.Body).Decode(&rq.body)
		}

		requests = append(requests, rq)
		w.Header().Set("Content-Type", "application/json")
		handler(w, &rq)
	}))

	t.Cleanup(srv.Close)

	client, err := NewClient(context.Background(), srv.Client(), option.WithEndpoint(srv.URL+"/"))
	require.NoError(t, err)

	return client, &requests
}

func TestSpreadsheetID(t *testing.T) {
	tests := []struct {
		value    string
		expected string
	}{
		{"1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms", "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms"},
		{" https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms/edit#gid=0 ", "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms"},
		{"https://docs.google.com/spreadsheets/d/abc_DEF-123", "abc_DEF-123"},
	}

	for _, test := range tests {
		id, err := SpreadsheetID(test.value)
		require.NoError(t, err, test.value)
		assert.Equal(t, test.expected, id)
	}

	for _, v := range []string{"", "https://example.com/spreadsheets/d/abc", "not an id"} {
		_, err := SpreadsheetID(v)
		assert.Error(t, err, v)
	}
}

func TestOpen(t *testing.T) {
	client, requests := newTestClient(t, func(w http.ResponseWriter, rq *request) {
		w.Write([]byte(`{"spreadsheetId":"abc","properties":{"title":"Leads"}}`))
	})

	spreadsheet, err := client.Open(context.Background(), "abc")
	require.NoError(t, err)

	assert.Equal(t, "abc", spreadsheet.ID)
	assert.Equal(t, "Leads", spreadsheet.Title)
	require.Len(t, *requests, 1)
	assert.Equal(t, "/v4/spreadsheets/abc", (*requests)[0].path)
}

func TestOpenWithMissingSpreadsheet(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, rq *request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"code":404,"message":"Requested entity was not found.","status":"NOT_FOUND"}}`))
	})

	_, err := client.Open(context.Background(), "abc")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOpenWithoutPermission(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, rq *request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":403,"message":"The caller does not have permission","status":"PERMISSION_DENIED"}}`))
	})

	_, err := client.Open(context.Background(), "abc")
	assert.ErrorIs(t, err, ErrAuth)
}

func TestWorksheets(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, rq *request) {
		w.Write([]byte(`{
		  "spreadsheetId":"abc",
		  "sheets":[
		    {"properties":{"sheetId":0,"title":"GHL export","gridProperties":{"rowCount":1000,"columnCount":26}}},
		    {"properties":{"sheetId":17,"title":"Appointment sheet","gridProperties":{"rowCount":100,"columnCount":20}}}
		  ]}`))
	})

	spreadsheet := Spreadsheet{ID: "abc", google: client.google}

	worksheets, err := spreadsheet.Worksheets(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []Worksheet{
		{ID: 0, Title: "GHL export", Rows: 1000, Columns: 26},
		{ID: 17, Title: "Appointment sheet", Rows: 100, Columns: 20},
	}, worksheets)
}

func TestCreateWorksheet(t *testing.T) {
	client, requests := newTestClient(t, func(w http.ResponseWriter, rq *request) {
		w.Write([]byte(`{"spreadsheetId":"abc","replies":[{"addSheet":{"properties":{"sheetId":42,"title":"Cross-reference results","gridProperties":{"rowCount":100,"columnCount":20}}}}]}`))
	})

	spreadsheet := Spreadsheet{ID: "abc", google: client.google}

	ws, err := spreadsheet.CreateWorksheet(context.Background(), "Cross-reference results", 100, 20)
	require.NoError(t, err)

	assert.Equal(t, &Worksheet{ID: 42, Title: "Cross-reference results", Rows: 100, Columns: 20}, ws)
	require.Len(t, *requests, 1)
	assert.Equal(t, "POST", (*requests)[0].method)
	assert.Equal(t, "/v4/spreadsheets/abc:batchUpdate", (*requests)[0].path)
}

func TestGetAllRows(t *testing.T) {
	client, requests := newTestClient(t, func(w http.ResponseWriter, rq *request) {
		w.Write([]byte(`{"range":"'GHL export'!A1:Z1000","majorDimension":"ROWS","values":[["phone","Contact Name"],["5551234567","Bob"],["5559876543"]]}`))
	})

	spreadsheet := Spreadsheet{ID: "abc", google: client.google}

	rows, err := spreadsheet.GetAllRows(context.Background(), &Worksheet{Title: "GHL export"})
	require.NoError(t, err)

	assert.Equal(t, [][]interface{}{
		{"phone", "Contact Name"},
		{"5551234567", "Bob"},
		{"5559876543"},
	}, rows)

	require.Len(t, *requests, 1)
	assert.Equal(t, "/v4/spreadsheets/abc/values/'GHL export'", (*requests)[0].path)
}

func TestClear(t *testing.T) {
	client, requests := newTestClient(t, func(w http.ResponseWriter, rq *request) {
		w.Write([]byte(`{"spreadsheetId":"abc","clearedRange":"'GHL export'!A1:Z1000"}`))
	})

	spreadsheet := Spreadsheet{ID: "abc", google: client.google}

	require.NoError(t, spreadsheet.Clear(context.Background(), &Worksheet{Title: "GHL export"}))
	require.Len(t, *requests, 1)
	assert.Equal(t, "POST", (*requests)[0].method)
	assert.Equal(t, "/v4/spreadsheets/abc/values/'GHL export':clear", (*requests)[0].path)
}

func TestWriteAll(t *testing.T) {
	client, requests := newTestClient(t, func(w http.ResponseWriter, rq *request) {
		w.Write([]byte(`{"spreadsheetId":"abc"}`))
	})

	spreadsheet := Spreadsheet{ID: "abc", google: client.google}
	ws := Worksheet{ID: 0, Title: "GHL export", Rows: 2, Columns: 20}
	rows := [][]string{
		{"phone", "Contact Name"},
		{"5551234567", "Bob"},
		{"0123", ""},
	}

	require.NoError(t, spreadsheet.WriteAll(context.Background(), &ws, rows))
	require.Len(t, *requests, 2)

	resize := (*requests)[0]
	assert.Equal(t, "/v4/spreadsheets/abc:batchUpdate", resize.path)

	properties := resize.body["requests"].([]any)[0].(map[string]any)["updateSheetProperties"].(map[string]any)["properties"].(map[string]any)
	assert.Equal(t, float64(0), properties["sheetId"])
	assert.Equal(t, float64(3), properties["gridProperties"].(map[string]any)["rowCount"])
	assert.Equal(t, int64(3), ws.Rows)

	update := (*requests)[1]
	assert.Equal(t, "PUT", update.method)
	assert.Equal(t, "/v4/spreadsheets/abc/values/'GHL export'!A1", update.path)
	assert.True(t, strings.Contains(update.query, "valueInputOption=RAW"), update.query)
	assert.Equal(t, []any{
		[]any{"phone", "Contact Name"},
		[]any{"5551234567", "Bob"},
		[]any{"0123", ""},
	}, update.body["values"])
}

func TestWriteAllWithoutResize(t *testing.T) {
	client, requests := newTestClient(t, func(w http.ResponseWriter, rq *request) {
		w.Write([]byte(`{"spreadsheetId":"abc"}`))
	})

	spreadsheet := Spreadsheet{ID: "abc", google: client.google}
	ws := Worksheet{ID: 3, Title: "GHL export", Rows: 100, Columns: 20}

	require.NoError(t, spreadsheet.WriteAll(context.Background(), &ws, [][]string{{"phone"}}))
	require.Len(t, *requests, 1)
	assert.Equal(t, "PUT", (*requests)[0].method)
}
