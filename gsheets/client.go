// Package gsheets wraps the Google Sheets v4 API with the handful of worksheet
// operations needed to upload and cross-reference tables.
package gsheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

var (
	ErrAuth     = errors.New("authentication/authorization error")
	ErrNotFound = errors.New("spreadsheet not found")
)

type Client struct {
	google *sheets.Service
}

type Spreadsheet struct {
	ID    string
	Title string

	google *sheets.Service
}

type Worksheet struct {
	ID      int64
	Title   string
	Rows    int64
	Columns int64
}

// NewClient creates a Sheets client that issues requests through the (already
// authorised) HTTP client.
func NewClient(ctx context.Context, client *http.Client, opts ...option.ClientOption) (*Client, error) {
	options := append([]option.ClientOption{option.WithHTTPClient(client)}, opts...)

	google, err := sheets.NewService(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("unable to create new Google Sheets client (%w)", err)
	}

	return &Client{
		google: google,
	}, nil
}

// SpreadsheetID extracts the spreadsheet ID from a Google Sheets URL. Anything that
// is not a URL is assumed to be an ID already.
func SpreadsheetID(s string) (string, error) {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "https://") {
		match := regexp.MustCompile(`^https://docs.google.com/spreadsheets/d/(.*?)(?:/.*)?$`).FindStringSubmatch(s)
		if len(match) < 2 || match[1] == "" {
			return "", fmt.Errorf("invalid spreadsheet URL - expected something like 'https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms'")
		}

		return match[1], nil
	}

	if !regexp.MustCompile(`^[a-zA-Z0-9_-]+$`).MatchString(s) {
		return "", fmt.Errorf("invalid spreadsheet ID '%v'", s)
	}

	return s, nil
}

func (c *Client) Open(ctx context.Context, id string) (*Spreadsheet, error) {
	spreadsheet, err := c.google.Spreadsheets.Get(id).Fields("spreadsheetId", "properties.title").Context(ctx).Do()
	if err != nil {
		return nil, wrap(fmt.Sprintf("failed to fetch spreadsheet %v", id), err)
	}

	title := ""
	if spreadsheet.Properties != nil {
		title = spreadsheet.Properties.Title
	}

	return &Spreadsheet{
		ID:     spreadsheet.SpreadsheetId,
		Title:  title,
		google: c.google,
	}, nil
}

// Worksheets lists the worksheets (tabs) in the spreadsheet, in tab order.
func (s *Spreadsheet) Worksheets(ctx context.Context) ([]Worksheet, error) {
	spreadsheet, err := s.google.Spreadsheets.Get(s.ID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return nil, wrap("failed to list worksheets", err)
	}

	worksheets := []Worksheet{}
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil {
			worksheets = append(worksheets, worksheet(sheet.Properties))
		}
	}

	return worksheets, nil
}

func (s *Spreadsheet) CreateWorksheet(ctx context.Context, title string, rows, cols int64) (*Worksheet, error) {
	rq := sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			&sheets.Request{
				AddSheet: &sheets.AddSheetRequest{
					Properties: &sheets.SheetProperties{
						Title: title,
						GridProperties: &sheets.GridProperties{
							RowCount:    rows,
							ColumnCount: cols,
						},
					},
				},
			},
		},
	}

	response, err := s.google.Spreadsheets.BatchUpdate(s.ID, &rq).Context(ctx).Do()
	if err != nil {
		return nil, wrap(fmt.Sprintf("failed to create worksheet '%v'", title), err)
	}

	if len(response.Replies) == 0 || response.Replies[0].AddSheet == nil || response.Replies[0].AddSheet.Properties == nil {
		return nil, fmt.Errorf("invalid response creating worksheet '%v'", title)
	}

	ws := worksheet(response.Replies[0].AddSheet.Properties)

	return &ws, nil
}

// GetAllRows returns every non-empty row of the worksheet. Trailing empty cells are
// omitted by the API, so rows may be shorter than the header.
func (s *Spreadsheet) GetAllRows(ctx context.Context, ws *Worksheet) ([][]interface{}, error) {
	response, err := s.google.Spreadsheets.Values.Get(s.ID, area(ws.Title)).Context(ctx).Do()
	if err != nil {
		return nil, wrap(fmt.Sprintf("unable to retrieve data from worksheet '%v'", ws.Title), err)
	}

	return response.Values, nil
}

func (s *Spreadsheet) Clear(ctx context.Context, ws *Worksheet) error {
	rq := sheets.ClearValuesRequest{}

	if _, err := s.google.Spreadsheets.Values.Clear(s.ID, area(ws.Title), &rq).Context(ctx).Do(); err != nil {
		return wrap(fmt.Sprintf("unable to clear worksheet '%v'", ws.Title), err)
	}

	return nil
}

// WriteAll writes rows to the worksheet starting at A1, growing the worksheet grid
// first if the rows would not fit. Values are stored as is (no formula or number
// parsing) so that phone numbers keep their digits.
func (s *Spreadsheet) WriteAll(ctx context.Context, ws *Worksheet, rows [][]string) error {
	width := int64(0)
	for _, row := range rows {
		if int64(len(row)) > width {
			width = int64(len(row))
		}
	}

	if err := s.resize(ctx, ws, int64(len(rows)), width); err != nil {
		return err
	}

	values := sheets.ValueRange{
		Range:  area(ws.Title) + "!A1",
		Values: make([][]interface{}, len(rows)),
	}

	for i, row := range rows {
		values.Values[i] = make([]interface{}, len(row))
		for j, v := range row {
			values.Values[i][j] = v
		}
	}

	if _, err := s.google.Spreadsheets.Values.Update(s.ID, values.Range, &values).ValueInputOption("RAW").Context(ctx).Do(); err != nil {
		return wrap(fmt.Sprintf("unable to update worksheet '%v'", ws.Title), err)
	}

	return nil
}

func (s *Spreadsheet) resize(ctx context.Context, ws *Worksheet, rows, cols int64) error {
	if rows <= ws.Rows && cols <= ws.Columns {
		return nil
	}

	grid := sheets.GridProperties{
		RowCount:    max(rows, ws.Rows),
		ColumnCount: max(cols, ws.Columns),
	}

	rq := sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			&sheets.Request{
				UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
					Properties: &sheets.SheetProperties{
						SheetId:         ws.ID,
						GridProperties:  &grid,
						ForceSendFields: []string{"SheetId"},
					},
					Fields: "gridProperties.rowCount,gridProperties.columnCount",
				},
			},
		},
	}

	if _, err := s.google.Spreadsheets.BatchUpdate(s.ID, &rq).Context(ctx).Do(); err != nil {
		return wrap(fmt.Sprintf("error resizing worksheet '%v'", ws.Title), err)
	}

	ws.Rows = grid.RowCount
	ws.Columns = grid.ColumnCount

	return nil
}

func worksheet(p *sheets.SheetProperties) Worksheet {
	ws := Worksheet{
		ID:    p.SheetId,
		Title: p.Title,
	}

	if p.GridProperties != nil {
		ws.Rows = p.GridProperties.RowCount
		ws.Columns = p.GridProperties.ColumnCount
	}

	return ws
}

// area returns the A1 notation for a whole worksheet.
func area(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}

func wrap(msg string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusNotFound:
			return fmt.Errorf("%v (%w: %v)", msg, ErrNotFound, err)

		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%v (%w: %v)", msg, ErrAuth, err)
		}
	}

	return fmt.Errorf("%v (%w)", msg, err)
}
