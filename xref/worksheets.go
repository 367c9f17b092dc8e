// Package xref uploads cleaned lead exports to a spreadsheet and cross-references the
// uploaded leads against the appointments worksheet.
package xref

import (
	"context"
	"strings"

	"github.com/leadsync/ghl-sheets/gsheets"
	"github.com/leadsync/ghl-sheets/logger"
)

// Spreadsheet is the subset of gsheets.Spreadsheet used for uploads and cross-referencing.
type Spreadsheet interface {
	Worksheets(ctx context.Context) ([]gsheets.Worksheet, error)
	CreateWorksheet(ctx context.Context, title string, rows, cols int64) (*gsheets.Worksheet, error)
	GetAllRows(ctx context.Context, ws *gsheets.Worksheet) ([][]interface{}, error)
	Clear(ctx context.Context, ws *gsheets.Worksheet) error
	WriteAll(ctx context.Context, ws *gsheets.Worksheet, rows [][]string) error
}

// Size is the grid size of a newly created worksheet.
type Size struct {
	Rows    int64
	Columns int64
}

var DefaultSize = Size{Rows: 100, Columns: 20}

// FindOrCreate returns the worksheet whose title matches (ignoring case and surrounding
// whitespace), creating it with the given size if the spreadsheet has no such worksheet.
func FindOrCreate(ctx context.Context, spreadsheet Spreadsheet, title string, size Size) (*gsheets.Worksheet, error) {
	if ws, err := Find(ctx, spreadsheet, title); err != nil || ws != nil {
		return ws, err
	}

	logger.Infof("Creating worksheet '%v' (%vx%v)", title, size.Rows, size.Columns)

	return spreadsheet.CreateWorksheet(ctx, title, size.Rows, size.Columns)
}

// Find returns the worksheet whose title matches (ignoring case and surrounding
// whitespace), or nil if there is no such worksheet.
func Find(ctx context.Context, spreadsheet Spreadsheet, title string) (*gsheets.Worksheet, error) {
	worksheets, err := spreadsheet.Worksheets(ctx)
	if err != nil {
		return nil, err
	}

	for _, ws := range worksheets {
		if normalise(ws.Title) == normalise(title) {
			return &ws, nil
		}
	}

	return nil, nil
}

func normalise(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}
