package xref

import (
	"context"
	"fmt"

	"github.com/leadsync/ghl-sheets/gsheets"
	"github.com/leadsync/ghl-sheets/logger"
	"github.com/leadsync/ghl-sheets/table"
)

// ExportColumns are the lead export columns retained for upload, in upload order.
var ExportColumns = []string{
	"Opportunity Name",
	"Contact Name",
	"phone",
	"email",
	"stage",
	"source",
	"assigned",
	"Followers",
	"Notes",
	"tags",
	"status",
	"Disposition",
	"Setter",
}

// Upload replaces the entire contents of the named worksheet (created if necessary)
// with the table header and records. The worksheet is cleared before it is written
// so a failed write can leave it empty or partially written.
func Upload(ctx context.Context, spreadsheet Spreadsheet, worksheet string, t *table.Table, size Size) error {
	ws, err := FindOrCreate(ctx, spreadsheet, worksheet, size)
	if err != nil {
		return err
	}

	if err := overwrite(ctx, spreadsheet, ws, t); err != nil {
		return err
	}

	logger.Infof("Uploaded %v rows to worksheet '%v'", t.Len(), ws.Title)

	return nil
}

func overwrite(ctx context.Context, spreadsheet Spreadsheet, ws *gsheets.Worksheet, t *table.Table) error {
	t.FillEmpty()

	logger.Debugf("Clearing worksheet '%v'", ws.Title)
	if err := spreadsheet.Clear(ctx, ws); err != nil {
		return err
	}

	logger.Debugf("Writing %v rows to worksheet '%v'", t.Len()+1, ws.Title)
	if err := spreadsheet.WriteAll(ctx, ws, t.Values()); err != nil {
		return fmt.Errorf("worksheet '%v' may be partially written (%w)", ws.Title, err)
	}

	return nil
}
