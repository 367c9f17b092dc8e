package xref

import (
	"context"
	"errors"
	"fmt"

	"github.com/leadsync/ghl-sheets/gsheets"
	"github.com/leadsync/ghl-sheets/logger"
	"github.com/leadsync/ghl-sheets/phone"
	"github.com/leadsync/ghl-sheets/table"
)

type Status string

const (
	Matched   Status = "Matched"
	Unmatched Status = "Unmatched"
)

// ErrEmptySource is reported (as a warning) when either source worksheet has no data rows.
var ErrEmptySource = errors.New("one or both sheets are empty")

// Worksheets names the cross-reference worksheets and the size used when creating them.
type Worksheets struct {
	Appointments string
	Export       string
	Results      string
	Size         Size
}

var DefaultWorksheets = Worksheets{
	Appointments: "Appointment sheet",
	Export:       "GHL export",
	Results:      "Cross-reference results",
	Size:         DefaultSize,
}

// ResultColumns is the header of the cross-reference results worksheet.
var ResultColumns = []string{"Agent Name", "Leads Name", "Phone", "Contact Name", "phone", "Match_Status"}

// Match is an appointment joined with at most one lead export row.
//
// Phone and ContactPhone are normalised. ContactName and ContactPhone are empty when no
// export row has the same normalised phone number.
type Match struct {
	AgentName    string
	LeadsName    string
	Phone        string
	ContactName  string
	ContactPhone string
	Status       Status
}

// CrossReference joins the appointments worksheet against the lead export worksheet on
// normalised phone number and overwrites the results worksheet with one row per
// appointment. If either source worksheet has no data rows, a warning is logged and
// nothing is written (the returned table is nil).
func CrossReference(ctx context.Context, spreadsheet Spreadsheet, worksheets Worksheets) (*table.Table, error) {
	appointmentSheet, err := FindOrCreate(ctx, spreadsheet, worksheets.Appointments, worksheets.Size)
	if err != nil {
		return nil, err
	}

	exportSheet, err := FindOrCreate(ctx, spreadsheet, worksheets.Export, worksheets.Size)
	if err != nil {
		return nil, err
	}

	resultsSheet, err := FindOrCreate(ctx, spreadsheet, worksheets.Results, worksheets.Size)
	if err != nil {
		return nil, err
	}

	appointments, err := load(ctx, spreadsheet, appointmentSheet)
	if err != nil {
		return nil, err
	}

	export, err := load(ctx, spreadsheet, exportSheet)
	if err != nil {
		return nil, err
	}

	logger.Infof("Appointment sheet columns: %q", appointments.Header)
	logger.Infof("GHL export columns: %q", export.Header)

	if appointments.Len() == 0 || export.Len() == 0 {
		logger.Warnf("%v - please add data to both '%v' and '%v' before cross-referencing", ErrEmptySource, appointmentSheet.Title, exportSheet.Title)
		return nil, nil
	}

	matches, err := Merge(appointments, export)
	if err != nil {
		return nil, err
	}

	results := Results(matches)
	if err := overwrite(ctx, spreadsheet, resultsSheet, results); err != nil {
		return nil, err
	}

	logger.Infof("Cross-referencing completed and %v results uploaded to '%v'", results.Len(), resultsSheet.Title)

	return results, nil
}

// Merge left joins every appointment with the first lead export row (in export order)
// that has the same normalised phone number. A blank phone number joins the first export
// row with a blank phone number.
//
// An appointment is Matched only if it joined an export row AND its 'Leads Name' equals
// the export 'Contact Name' AND its un-normalised 'Phone' equals the un-normalised export
// 'phone'. A join on differently formatted numbers is therefore still Unmatched.
func Merge(appointments, export *table.Table) ([]Match, error) {
	if err := appointments.Require("Agent Name", "Leads Name", "Phone"); err != nil {
		return nil, fmt.Errorf("invalid appointments (%w)", err)
	}

	if err := export.Require("Contact Name", "phone"); err != nil {
		return nil, fmt.Errorf("invalid lead export (%w)", err)
	}

	rawPhones, _ := export.Column("phone")
	index := map[string]int{}
	for i, v := range rawPhones {
		key := phone.Normalize(v)
		if _, ok := index[key]; !ok {
			index[key] = i
		}
	}

	matches := make([]Match, 0, appointments.Len())
	for i := range appointments.Records {
		raw := appointments.Get(i, "Phone")
		m := Match{
			AgentName: appointments.Get(i, "Agent Name"),
			LeadsName: appointments.Get(i, "Leads Name"),
			Phone:     phone.Normalize(raw),
			Status:    Unmatched,
		}

		if j, ok := index[m.Phone]; ok {
			m.ContactName = export.Get(j, "Contact Name")
			m.ContactPhone = phone.Normalize(rawPhones[j])

			if m.LeadsName == m.ContactName && raw == rawPhones[j] {
				m.Status = Matched
			}
		}

		matches = append(matches, m)
	}

	return matches, nil
}

// Results projects the matches onto the results worksheet columns.
func Results(matches []Match) *table.Table {
	records := make([][]string, 0, len(matches))
	for _, m := range matches {
		records = append(records, []string{m.AgentName, m.LeadsName, m.Phone, m.ContactName, m.ContactPhone, string(m.Status)})
	}

	return &table.Table{
		Header:  append([]string{}, ResultColumns...),
		Records: records,
	}
}

func load(ctx context.Context, spreadsheet Spreadsheet, ws *gsheets.Worksheet) (*table.Table, error) {
	rows, err := spreadsheet.GetAllRows(ctx, ws)
	if err != nil {
		return nil, err
	}

	t, err := table.MakeTable(rows)
	if err != nil {
		return nil, fmt.Errorf("invalid worksheet '%v' (%w)", ws.Title, err)
	}

	return t, nil
}
