package commands

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/leadsync/ghl-sheets/logger"
	"github.com/leadsync/ghl-sheets/table"
	"github.com/leadsync/ghl-sheets/xref"
)

var UploadCmd = Upload{
	command: command{
		credentials: "",
		workdir:     "",
		url:         "",
		debug:       false,
	},

	file:      "",
	worksheet: "",
}

type Upload struct {
	command
	file      string
	worksheet string
}

func (cmd *Upload) Name() string {
	return "upload"
}

func (cmd *Upload) Description() string {
	return "Cleans a GHL export CSV file and uploads it to a Google Sheets worksheet"
}

func (cmd *Upload) Usage() string {
	return "--credentials <file> --url <url> --file <file>"
}

func (cmd *Upload) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] [--config <file>] upload [options] --url <URL> --file <file>\n", APP)
	fmt.Println()
	fmt.Println("  Keeps the GHL export columns, normalises the 'phone' column and replaces the contents")
	fmt.Println("  of the 'GHL export' worksheet with the cleaned rows")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    ghl-sheets upload --credentials "credentials.json" \`)
	fmt.Println(`                      --url "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms" \`)
	fmt.Println(`                      --file "opportunities.csv"`)
	fmt.Println()
}

func (cmd *Upload) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("upload")

	flagset.StringVar(&cmd.file, "file", cmd.file, "GHL export CSV file")
	flagset.StringVar(&cmd.worksheet, "worksheet", cmd.worksheet, "Worksheet name. Defaults to 'GHL export'")

	return flagset
}

func (cmd *Upload) Execute(args ...any) error {
	ctx, options := unpack(args)

	if err := cmd.setup(options); err != nil {
		return err
	}

	if err := cmd.validate(); err != nil {
		return err
	}

	if strings.TrimSpace(cmd.file) == "" {
		return fmt.Errorf("--file is a required option")
	}

	worksheet := cmd.worksheet
	if strings.TrimSpace(worksheet) == "" {
		worksheet = cmd.conf.Worksheets.Export
	}

	t, err := load(cmd.file)
	if err != nil {
		return err
	}

	spreadsheet, err := cmd.open(ctx)
	if err != nil {
		return err
	}

	return upload(ctx, spreadsheet, worksheet, t, cmd.size())
}

// load reads a GHL export CSV file, keeping only the export columns and normalising the
// phone numbers. It is always called before the spreadsheet is opened so that a schema
// error never reaches the worksheet.
func load(file string) (*table.Table, error) {
	t, err := table.LoadCSV(file, xref.ExportColumns)
	if err != nil {
		return nil, err
	}

	logger.Infof("Loaded %v rows from %v", t.Len(), file)

	return t, nil
}

func upload(ctx context.Context, spreadsheet xref.Spreadsheet, worksheet string, t *table.Table, size xref.Size) error {
	if err := xref.Upload(ctx, spreadsheet, worksheet, t, size); err != nil {
		return err
	}

	fmt.Printf("Data uploaded to %v successfully!\n", worksheet)

	return nil
}
