package commands

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/leadsync/ghl-sheets/logger"
	"github.com/leadsync/ghl-sheets/table"
	"github.com/leadsync/ghl-sheets/xref"
)

var GetCmd = Get{
	command: command{
		credentials: "",
		workdir:     "",
		url:         "",
		debug:       false,
	},

	worksheet: "",
	file:      time.Now().Format("2006-01-02T150405.csv"),
}

type Get struct {
	command
	worksheet string
	file      string
}

func (cmd *Get) Name() string {
	return "get"
}

func (cmd *Get) Description() string {
	return "Retrieves a Google Sheets worksheet and stores it to a local CSV file"
}

func (cmd *Get) Usage() string {
	return "--credentials <file> --url <url> --worksheet <name> --file <file>"
}

func (cmd *Get) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] [--config <file>] get [options] --url <URL> --worksheet <name> --file <file>\n", APP)
	fmt.Println()
	fmt.Println("  Downloads a Google Sheets worksheet to a CSV file")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    ghl-sheets --debug get --credentials "credentials.json" \`)
	fmt.Println(`                           --url "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms" \`)
	fmt.Println(`                           --worksheet "Cross-reference results" \`)
	fmt.Println(`                           --file "results.csv"`)
	fmt.Println()
}

func (cmd *Get) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("get")

	flagset.StringVar(&cmd.worksheet, "worksheet", cmd.worksheet, "Worksheet name. Defaults to 'Cross-reference results'")
	flagset.StringVar(&cmd.file, "file", cmd.file, "CSV file name. Defaults to '<yyyy-mm-ddTHHmmss>.csv'")

	return flagset
}

func (cmd *Get) Execute(args ...any) error {
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
		worksheet = cmd.conf.Worksheets.Results
	}

	spreadsheet, err := cmd.open(ctx)
	if err != nil {
		return err
	}

	ws, err := xref.Find(ctx, spreadsheet, worksheet)
	if err != nil {
		return err
	} else if ws == nil {
		return fmt.Errorf("unable to identify worksheet for '%s'", worksheet)
	}

	rows, err := spreadsheet.GetAllRows(ctx, ws)
	if err != nil {
		return err
	}

	if len(rows) == 0 {
		return fmt.Errorf("no data in worksheet '%v'", ws.Title)
	}

	t, err := table.MakeTable(rows)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(os.TempDir(), "ghl-sheets")
	if err != nil {
		return err
	}

	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if err := table.WriteCSV(tmp, t); err != nil {
		return fmt.Errorf("error creating CSV file (%v)", err)
	}

	tmp.Close()

	dir := filepath.Dir(cmd.file)
	if err := os.MkdirAll(dir, 0770); err != nil {
		return err
	}

	if err := os.Rename(tmp.Name(), cmd.file); err != nil {
		return err
	}

	logger.Infof("Retrieved %v rows from worksheet '%v' to file %s", t.Len(), ws.Title, cmd.file)

	return nil
}
