package commands

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/leadsync/ghl-sheets/table"
	"github.com/leadsync/ghl-sheets/xref"
)

var PutCmd = Put{
	command: command{
		credentials: "",
		workdir:     "",
		url:         "",
		debug:       false,
	},

	worksheet: "",
	file:      "",
}

type Put struct {
	command
	worksheet string
	file      string
}

func (c *Put) FlagSet() *flag.FlagSet {
	flagset := c.flagset("put")

	flagset.StringVar(&c.worksheet, "worksheet", c.worksheet, "Worksheet name e.g. 'Appointment sheet'")
	flagset.StringVar(&c.file, "file", c.file, "CSV file")

	return flagset
}

func (c *Put) Execute(args ...any) error {
	ctx, options := unpack(args)

	if err := c.setup(options); err != nil {
		return err
	}

	if err := c.validate(); err != nil {
		return err
	}

	if strings.TrimSpace(c.worksheet) == "" {
		return fmt.Errorf("--worksheet is a required option")
	}

	if strings.TrimSpace(c.file) == "" {
		return fmt.Errorf("--file is a required option")
	}

	f, err := os.Open(c.file)
	if err != nil {
		return err
	}

	defer f.Close()

	t, err := table.ReadCSV(f)
	if err != nil {
		return fmt.Errorf("invalid CSV file %v (%w)", c.file, err)
	}

	spreadsheet, err := c.open(ctx)
	if err != nil {
		return err
	}

	return xref.Upload(ctx, spreadsheet, c.worksheet, t, c.size())
}

func (c *Put) Name() string {
	return "put"
}

func (c *Put) Description() string {
	return "Uploads a CSV file unchanged to a Google Sheets worksheet"
}

func (c *Put) Usage() string {
	return "--credentials <file> --url <url> --worksheet <name> --file <file>"
}

func (c *Put) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] [--config <file>] put [options] --url <URL> --worksheet <name> --file <file>\n", APP)
	fmt.Println()
	fmt.Println("  Replaces the contents of a Google Sheets worksheet with a CSV file")
	fmt.Println()

	helpOptions(c.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println()
	fmt.Println(`    ghl-sheets --debug put --credentials "credentials.json" \`)
	fmt.Println(`                           --url "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms" \`)
	fmt.Println(`                           --worksheet "Appointment sheet" \`)
	fmt.Println(`                           --file "appointments.csv"`)
	fmt.Println()
}
