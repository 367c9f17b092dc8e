package commands

import (
	"context"
	"flag"
	"fmt"

	"github.com/leadsync/ghl-sheets/xref"
)

var CrossReferenceCmd = CrossReference{
	command: command{
		credentials: "",
		workdir:     "",
		url:         "",
		debug:       false,
	},
}

type CrossReference struct {
	command
}

func (cmd *CrossReference) Name() string {
	return "cross-reference"
}

func (cmd *CrossReference) Description() string {
	return "Cross-references the 'Appointment sheet' and 'GHL export' worksheets by phone number"
}

func (cmd *CrossReference) Usage() string {
	return "--credentials <file> --url <url>"
}

func (cmd *CrossReference) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] [--config <file>] cross-reference [options] --url <URL>\n", APP)
	fmt.Println()
	fmt.Println("  Matches every row of the 'Appointment sheet' worksheet against the 'GHL export' worksheet")
	fmt.Println("  by normalised phone number and writes the result to the 'Cross-reference results' worksheet")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    ghl-sheets cross-reference --url "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms"`)
	fmt.Println()
}

func (cmd *CrossReference) FlagSet() *flag.FlagSet {
	return cmd.flagset("cross-reference")
}

func (cmd *CrossReference) Execute(args ...any) error {
	ctx, options := unpack(args)

	if err := cmd.setup(options); err != nil {
		return err
	}

	if err := cmd.validate(); err != nil {
		return err
	}

	spreadsheet, err := cmd.open(ctx)
	if err != nil {
		return err
	}

	return crossReference(ctx, spreadsheet, cmd.worksheets())
}

func crossReference(ctx context.Context, spreadsheet xref.Spreadsheet, worksheets xref.Worksheets) error {
	results, err := xref.CrossReference(ctx, spreadsheet, worksheets)
	if err != nil {
		return err
	}

	if results != nil {
		fmt.Println("Cross-referencing completed and results uploaded.")
	}

	return nil
}
