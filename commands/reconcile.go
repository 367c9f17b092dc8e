package commands

import (
	"flag"
	"fmt"
	"strings"
)

var ReconcileCmd = Reconcile{
	command: command{
		credentials: "",
		workdir:     "",
		url:         "",
		debug:       false,
	},

	file: "",
}

// Reconcile uploads a cleaned GHL export and then cross-references it against the
// appointments worksheet. It is the default command.
type Reconcile struct {
	command
	file string
}

func (cmd *Reconcile) Name() string {
	return "reconcile"
}

func (cmd *Reconcile) Description() string {
	return "Uploads a GHL export CSV file and cross-references it against the appointments worksheet"
}

func (cmd *Reconcile) Usage() string {
	return "[--credentials <file>] [--url <url>] [--file <file>]"
}

func (cmd *Reconcile) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] [--config <file>] [reconcile [options]]\n", APP)
	fmt.Println()
	fmt.Println("  Uploads the cleaned GHL export to the 'GHL export' worksheet and then cross-references")
	fmt.Println("  the 'Appointment sheet' worksheet against it. Prompts for the CSV file and spreadsheet")
	fmt.Println("  if --file or --url are not supplied.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    ghl-sheets`)
	fmt.Println(`    ghl-sheets reconcile --file "opportunities.csv" --url "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms"`)
	fmt.Println()
}

func (cmd *Reconcile) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("reconcile")

	flagset.StringVar(&cmd.file, "file", cmd.file, "GHL export CSV file")

	return flagset
}

func (cmd *Reconcile) Execute(args ...any) error {
	ctx, options := unpack(args)

	if err := cmd.setup(options); err != nil {
		return err
	}

	if err := cmd.ask(); err != nil {
		return err
	}

	if err := cmd.validate(); err != nil {
		return err
	}

	t, err := load(cmd.file)
	if err != nil {
		return err
	}

	spreadsheet, err := cmd.open(ctx)
	if err != nil {
		return err
	}

	if err := upload(ctx, spreadsheet, cmd.conf.Worksheets.Export, t, cmd.size()); err != nil {
		return err
	}

	return crossReference(ctx, spreadsheet, cmd.worksheets())
}

// ask prompts for the CSV file and spreadsheet if they were not given as options.
func (cmd *Reconcile) ask() error {
	r, w := cmd.console()

	if strings.TrimSpace(cmd.file) == "" {
		file, err := prompt(r, w, "Enter the path to the new GHL export CSV file: ")
		if err != nil {
			return err
		} else if file == "" {
			return fmt.Errorf("missing GHL export CSV file")
		}

		cmd.file = file
	}

	if strings.TrimSpace(cmd.url) == "" {
		url, err := prompt(r, w, "Enter your Google Spreadsheet ID: ")
		if err != nil {
			return err
		} else if url == "" {
			return fmt.Errorf("missing Google Spreadsheet ID")
		}

		cmd.url = url
	}

	return nil
}
