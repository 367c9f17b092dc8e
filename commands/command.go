package commands

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/leadsync/ghl-sheets/config"
	"github.com/leadsync/ghl-sheets/gsheets"
	"github.com/leadsync/ghl-sheets/logger"
	"github.com/leadsync/ghl-sheets/xref"
)

const APP = "ghl-sheets"

type Options struct {
	Config string
	Debug  bool
}

// command holds the options common to every command that talks to Google Sheets.
// Empty values are filled in from the configuration.
//
// in and out are shared by the reconcile prompts and the OAuth2 authorisation code prompt
// so that piped input is read through a single buffer. connect replaces the Google
// Sheets connection in tests.
type command struct {
	credentials string
	workdir     string
	url         string
	debug       bool

	conf    *config.Config
	in      *bufio.Reader
	out     io.Writer
	connect func(ctx context.Context) (xref.Spreadsheet, error)
}

// unpack extracts the context and options passed to Execute by main().
func unpack(args []any) (context.Context, *Options) {
	ctx := context.Background()
	options := &Options{}

	for _, arg := range args {
		switch v := arg.(type) {
		case context.Context:
			ctx = v
		case *Options:
			options = v
		}
	}

	return ctx, options
}

func (c *command) flagset(name string) *flag.FlagSet {
	flagset := flag.NewFlagSet(name, flag.ExitOnError)

	flagset.StringVar(&c.credentials, "credentials", c.credentials, "Path for the Google 'credentials.json' file. Defaults to $GOOGLE_APPLICATION_CREDENTIALS")
	flagset.StringVar(&c.workdir, "workdir", c.workdir, "Directory for working files (OAuth2 tokens)")
	flagset.StringVar(&c.url, "url", c.url, "Spreadsheet URL or ID")

	return flagset
}

// setup loads the configuration, initialises logging and fills in any options that
// were not set on the command line.
func (c *command) setup(options *Options) error {
	conf, err := config.Load(options.Config)
	if err != nil {
		return err
	}

	level := conf.Log.Level
	if options.Debug {
		level = "debug"
	}

	if err := logger.Init(level, conf.Log.Format); err != nil {
		return fmt.Errorf("unable to initialise logging (%w)", err)
	}

	if strings.TrimSpace(c.credentials) == "" {
		c.credentials = conf.Credentials
	}

	if strings.TrimSpace(c.workdir) == "" {
		c.workdir = conf.Workdir
	}

	c.debug = options.Debug
	c.conf = conf

	return nil
}

func (c *command) validate() error {
	if strings.TrimSpace(c.credentials) == "" {
		return fmt.Errorf("--credentials is a required option")
	}

	if strings.TrimSpace(c.url) == "" {
		return fmt.Errorf("--url is a required option")
	}

	if _, err := gsheets.SpreadsheetID(c.url); err != nil {
		return err
	}

	return nil
}

func (c *command) console() (*bufio.Reader, io.Writer) {
	if c.in == nil {
		c.in = bufio.NewReader(os.Stdin)
	}

	if c.out == nil {
		c.out = os.Stdout
	}

	return c.in, c.out
}

// open authorises against Google Sheets and opens the spreadsheet identified by --url.
func (c *command) open(ctx context.Context) (xref.Spreadsheet, error) {
	if c.connect != nil {
		return c.connect(ctx)
	}

	id, err := gsheets.SpreadsheetID(c.url)
	if err != nil {
		return nil, err
	}

	logger.Debugf("Spreadsheet - ID:%s  credentials:%s", id, c.credentials)

	in, out := c.console()
	client, err := gsheets.Authorize(ctx, c.credentials, c.workdir, in, out)
	if err != nil {
		return nil, err
	}

	google, err := gsheets.NewClient(ctx, client)
	if err != nil {
		return nil, err
	}

	spreadsheet, err := google.Open(ctx, id)
	if err != nil {
		return nil, err
	}

	return spreadsheet, nil
}

func (c *command) worksheets() xref.Worksheets {
	return xref.Worksheets{
		Appointments: c.conf.Worksheets.Appointments,
		Export:       c.conf.Worksheets.Export,
		Results:      c.conf.Worksheets.Results,
		Size:         c.size(),
	}
}

func (c *command) size() xref.Size {
	return xref.Size{
		Rows:    c.conf.Worksheets.Rows,
		Columns: c.conf.Worksheets.Columns,
	}
}

func prompt(r *bufio.Reader, w io.Writer, msg string) (string, error) {
	fmt.Fprint(w, msg)

	line, err := r.ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		return "", fmt.Errorf("unable to read response (%w)", err)
	}

	return strings.TrimSpace(line), nil
}

func helpOptions(flagset *flag.FlagSet) {
	flagset.VisitAll(func(f *flag.Flag) {
		fmt.Printf("    --%-13s %s\n", f.Name, f.Usage)
	})

	fmt.Println()
	fmt.Println("  Options:")
	fmt.Println()
	fmt.Println("    --debug  Displays internal information for diagnosing errors")
	fmt.Println("    --config Configuration file. Defaults to ghl-sheets.yaml in the current or working directory")
}
