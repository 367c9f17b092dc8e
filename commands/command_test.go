package commands

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	uhppoted "github.com/uhppoted/uhppoted-lib/command"
)

var _ = []uhppoted.Command{
	&ReconcileCmd,
	&UploadCmd,
	&CrossReferenceCmd,
	&GetCmd,
	&PutCmd,
	&VersionCmd,
}

func TestUploadFlagSet(t *testing.T) {
	upload := Upload{}

	require.NoError(t, upload.FlagSet().Parse([]string{"--file", "export.csv", "--url", "abc123", "--credentials", "credentials.json"}))

	assert.Equal(t, "export.csv", upload.file)
	assert.Equal(t, "abc123", upload.url)
	assert.Equal(t, "credentials.json", upload.credentials)
}

func TestReconcileFlagSet(t *testing.T) {
	reconcile := Reconcile{}

	require.NoError(t, reconcile.FlagSet().Parse([]string{"--file", "export.csv"}))

	assert.Equal(t, "export.csv", reconcile.file)
	assert.Equal(t, "", reconcile.url)
}

func TestUnpack(t *testing.T) {
	type key struct{}

	ctx := context.WithValue(context.Background(), key{}, "reconcile")
	options := Options{Debug: true}

	c, o := unpack([]any{ctx, &options})
	assert.Equal(t, ctx, c)
	assert.Equal(t, &options, o)

	c, o = unpack(nil)
	assert.NotNil(t, c)
	assert.Equal(t, &Options{}, o)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		cmd   command
		valid bool
	}{
		{command{credentials: "credentials.json", url: "https://docs.google.com/spreadsheets/d/abc123/edit"}, true},
		{command{credentials: "credentials.json", url: "abc123"}, true},
		{command{credentials: "", url: "abc123"}, false},
		{command{credentials: "credentials.json", url: " "}, false},
		{command{credentials: "credentials.json", url: "https://example.com/d/abc123"}, false},
	}

	for _, test := range tests {
		err := test.cmd.validate()
		if test.valid {
			assert.NoError(t, err, "%+v", test.cmd)
		} else {
			assert.Error(t, err, "%+v", test.cmd)
		}
	}
}

func TestPrompt(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader("  export.csv \nlast"))

	v, err := prompt(r, &out, "File: ")
	require.NoError(t, err)
	assert.Equal(t, "export.csv", v)
	assert.Equal(t, "File: ", out.String())

	v, err = prompt(r, &out, "ID: ")
	require.NoError(t, err)
	assert.Equal(t, "last", v)

	_, err = prompt(r, &out, "More: ")
	assert.Error(t, err)
}

func TestReconcileAsk(t *testing.T) {
	var out bytes.Buffer

	cmd := Reconcile{
		command: command{
			in:  bufio.NewReader(strings.NewReader("/tmp/export.csv\nhttps://docs.google.com/spreadsheets/d/abc123\n")),
			out: &out,
		},
	}

	require.NoError(t, cmd.ask())
	assert.Equal(t, "/tmp/export.csv", cmd.file)
	assert.Equal(t, "https://docs.google.com/spreadsheets/d/abc123", cmd.url)
	assert.Contains(t, out.String(), "Enter the path to the new GHL export CSV file: ")
	assert.Contains(t, out.String(), "Enter your Google Spreadsheet ID: ")
}

func TestReconcileAskWithOptions(t *testing.T) {
	var out bytes.Buffer

	cmd := Reconcile{
		command: command{
			url: "abc123",
			in:  bufio.NewReader(strings.NewReader("")),
			out: &out,
		},
		file: "export.csv",
	}

	require.NoError(t, cmd.ask())
	assert.Equal(t, "export.csv", cmd.file)
	assert.Equal(t, "abc123", cmd.url)
	assert.Empty(t, out.String())
}

func TestReconcileAskWithBlankAnswer(t *testing.T) {
	cmd := Reconcile{
		command: command{
			in:  bufio.NewReader(strings.NewReader("\n")),
			out: &bytes.Buffer{},
		},
	}

	assert.Error(t, cmd.ask())
}

func TestReconcileAskLeavesRemainingInput(t *testing.T) {
	cmd := Reconcile{
		command: command{
			in:  bufio.NewReader(strings.NewReader("export.csv\nabc123\n4/authcode\n")),
			out: &bytes.Buffer{},
		},
	}

	require.NoError(t, cmd.ask())

	in, _ := cmd.console()
	code, err := prompt(in, &bytes.Buffer{}, "Code: ")
	require.NoError(t, err)
	assert.Equal(t, "4/authcode", code)
}
