package commands

import (
	uhppoted "github.com/uhppoted/uhppoted-lib/command"
)

const VERSION = "v0.1.0"

// VersionCmd is an initialized Version command for the main() command list
var VersionCmd = uhppoted.Version{
	Application: APP,
	Version:     VERSION,
}
