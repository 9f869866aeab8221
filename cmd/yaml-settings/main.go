// Command yaml-settings prints the version of the yaml-settings library.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	yamlsettings "github.com/0xalexb/yaml-settings"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("yaml-settings", flag.ContinueOnError)
	flags.SetOutput(stderr)

	var version bool

	flags.BoolVar(&version, "v", false, "print the version and exit")
	flags.BoolVar(&version, "version", false, "print the version and exit")

	err := flags.Parse(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}

		return 2
	}

	if version {
		fmt.Fprintln(stdout, yamlsettings.VersionString())
	}

	return 0
}
