// Command fuzzqueue-inspect is a read-only diagnostic tool for a seed
// queue directory: it reports the normal (on-disk) tier's entry count
// and index range for both a concolic and a rand-fuzz queue rooted at
// the same parent directory. Favored-tier sizes, fingers and
// minimization telemetry are not reported. It never mutates
// queue state - structured the way the teacher's cmd/gk commands are
// (github.com/funkygao/gocli's cli.Command + cli.Ui dispatch plus
// github.com/olekukonko/tablewriter for tabular output and
// github.com/funkygao/golib/color for section headers).
package main

import (
	"fmt"
	"os"

	cli "github.com/funkygao/gocli"
)

func main() {
	ui := &cli.BasicUi{Writer: os.Stdout, ErrorWriter: os.Stderr}

	app := cli.NewCLI("fuzzqueue-inspect", "1.0.0")
	app.Args = os.Args[1:]
	app.Commands = map[string]cli.CommandFactory{
		"inspect": func() (cli.Command, error) {
			return &Inspect{Ui: ui}, nil
		},
	}

	exitCode, err := app.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(exitCode)
}
