package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	cli "github.com/funkygao/gocli"
	"github.com/funkygao/golib/color"
	"github.com/olekukonko/tablewriter"
)

// Inspect reports on the concolic and rand-fuzz normal-tier directories
// nested under a queue dir ("concolic/" and "randfuzz/" by convention).
// Unlike the core packages, Inspect never loads a favored-tier snapshot -
// the in-memory tiers require a Seed codec the inspector cannot know, so
// it reports disk-tier state only.
type Inspect struct {
	Ui cli.Ui

	queueDir string
}

func (this *Inspect) Run(args []string) (exitCode int) {
	cmdFlags := flag.NewFlagSet("inspect", flag.ContinueOnError)
	cmdFlags.Usage = func() { this.Ui.Output(this.Help()) }
	cmdFlags.StringVar(&this.queueDir, "dir", "", "queue directory to inspect")
	if err := cmdFlags.Parse(args); err != nil {
		return 1
	}

	if this.queueDir == "" {
		this.Ui.Error("missing -dir")
		return 1
	}

	this.Ui.Output(color.Cyan("fuzzqueue inspect: %s", this.queueDir))

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"loop", "name", "entries", "lower", "upper"})

	for _, loop := range []struct{ name, subdir, queueName string }{
		{"concolic", "concolic", "concolic-seed"},
		{"randfuzz", "randfuzz", "rand-seed"},
	} {
		dir := filepath.Join(this.queueDir, loop.subdir)
		lower, upper, err := scanRange(dir, loop.queueName)
		if err != nil {
			table.Append([]string{loop.name, loop.queueName, "?", "?", fmt.Sprintf("error: %s", err)})
			continue
		}
		table.Append([]string{loop.name, loop.queueName, fmt.Sprintf("%d", upper-lower), fmt.Sprintf("%d", lower), fmt.Sprintf("%d", upper)})
	}

	table.Render()
	return 0
}

// scanRange reimplements the min/max index scan filequeue.Load does,
// without opening the queue (and hence without needing a Seed codec) -
// this tool is a diagnostic, not a participant in the fuzzing loops.
func scanRange(dir, name string) (lower, upper int, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, 0, err
	}

	prefix := name + "-"
	haveAny := false
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		n := e.Name()
		if len(n) <= len(prefix) || n[:len(prefix)] != prefix {
			continue
		}
		var idx int
		if _, scanErr := fmt.Sscanf(n[len(prefix):], "%d", &idx); scanErr != nil {
			continue
		}
		if !haveAny || idx < lower {
			lower = idx
		}
		if !haveAny || idx+1 > upper {
			upper = idx + 1
		}
		haveAny = true
	}
	return lower, upper, nil
}

func (*Inspect) Synopsis() string {
	return "Report seed queue tier sizes for a queue directory"
}

func (this *Inspect) Help() string {
	return "Usage: fuzzqueue-inspect inspect -dir <queue-dir>"
}
