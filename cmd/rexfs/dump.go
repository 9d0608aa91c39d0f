package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type dumpCmd struct {
	app   *app
	width int
}

func (*dumpCmd) Name() string     { return "dump" }
func (*dumpCmd) Synopsis() string { return "Hex dump files" }
func (*dumpCmd) Usage() string {
	return `dump [-width n] <uri>...:
	Print an offset, hex and ASCII listing of each file.
`
}

func (cmd *dumpCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&cmd.width, "width", 0, "bytes per line (default from config, 16)")
}

func (cmd *dumpCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() == 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}

	width := cmd.width
	if width <= 0 {
		width = cmd.app.cfg.DumpWidth
	}

	for i, raw := range f.Args() {
		if f.NArg() > 1 {
			if i > 0 {
				fmt.Fprintln(cmd.app.stdout)
			}
			fmt.Fprintf(cmd.app.stdout, "%s:\n", raw)
		}

		d := newDumper(cmd.app.stdout, width)
		err := cmd.app.stream(ctx, raw, d)
		if cerr := d.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			fmt.Fprintf(cmd.app.stderr, "dump: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}
