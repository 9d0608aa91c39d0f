package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/google/subcommands"
)

type catCmd struct {
	app *app
	raw bool
}

func (*catCmd) Name() string     { return "cat" }
func (*catCmd) Synopsis() string { return "Write file contents to stdout" }
func (*catCmd) Usage() string {
	return `cat [-raw] <uri>...:
	Concatenate files to stdout.

	When stdout is a terminal the output is shown as a hex dump
	unless -raw is given.
`
}

func (cmd *catCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&cmd.raw, "raw", false, "write raw bytes even to a terminal")
}

func (cmd *catCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() == 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}

	out := cmd.app.stdout
	if !cmd.raw && cmd.app.isTerminal() {
		d := newDumper(out, cmd.app.cfg.DumpWidth)
		defer d.Close()
		out = d
	}

	for _, raw := range f.Args() {
		if err := cmd.app.stream(ctx, raw, out); err != nil {
			fmt.Fprintf(cmd.app.stderr, "cat: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}

// stream copies the file at raw into w.
func (a *app) stream(ctx context.Context, raw string, w io.Writer) (err error) {
	loc, err := parseLocation(raw)
	if err != nil {
		return err
	}
	fsys, err := a.resolve(ctx, loc)
	if err != nil {
		return err
	}

	in, err := fsys.Open(loc.Name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := in.Close(); err == nil {
			err = cerr
		}
	}()

	_, err = io.Copy(w, in)
	return err
}
