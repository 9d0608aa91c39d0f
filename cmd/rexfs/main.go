// Command rexfs inspects and copies files across rexfs backends.
//
//	rexfs [-config rexfs.yaml] [-v] cat <uri>...
//	rexfs [-config rexfs.yaml] dump [-width n] <uri>...
//	rexfs [-config rexfs.yaml] cp [-stats] <src-uri>... <dst-uri>
//
// A URI is a bare path or file:///path for the host filesystem, or
// <type>://<backend>/<key> for a backend named in the config file.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/mattn/go-isatty"

	"github.com/hupe1980/rexfs/internal/config"
)

func main() {
	configPath := flag.String("config", "", "YAML backend configuration")
	verbose := flag.Bool("v", false, "debug logging")

	a := newApp(os.Stdout, os.Stderr)
	a.isTerminal = stdoutIsTerminal

	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(&catCmd{app: a}, "")
	subcommands.Register(&dumpCmd{app: a}, "")
	subcommands.Register(&cpCmd{app: a}, "")

	flag.Parse()

	cfg := config.Defaults()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(int(subcommands.ExitUsageError))
		}
	}
	if *verbose {
		cfg.LogLevel = "debug"
	}

	logger, err := newLogger(cfg, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(int(subcommands.ExitUsageError))
	}
	a.configure(cfg, logger)

	os.Exit(int(subcommands.Execute(context.Background())))
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
