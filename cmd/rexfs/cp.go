package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/rexfs"
)

type cpCmd struct {
	app   *app
	stats bool
}

func (*cpCmd) Name() string     { return "cp" }
func (*cpCmd) Synopsis() string { return "Copy files between backends" }
func (*cpCmd) Usage() string {
	return `cp [-stats] <src-uri>... <dst-uri>:
	Copy files. With several sources, or a destination ending in "/",
	the destination is a directory and each file keeps its base name.

	Copies run in parallel, bounded by the parallelism setting.
`
}

func (cmd *cpCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&cmd.stats, "stats", false, "print transfer statistics to stderr")
}

type copyJob struct {
	src, dst location
}

func (cmd *cpCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() < 2 {
		f.Usage()
		return subcommands.ExitUsageError
	}

	jobs, err := cmd.app.planCopies(f.Args())
	if err != nil {
		fmt.Fprintf(cmd.app.stderr, "cp: %v\n", err)
		return subcommands.ExitUsageError
	}

	if err := cmd.app.copyAll(ctx, jobs); err != nil {
		fmt.Fprintf(cmd.app.stderr, "cp: %v\n", err)
		return subcommands.ExitFailure
	}

	if cmd.stats {
		s := cmd.app.metrics.GetStats()
		fmt.Fprintf(cmd.app.stderr, "read %d bytes in %d calls, wrote %d bytes in %d calls\n",
			s.ReadBytes, s.ReadCalls, s.WriteBytes, s.WriteCalls)
	}
	return subcommands.ExitSuccess
}

// planCopies maps each source to its target. A source copied onto itself
// and two sources sharing a target are rejected.
func (a *app) planCopies(args []string) ([]copyJob, error) {
	dst, err := parseLocation(args[len(args)-1])
	if err != nil {
		return nil, err
	}
	srcArgs := args[:len(args)-1]

	jobs := make([]copyJob, 0, len(srcArgs))
	targets := make(map[string]string, len(srcArgs))
	for _, raw := range srcArgs {
		src, err := parseLocation(raw)
		if err != nil {
			return nil, err
		}
		if src.isDir() {
			return nil, fmt.Errorf("%w: %q: source must name a file", errBadLocation, raw)
		}

		target := dst
		if len(srcArgs) > 1 || dst.isDir() {
			target = dst.join(src.base())
		}

		if a.sameFile(src, target) {
			return nil, fmt.Errorf("%w: %q: source and destination are the same file", errBadLocation, raw)
		}
		id := a.identity(target)
		if prev, ok := targets[id]; ok {
			return nil, fmt.Errorf("%w: %q and %q both copy to %s", errBadLocation, prev, raw, target)
		}
		targets[id] = raw

		jobs = append(jobs, copyJob{src: src, dst: target})
	}
	return jobs, nil
}

func (a *app) copyAll(ctx context.Context, jobs []copyJob) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.Parallelism)

	for _, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			src, err := a.resolve(ctx, job.src)
			if err != nil {
				return err
			}
			dst, err := a.resolve(ctx, job.dst)
			if err != nil {
				return err
			}

			n, err := rexfs.CopyAs(dst, job.dst.Name, src, job.src.Name)
			if err != nil {
				return fmt.Errorf("%s -> %s: %w", job.src, job.dst, err)
			}
			a.logger.InfoContext(ctx, "copied",
				"src", job.src.String(),
				"dst", job.dst.String(),
				"bytes", n,
			)
			return nil
		})
	}
	return g.Wait()
}
