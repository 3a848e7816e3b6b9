// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"gopkg.in/cheggaaa/pb.v1"

	"github.com/bgruening/nextclade/internal/cli"
	"github.com/bgruening/nextclade/internal/cmdutil"
	"github.com/bgruening/nextclade/internal/dataset"
	"github.com/bgruening/nextclade/internal/input"
	"github.com/bgruening/nextclade/internal/output"
	"github.com/bgruening/nextclade/internal/pipeline"
	"github.com/bgruening/nextclade/internal/version"
	"github.com/bgruening/nextclade/internal/writers"
	"github.com/bgruening/nextclade/pkg/api"
)

const name = "privatemut"

// RunContext is the whole program behind the binary: parse flags, load
// the dataset and queries, fan out the finders, write reports.
// Exit codes: 0 ok, 2 usage/input error, 3 runtime/write error,
// 130 canceled.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	if len(argv) == 0 {
		cli.WriteHelp(name, outw)
		return 0
	}

	opts, err := cli.Parse(name, argv)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	if opts.Help {
		cli.WriteHelp(name, outw)
		return 0
	}
	if opts.Version {
		fmt.Fprintf(outw, "%s version %s\n", name, version.Version)
		return 0
	}

	ds, err := dataset.Load(opts.Dataset)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	recs, err := input.ReadFile(opts.Analysis)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	// Reports go to stdout or to --output.
	w := io.Writer(outw)
	var (
		outFile *os.File
		fileW   *bufio.Writer
	)
	if opts.Output != "-" {
		outFile, err = os.Create(opts.Output)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 3
		}
		fileW = bufio.NewWriter(outFile)
		w = fileW
	}

	thr := opts.Threads
	if thr <= 0 {
		thr = runtime.NumCPU()
	}

	in, writeErr := writers.StartReportWriter(w, opts.Format, !opts.NoHeader, thr*4)

	var bar *pb.ProgressBar
	var progress func()
	if opts.Progress {
		bar = pb.New(len(recs))
		bar.Output = stderr
		bar.Start()
		progress = func() { bar.Increment() }
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	perr := pipeline.ForEachReport(ctx,
		pipeline.Config{Threads: thr, Progress: progress},
		recs,
		func(rec input.Record) (api.ReportV1, error) {
			return output.BuildReport(ds, rec)
		},
		func(rep api.ReportV1) error {
			for _, warn := range rep.Warnings {
				cmdutil.Warnf(stderr, opts.Quiet, "%s: %s", rep.SeqName, warn)
			}
			select {
			case in <- rep:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	)
	close(in)
	if bar != nil {
		bar.Finish()
	}

	if werr := <-writeErr; writers.IsBrokenPipe(werr) {
		return 0
	} else if werr != nil {
		fmt.Fprintln(stderr, werr)
		return 3
	}

	if fileW != nil {
		if e := fileW.Flush(); e != nil {
			fmt.Fprintln(stderr, e)
			return 3
		}
		if e := outFile.Close(); e != nil {
			fmt.Fprintln(stderr, e)
			return 3
		}
	} else if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return 0
	} else if e != nil {
		fmt.Fprintln(stderr, e)
		return 3
	}

	if perr != nil {
		if errors.Is(perr, context.Canceled) {
			return 130
		}
		fmt.Fprintln(stderr, perr)
		return 3
	}
	return 0
}

// Run is RunContext with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
