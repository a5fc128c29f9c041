// internal/app/app.go
package app

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"nwbench/internal/affinity"
	"nwbench/internal/aligner"
	"nwbench/internal/bench"
	"nwbench/internal/cli"
	"nwbench/internal/cmdutil"
	"nwbench/internal/metrics"
	"nwbench/internal/report"
	"nwbench/internal/seqstore"
	"nwbench/internal/sysinfo"
	"nwbench/internal/version"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitUsage   = 2
	ExitFailure = 3
)

// Env holds the host-facing collaborators. Zero values use the real system.
type Env struct {
	Pinner affinity.Pinner
	Probe  sysinfo.Probe
}

// Run parses argv, loads the sequences, runs the benchmark and prints the
// timing. It returns the process exit code.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunEnv(Env{}, argv, stdout, stderr)
}

func RunEnv(env Env, argv []string, stdout, stderr io.Writer) int {
	if env.Pinner == nil {
		env.Pinner = affinity.System{}
	}
	if env.Probe == nil {
		env.Probe = sysinfo.Host{}
	}

	outw := bufio.NewWriter(stdout)
	code := run(env, argv, outw, stderr)
	if err := outw.Flush(); err != nil && !cmdutil.IsBrokenPipe(err) {
		fmt.Fprintln(stderr, err)
		if code == ExitOK {
			code = ExitFailure
		}
	}
	return code
}

func run(env Env, argv []string, outw *bufio.Writer, stderr io.Writer) int {
	fs := cli.NewFlagSet("nwbench")
	fs.SetOutput(io.Discard)

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			return ExitOK
		}
		fmt.Fprintln(stderr, err)
		fmt.Fprintln(stderr, cli.UsageLine)
		return ExitUsage
	}
	if opts.Version {
		fmt.Fprintf(outw, "nwbench version %s\n", version.Version)
		return ExitOK
	}

	log := cmdutil.NewLogger(stderr, opts.Quiet)

	aln, err := aligner.New(opts.Aligner, opts.Alphabet)
	if err != nil {
		fmt.Fprintln(stderr, err)
		fmt.Fprintln(stderr, cli.UsageLine)
		return ExitUsage
	}

	fmt.Fprintln(outw, "Sequences object:")
	fmt.Fprintf(outw, "\tFile: %s\n", opts.File)
	fmt.Fprintf(outw, "\tSequence length: %d\n", opts.Stride)
	fmt.Fprintf(outw, "\tNumber of alignments: %d\n", opts.Pairs)

	size, err := seqstore.BufferSize(opts.Stride, opts.Pairs)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return ExitFailure
	}
	fmt.Fprintf(outw, "Allocating %dMiB (%s) of memory to store the sequences\n",
		size/(1<<20), humanize.IBytes(uint64(size)))
	if avail, err := env.Probe.AvailableMemory(); err != nil {
		log.WithError(err).Debug("memory probe failed")
	} else if uint64(size) > avail {
		fmt.Fprintf(stderr, "error: %v: need %s, %s available\n",
			seqstore.ErrAllocation, humanize.IBytes(uint64(size)), humanize.IBytes(avail))
		return ExitFailure
	}

	cpus := env.Probe.LogicalCPUs()
	if opts.Threads > cpus {
		log.WithFields(logrus.Fields{"threads": opts.Threads, "cpus": cpus}).
			Warn("more threads than logical CPUs; some workers cannot be pinned")
	}

	store, err := seqstore.Open(opts.File, opts.Stride, opts.Pairs)
	if err != nil {
		if errors.Is(err, seqstore.ErrOpen) {
			fmt.Fprintf(stderr, "Could not open file: %q\n", opts.File)
		} else {
			fmt.Fprintf(stderr, "error: %v\n", err)
		}
		return ExitFailure
	}
	defer store.Release()
	fmt.Fprintf(outw, "Read file in %dms\n", store.ReadDuration().Milliseconds())

	if store.Short() {
		log.WithFields(logrus.Fields{
			"path":     opts.File,
			"lines":    store.Lines(),
			"expected": store.Records(),
		}).Warn("file has fewer lines than requested; missing sequences are empty")
	}
	if n := store.Truncated(); n > 0 {
		log.WithFields(logrus.Fields{"path": opts.File, "lines": n, "max_seq_len": opts.Stride}).
			Warn("lines longer than max_seq_len were truncated")
	}

	pinner := env.Pinner
	if opts.NoPin {
		pinner = affinity.None{}
	}

	started := time.Now()
	sum, err := bench.Run(bench.Options{
		Threads: opts.Threads,
		Source:  store,
		Aligner: aln,
		Pinner:  pinner,
		Log:     log,
		Banner:  outw,
	})
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return ExitFailure
	}
	warnFailures(log, sum)

	fmt.Fprintf(outw, "%d alignments calculated, using %d threads.\n", opts.Pairs, opts.Threads)
	fmt.Fprintf(outw, "Wall time: %dms.\n", sum.Wall.Milliseconds())

	if opts.Report != "" {
		r := report.New(report.Input{
			StartedAt:   started,
			File:        opts.File,
			Aligner:     aln.Name(),
			Stride:      opts.Stride,
			LogicalCPUs: cpus,
			BufferBytes: store.Bytes(),
			LinesRead:   store.Lines(),
			Truncated:   store.Truncated(),
			Read:        store.ReadDuration(),
		}, sum)
		if err := report.WriteFile(opts.Report, r, opts.ReportFormat); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return ExitFailure
		}
	}
	if opts.MetricsFile != "" {
		m := metrics.New(prometheus.Labels{"aligner": aln.Name()})
		m.Observe(sum, store.ReadDuration().Seconds(), store.Bytes())
		if err := m.WriteTextfile(opts.MetricsFile); err != nil {
			fmt.Fprintf(stderr, "error: metrics: %v\n", err)
			return ExitFailure
		}
	}
	return ExitOK
}

// warnFailures flags a run whose wall time covers alignments that did not finish.
func warnFailures(log logrus.FieldLogger, sum bench.Summary) {
	if f := sum.Failed(); f > 0 {
		log.WithFields(logrus.Fields{"failures": f, "pairs": sum.Pairs}).
			Warn("alignment calls returned errors; wall time includes incomplete alignments")
	}
}
