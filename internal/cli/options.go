// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"strconv"

	"nwbench/internal/aligner"
	"nwbench/internal/cliutil"
	"nwbench/internal/report"
)

// MaxThreads bounds [threads]. Every worker holds a locked OS thread, and a
// Linux cpu set addresses this many CPUs.
const MaxThreads = 1024

// ErrUsage marks argument errors; the caller prints the usage and exits 2.
var ErrUsage = errors.New("usage error")

// Options holds all CLI flags and arguments.
type Options struct {
	// Positionals
	File    string
	Stride  int // <max_seq_len>
	Pairs   int // <num_alignments>
	Threads int // [threads], default 1

	// Alignment
	Aligner  string
	Alphabet string

	// Pinning
	NoPin bool

	// Output
	Report       string
	ReportFormat string
	MetricsFile  string

	// Misc
	Quiet   bool
	Version bool
}

// ParseArgs registers and parses all flags, then the 3 or 4 positionals.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	fs.StringVar(&opt.Aligner, "aligner", "nw", "alignment backend: nw | null [nw]")
	fs.StringVar(&opt.Alphabet, "alphabet", aligner.DefaultAlphabet, "nw alphabet: ascii | dna | redundant [ascii]")
	fs.BoolVar(&opt.NoPin, "no-pin", false, "do not pin worker threads to CPUs [false]")
	fs.StringVar(&opt.Report, "report", "", "write a run report to this file")
	fs.StringVar(&opt.ReportFormat, "report-format", report.FormatYAML, "run report format: yaml | json [yaml]")
	fs.StringVar(&opt.MetricsFile, "metrics-file", "", "write Prometheus text-format metrics to this file")
	fs.BoolVar(&opt.Quiet, "quiet", false, "suppress warnings [false]")
	fs.BoolVar(&opt.Quiet, "q", false, "alias of --quiet")
	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opt, err
		}
		return opt, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if help {
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	posArgs = append(posArgs, fs.Args()...)

	if len(posArgs) < 3 || len(posArgs) > 4 {
		return opt, fmt.Errorf("%w: expected 3 or 4 arguments, got %d", ErrUsage, len(posArgs))
	}
	opt.File = posArgs[0]
	var err error
	if opt.Stride, err = intArg("max_seq_len", posArgs[1], 1); err != nil {
		return opt, err
	}
	if opt.Pairs, err = intArg("num_alignments", posArgs[2], 0); err != nil {
		return opt, err
	}
	opt.Threads = 1
	if len(posArgs) == 4 {
		if opt.Threads, err = intArg("threads", posArgs[3], 1); err != nil {
			return opt, err
		}
		if opt.Threads > MaxThreads {
			return opt, fmt.Errorf("%w: [threads] must be <= %d, got %d", ErrUsage, MaxThreads, opt.Threads)
		}
	}

	switch opt.ReportFormat {
	case report.FormatYAML, report.FormatJSON:
	default:
		return opt, fmt.Errorf("%w: invalid --report-format %q", ErrUsage, opt.ReportFormat)
	}
	return opt, nil
}

func intArg(name, v string, min int) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: <%s> must be an integer, got %q", ErrUsage, name, v)
	}
	if n < min {
		return 0, fmt.Errorf("%w: <%s> must be >= %d, got %d", ErrUsage, name, min, n)
	}
	return n, nil
}
