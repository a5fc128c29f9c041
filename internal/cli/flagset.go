package cli

import (
	"flag"
	"fmt"

	"nwbench/internal/version"
)

// UsageLine is the positional synopsis printed on argument errors.
const UsageLine = "Usage:\nnwbench [flags] <file> <max_seq_len> <num_alignments> [threads=1]"

// NewFlagSet returns a ContinueOnError FlagSet whose Usage prints the
// synopsis followed by the flag defaults.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		out := fs.Output()
		fmt.Fprintf(out, "%s: pinned-thread global alignment benchmark\n\n", name)
		fmt.Fprintf(out, "Version: %s\n\n", version.Version)
		fmt.Fprintln(out, UsageLine)
		fmt.Fprintln(out, "\nInput file: one sequence per line, each line starting with a one-byte")
		fmt.Fprintln(out, "marker ('>' query, '<' target) that is discarded; queries and targets alternate.")
		fmt.Fprintln(out, "\nFlags:")
		fs.PrintDefaults()
	}
	return fs
}
