// Package report builds a machine-readable summary of a run.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"nwbench/internal/bench"
)

const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Report is one benchmark run. Durations are in milliseconds.
type Report struct {
	RunID       string    `yaml:"run_id" json:"run_id"`
	StartedAt   time.Time `yaml:"started_at" json:"started_at"`
	File        string    `yaml:"file" json:"file"`
	Aligner     string    `yaml:"aligner" json:"aligner"`
	Stride      int       `yaml:"max_seq_len" json:"max_seq_len"`
	Pairs       int       `yaml:"num_alignments" json:"num_alignments"`
	Threads     int       `yaml:"threads" json:"threads"`
	LogicalCPUs int       `yaml:"logical_cpus" json:"logical_cpus"`
	BufferBytes int       `yaml:"buffer_bytes" json:"buffer_bytes"`
	LinesRead   int       `yaml:"lines_read" json:"lines_read"`
	Truncated   int       `yaml:"truncated_lines" json:"truncated_lines"`
	ReadMS      float64   `yaml:"read_ms" json:"read_ms"`
	WallMS      float64   `yaml:"wall_ms" json:"wall_ms"`
	Failures    int       `yaml:"failures" json:"failures"`
	Workers     []Worker  `yaml:"workers" json:"workers"`
}

type Worker struct {
	TID       int     `yaml:"tid" json:"tid"`
	CPU       int     `yaml:"cpu" json:"cpu"`
	Lo        int     `yaml:"lo" json:"lo"`
	Hi        int     `yaml:"hi" json:"hi"`
	Processed int     `yaml:"processed" json:"processed"`
	Failed    int     `yaml:"failed" json:"failed"`
	Pinned    bool    `yaml:"pinned" json:"pinned"`
	PinError  string  `yaml:"pin_error,omitempty" json:"pin_error,omitempty"`
	ElapsedMS float64 `yaml:"elapsed_ms" json:"elapsed_ms"`
}

// Input carries the run facts that are not part of bench.Summary.
type Input struct {
	StartedAt   time.Time
	File        string
	Aligner     string
	Stride      int
	LogicalCPUs int
	BufferBytes int
	LinesRead   int
	Truncated   int
	Read        time.Duration
}

// New assembles a report with a fresh run ID.
func New(in Input, sum bench.Summary) Report {
	r := Report{
		RunID:       uuid.NewString(),
		StartedAt:   in.StartedAt.UTC(),
		File:        in.File,
		Aligner:     in.Aligner,
		Stride:      in.Stride,
		Pairs:       sum.Pairs,
		Threads:     sum.Threads,
		LogicalCPUs: in.LogicalCPUs,
		BufferBytes: in.BufferBytes,
		LinesRead:   in.LinesRead,
		Truncated:   in.Truncated,
		ReadMS:      ms(in.Read),
		WallMS:      ms(sum.Wall),
		Failures:    sum.Failed(),
		Workers:     make([]Worker, 0, len(sum.Workers)),
	}
	for _, w := range sum.Workers {
		r.Workers = append(r.Workers, Worker{
			TID: w.TID, CPU: w.CPU, Lo: w.Lo, Hi: w.Hi,
			Processed: w.Processed, Failed: w.Failed,
			Pinned: w.Pinned, PinError: w.PinError,
			ElapsedMS: ms(w.Elapsed),
		})
	}
	return r
}

func ms(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }

// Encode writes r to w in the given format.
func Encode(w io.Writer, r Report, format string) error {
	switch format {
	case FormatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	default:
		return fmt.Errorf("report: unknown format %q", format)
	}
}

// WriteFile encodes r to path, replacing any existing file.
func WriteFile(path string, r Report, format string) error {
	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	if err := Encode(fh, r, format); err != nil {
		fh.Close()
		return fmt.Errorf("report %s: %w", path, err)
	}
	return fh.Close()
}
