// ./internal/arch/arch_test.go
package arch

import (
	"bytes"
	"encoding/json"
	"io"
	"os/exec"
	"strings"
	"testing"
)

type pkg struct {
	ImportPath string
	Imports    []string
	Standard   bool
}

// leaves hold the measured data and must stay free of harness concerns.
var leaves = []string{
	"nwbench/internal/seqstore",
	"nwbench/internal/partition",
	"nwbench/internal/aligner",
	"nwbench/internal/affinity",
}

var outer = []string{
	"nwbench/internal/app", "nwbench/internal/cli",
	"nwbench/internal/metrics", "nwbench/internal/report",
	"nwbench/cmd/",
}

func TestImportBoundaries(t *testing.T) {
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go tool not on PATH")
	}
	cmd := exec.Command("go", "list", "-json", "nwbench/...")
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		t.Fatalf("go list: %v", err)
	}
	dec := json.NewDecoder(&out)

	bans := map[string][]string{
		"nwbench/internal/bench": outer,
	}
	bans["nwbench/internal/report"] = []string{"nwbench/internal/app", "nwbench/internal/cli", "nwbench/internal/metrics", "nwbench/cmd/"}
	bans["nwbench/internal/metrics"] = []string{"nwbench/internal/app", "nwbench/internal/cli", "nwbench/internal/report", "nwbench/cmd/"}
	for _, leaf := range leaves {
		bans[leaf] = append([]string{"nwbench/internal/bench"}, outer...)
	}

	var violations []string
	for {
		var p pkg
		if err := dec.Decode(&p); err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !strings.HasPrefix(p.ImportPath, "nwbench/") {
			continue
		}
		forbidden, ok := bans[p.ImportPath]
		if !ok {
			continue
		}
		for _, dep := range p.Imports {
			for _, ban := range forbidden {
				if strings.HasPrefix(dep, ban) {
					violations = append(violations, p.ImportPath+" → "+dep)
				}
			}
		}
	}

	if len(violations) > 0 {
		t.Fatalf("import boundary violations:\n  %s", strings.Join(violations, "\n  "))
	}
}

func TestLeavesDoNotImportEachOther(t *testing.T) {
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go tool not on PATH")
	}
	for _, leaf := range leaves {
		out, err := exec.Command("go", "list", "-f", `{{join .Imports "\n"}}`, leaf).Output()
		if err != nil {
			t.Fatalf("go list %s: %v", leaf, err)
		}
		for _, dep := range strings.Split(strings.TrimSpace(string(out)), "\n") {
			for _, other := range leaves {
				if dep == other {
					t.Errorf("%s imports %s", leaf, other)
				}
			}
		}
	}
}
