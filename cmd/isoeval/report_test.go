// cmd/isoeval/report_test.go
package isoeval

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mwiater/isoeval/internal/config"
)

// writeFixture lays out one history of dataset "x" in both log trees.
func writeFixture(t *testing.T, base string, hist int, minViolation string, accepted bool) {
	t.Helper()
	last := "[[[[ REJECT ]]]]"
	if accepted {
		last = "[[[[ ACCEPT ]]]]"
	}
	files := map[string]string{
		filepath.Join(base, "reference", "x_inc", "005_005_005", fmt.Sprintf("hist-%d", hist), "result_log.json"): fmt.Sprintf("{\"duration\":1.2,\"minViolation\":%q}\n", minViolation),
		filepath.Join(base, "compared", "x", "005_005_005", fmt.Sprintf("hist-%d", hist)): "ENTIRE_EXPERIMENT: 1000ms\nONESHOT_CONS: 1ms\nSI_VERIFY_INT: 1ms\nSI_GEN_PREC_GRAPH: 1ms\nSI_GEN_CONSTRAINTS: 1ms\nONESHOT_SOLVE: 1ms\n" + last + "\n",
	}
	for path, content := range files {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
	}
}

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	b := new(bytes.Buffer)
	rootCmd.SetOut(b)
	rootCmd.SetErr(b)
	rootCmd.SetArgs(args)
	_, err := rootCmd.ExecuteC()
	return b.String(), err
}

func TestReportCmd(t *testing.T) {
	base := t.TempDir()
	writeFixture(t, base, 0, "SnapshotIsolation", false)
	writeFixture(t, base, 1, "ok", false)
	writeFixture(t, base, 2, "ok", true)

	out, err := runRoot(t, "report",
		"--reference-root", filepath.Join(base, "reference"),
		"--compared-root", filepath.Join(base, "compared"),
		"--datasets", "x")
	if err != nil {
		t.Fatalf("report failed: %v\n%s", err, out)
	}
	want := "\nx\n||True|False|\n|-|-|-|\n|Positive|1|1|\n|Negative|1|0|\n"
	if out != want {
		t.Fatalf("unexpected report:\nwant %q\ngot  %q", want, out)
	}

	// A history without a reference log fails the run and prints no table
	if err := os.Remove(filepath.Join(base, "reference", "x_inc", "005_005_005", "hist-2", "result_log.json")); err != nil {
		t.Fatalf("remove: %v", err)
	}
	out, err = runRoot(t, "report")
	if err == nil {
		t.Fatal("expected an error for a missing reference log")
	}
	if strings.Contains(out, "|Positive|") {
		t.Fatalf("expected no table on failure, got %q", out)
	}
}

func TestReportCmd_UsesLoadedConfig(t *testing.T) {
	original := loadConfig
	defer func() { loadConfig = original }()

	base := t.TempDir()
	writeFixture(t, base, 0, "ok", true)
	loadConfig = func() (config.Config, error) {
		return config.Config{
			ReferenceRoot:   filepath.Join(base, "reference"),
			ComparedRoot:    filepath.Join(base, "compared"),
			Datasets:        []string{"x"},
			ReferenceSuffix: "_inc",
			Verbose:         true,
		}, nil
	}

	b := new(bytes.Buffer)
	reportCmd.SetOut(b)
	defer reportCmd.SetOut(nil)
	if err := reportCmd.RunE(reportCmd, nil); err != nil {
		t.Fatalf("report failed: %v", err)
	}
	if !strings.Contains(b.String(), "|Negative|1|0|") || !strings.Contains(b.String(), "| x | 5_5_5 | 1 |") {
		t.Fatalf("expected confusion matrix and latency tables, got %q", b.String())
	}
}

func TestViewCmd(t *testing.T) {
	originalLoad, originalStart := loadConfig, startBrowser
	defer func() { loadConfig, startBrowser = originalLoad, originalStart }()

	loadConfig = func() (config.Config, error) {
		return config.Config{ReferenceRoot: "r", ComparedRoot: "c", Datasets: []string{"x"}}, nil
	}
	var received config.Config
	startBrowser = func(cfg config.Config, logger *log.Logger) error {
		received = cfg
		return nil
	}

	if err := viewCmd.RunE(viewCmd, nil); err != nil {
		t.Fatalf("view failed: %v", err)
	}
	if received.ComparedRoot != "c" {
		t.Fatalf("expected config to reach the browser, got %+v", received)
	}
}

func TestListDatasets(t *testing.T) {
	base := t.TempDir()
	writeFixture(t, base, 0, "ok", true)
	if err := os.MkdirAll(filepath.Join(base, "compared", "orphan"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	var buf bytes.Buffer
	err := listDatasets(&buf, config.Config{
		ReferenceRoot:   filepath.Join(base, "reference"),
		ComparedRoot:    filepath.Join(base, "compared"),
		Datasets:        []string{"x"},
		ReferenceSuffix: "_inc",
	})
	if err != nil {
		t.Fatalf("list datasets: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "orphan (NO REFERENCE LOGS)") || !strings.Contains(out, "x (SELECTED)") {
		t.Fatalf("unexpected listing: %q", out)
	}
}
