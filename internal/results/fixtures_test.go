package results

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// comparedLog renders a compared-tool log with every timing marker.
func comparedLog(totalMs int, accepted bool) string {
	last := "[[[[ REJECT ]]]]"
	if accepted {
		last = AcceptSentinel
	}
	return strings.Join([]string{
		"loading history",
		fmt.Sprintf("ENTIRE_EXPERIMENT: %dms", totalMs),
		"ONESHOT_CONS: 10ms",
		"SI_VERIFY_INT: 20ms",
		"SI_GEN_PREC_GRAPH: 30ms",
		"SI_GEN_CONSTRAINTS: 40ms",
		"ONESHOT_SOLVE: 500ms",
		last,
	}, "\n") + "\n"
}

// referenceLog renders a reference-tool JSON-lines log.
func referenceLog(minViolation string, seconds float64) string {
	return `{"msg":"start","level":"INFO"}` + "\n" +
		fmt.Sprintf(`{"msg":"the algorithm finished","model":"SnapshotIsolation","sat":false,"duration":%v,"minViolation":%q}`, seconds, minViolation) + "\n"
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// history describes one fixture history present in both corpora.
type history struct {
	params       string
	id           int
	minViolation string
	refSeconds   float64
	cmpMs        int
	cmpAccepted  bool
}

// writeCorpus lays out both log trees for dataset and returns their roots.
func writeCorpus(t *testing.T, dataset string, hists []history) (refRoot, cmpRoot string) {
	t.Helper()
	base := t.TempDir()
	refRoot = filepath.Join(base, "reference")
	cmpRoot = filepath.Join(base, "compared")
	for _, h := range hists {
		hist := fmt.Sprintf("hist-%d", h.id)
		writeFile(t, filepath.Join(refRoot, dataset+"_inc", h.params, hist, ReferenceLogName), referenceLog(h.minViolation, h.refSeconds))
		writeFile(t, filepath.Join(cmpRoot, dataset, h.params, hist), comparedLog(h.cmpMs, h.cmpAccepted))
	}
	return refRoot, cmpRoot
}
