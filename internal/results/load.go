// internal/results/load.go
package results

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ReferenceLogName is the file the reference checker writes per history.
const ReferenceLogName = "result_log.json"

// referenceSkip lists entries that sit beside parameter directories but are not one.
var referenceSkip = map[string]bool{"stats.db": true}

// LoadReference reads <root>/<dataset><suffix>/<params>/hist-<id>/result_log.json
// for every history of one dataset.
func LoadReference(root, dataset, suffix string) (ReferenceSet, error) {
	set := ReferenceSet{}
	seen := map[ExperimentKey]string{}
	err := walkHistories(filepath.Join(root, dataset+suffix), dataset, referenceSkip,
		func(key ExperimentKey, histPath string) error {
			if err := claimKey(seen, key, histPath); err != nil {
				return err
			}
			rec, err := ParseReferenceLog(filepath.Join(histPath, ReferenceLogName))
			if err != nil {
				return err
			}
			set[key] = rec
			return nil
		})
	if err != nil {
		return nil, err
	}
	return set, nil
}

// LoadCompared reads <root>/<dataset>/<params>/hist-<id> log files for one dataset.
func LoadCompared(root, dataset string) (ComparedSet, error) {
	set := ComparedSet{}
	seen := map[ExperimentKey]string{}
	err := walkHistories(filepath.Join(root, dataset), dataset, nil,
		func(key ExperimentKey, histPath string) error {
			if err := claimKey(seen, key, histPath); err != nil {
				return err
			}
			rec, err := ParseComparedLog(histPath)
			if err != nil {
				return err
			}
			set[key] = rec
			return nil
		})
	if err != nil {
		return nil, err
	}
	return set, nil
}

// claimKey records path as the source of key. Directory names such as 5_5_5
// and 005_005_005 parse to the same params, so a second claim is an error.
func claimKey(seen map[ExperimentKey]string, key ExperimentKey, path string) error {
	if prev, ok := seen[key]; ok {
		return &MalformedLogError{
			Path:  path,
			Field: "history key",
			Err:   fmt.Errorf("%s already loaded from %s", key, prev),
		}
	}
	seen[key] = path
	return nil
}

// walkHistories visits every <dir>/<params>/hist-<id> entry in directory order.
// Entries of a params directory without the hist- prefix are ignored.
func walkHistories(dir, dataset string, skip map[string]bool, visit func(ExperimentKey, string) error) error {
	paramDirs, err := os.ReadDir(dir)
	if err != nil {
		return &IOError{Path: dir, Err: err}
	}
	for _, pd := range paramDirs {
		if skip[pd.Name()] {
			continue
		}
		paramPath := filepath.Join(dir, pd.Name())
		params, err := ParseParams(pd.Name())
		if err != nil {
			return &MalformedLogError{Path: paramPath, Field: "parameter directory name", Err: err}
		}
		hists, err := os.ReadDir(paramPath)
		if err != nil {
			return &IOError{Path: paramPath, Err: err}
		}
		for _, h := range hists {
			if !strings.HasPrefix(h.Name(), historyPrefix) {
				continue
			}
			histPath := filepath.Join(paramPath, h.Name())
			id, err := ParseHistoryID(h.Name())
			if err != nil {
				return &MalformedLogError{Path: histPath, Field: "history name", Err: err}
			}
			key := ExperimentKey{Dataset: dataset, Params: params, History: id}
			if err := visit(key, histPath); err != nil {
				return err
			}
		}
	}
	return nil
}

// DatasetEntry is a dataset directory found under the compared root.
type DatasetEntry struct {
	Name         string
	HasReference bool
}

// DiscoverDatasets lists the dataset directories under comparedRoot and
// whether the reference root holds a matching <name><suffix> directory.
func DiscoverDatasets(comparedRoot, referenceRoot, suffix string) ([]DatasetEntry, error) {
	entries, err := os.ReadDir(comparedRoot)
	if err != nil {
		return nil, &IOError{Path: comparedRoot, Err: err}
	}
	var out []DatasetEntry
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		fi, err := os.Stat(filepath.Join(referenceRoot, e.Name()+suffix))
		out = append(out, DatasetEntry{
			Name:         e.Name(),
			HasReference: err == nil && fi.IsDir(),
		})
	}
	return out, nil
}
