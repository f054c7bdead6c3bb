// internal/results/run.go
package results

import (
	"fmt"
	"io"
	"log"

	"github.com/mwiater/isoeval/internal/config"
)

// EvaluateDataset loads both corpora of one dataset, joins and aggregates them.
func EvaluateDataset(cfg config.Config, dataset string, logger *log.Logger) (DatasetReport, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	compared, err := LoadCompared(cfg.ComparedRoot, dataset)
	if err != nil {
		return DatasetReport{}, err
	}
	logger.Printf("%s: %d compared-tool histories", dataset, len(compared))

	reference, err := LoadReference(cfg.ReferenceRoot, dataset, cfg.ReferenceSuffix)
	if err != nil {
		return DatasetReport{}, err
	}
	logger.Printf("%s: %d reference-tool histories", dataset, len(reference))

	pairs, err := Join(dataset, compared, reference)
	if err != nil {
		return DatasetReport{}, err
	}
	return Aggregate(dataset, pairs), nil
}

// Evaluate builds a report for every configured dataset, in order. The first
// failing dataset aborts the evaluation.
func Evaluate(cfg config.Config, logger *log.Logger) ([]DatasetReport, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	reports := make([]DatasetReport, 0, len(cfg.Datasets))
	for _, ds := range cfg.Datasets {
		r, err := EvaluateDataset(cfg, ds, logger)
		if err != nil {
			return nil, fmt.Errorf("dataset %s: %w", ds, err)
		}
		reports = append(reports, r)
	}
	return reports, nil
}

// Write renders the confusion matrix of every report and, when verbose, the
// latency tables.
func Write(w io.Writer, reports []DatasetReport, verbose bool) error {
	for _, r := range reports {
		if err := WriteConfusion(w, r); err != nil {
			return err
		}
	}
	if verbose {
		return WriteLatency(w, reports)
	}
	return nil
}

// Run evaluates every dataset and only then writes the tables, so a failure
// leaves w untouched.
func Run(cfg config.Config, w io.Writer, logger *log.Logger) error {
	reports, err := Evaluate(cfg, logger)
	if err != nil {
		return err
	}
	return Write(w, reports, cfg.Verbose)
}
