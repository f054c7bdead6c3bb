// internal/results/types.go
// Package results parses the logs written by a reference isolation checker
// and by the checker under evaluation, joins them per recorded history and
// aggregates the outcome into confusion matrices and latency buckets.
package results

import (
	"fmt"
	"strconv"
	"strings"
)

// Params describes the workload shape a history was generated with.
type Params struct {
	Vars    int `json:"vars"`
	Txns    int `json:"txns"`
	Events  int `json:"events"`
	Clients int `json:"clients,omitempty"` // 0 when the directory name carries no client count
}

// ParseParams parses a parameter directory name of the form
// <var>_<txn>_<evt> or <var>_<txn>_<evt>_<client>. Leading zeros are allowed.
func ParseParams(name string) (Params, error) {
	parts := strings.Split(name, "_")
	if len(parts) != 3 && len(parts) != 4 {
		return Params{}, fmt.Errorf("parameter name %q: want 3 or 4 fields, got %d", name, len(parts))
	}
	vals := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 {
			return Params{}, fmt.Errorf("parameter name %q: field %d is not a non-negative integer", name, i)
		}
		vals[i] = v
	}
	p := Params{Vars: vals[0], Txns: vals[1], Events: vals[2]}
	if len(vals) == 4 {
		p.Clients = vals[3]
	}
	return p, nil
}

// String renders the tuple the way it is encoded on disk, without padding.
func (p Params) String() string {
	if p.Clients > 0 {
		return fmt.Sprintf("%d_%d_%d_%d", p.Vars, p.Txns, p.Events, p.Clients)
	}
	return fmt.Sprintf("%d_%d_%d", p.Vars, p.Txns, p.Events)
}

// Less orders parameter tuples field by field.
func (p Params) Less(o Params) bool {
	switch {
	case p.Vars != o.Vars:
		return p.Vars < o.Vars
	case p.Txns != o.Txns:
		return p.Txns < o.Txns
	case p.Events != o.Events:
		return p.Events < o.Events
	default:
		return p.Clients < o.Clients
	}
}

const historyPrefix = "hist-"

// ParseHistoryID extracts the numeric id from a "hist-<id>" entry name.
func ParseHistoryID(name string) (int, error) {
	idx := strings.LastIndex(name, "-")
	if idx < 0 || !strings.HasPrefix(name, historyPrefix) {
		return 0, fmt.Errorf("history name %q: want hist-<id>", name)
	}
	id, err := strconv.Atoi(name[idx+1:])
	if err != nil || id < 0 {
		return 0, fmt.Errorf("history name %q: id is not a non-negative integer", name)
	}
	return id, nil
}

// ExperimentKey identifies one history checked by both tools.
type ExperimentKey struct {
	Dataset string `json:"dataset"`
	Params  Params `json:"params"`
	History int    `json:"history"`
}

func (k ExperimentKey) String() string {
	return fmt.Sprintf("%s/%s/hist-%d", k.Dataset, k.Params, k.History)
}

// Bucket returns the aggregation key shared by every history of k.
func (k ExperimentKey) Bucket() BucketKey {
	return BucketKey{Dataset: k.Dataset, Params: k.Params}
}

// BucketKey groups histories of one dataset generated with the same params.
type BucketKey struct {
	Dataset string `json:"dataset"`
	Params  Params `json:"params"`
}

// ReferenceRecord is the outcome of the reference checker for one history.
type ReferenceRecord struct {
	Verdict    Verdict `json:"verdict"`
	Accepted   bool    `json:"accepted"`
	DurationMs float64 `json:"duration_ms"`
}

// ComparedRecord is the outcome of the checker under evaluation for one history.
type ComparedRecord struct {
	Accepted    bool    `json:"accepted"`
	TotalMs     float64 `json:"total_ms"`
	ConstructMs float64 `json:"construct_ms"`
	SolveMs     float64 `json:"solve_ms"`
}

// Pair is a compared record joined with the reference record of the same key.
type Pair struct {
	Key       ExperimentKey
	Reference ReferenceRecord
	Compared  ComparedRecord
}

// ReferenceSet holds reference records keyed by experiment.
type ReferenceSet map[ExperimentKey]ReferenceRecord

// ComparedSet holds compared records keyed by experiment.
type ComparedSet map[ExperimentKey]ComparedRecord
