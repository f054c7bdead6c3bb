// internal/results/parse.go
package results

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Source tags which tool wrote a log file.
type Source int

const (
	SourceReference Source = iota
	SourceCompared
)

func (s Source) String() string {
	switch s {
	case SourceReference:
		return "reference"
	case SourceCompared:
		return "compared"
	default:
		return fmt.Sprintf("Source(%d)", int(s))
	}
}

// AcceptSentinel is the last line the compared checker prints for an accepted history.
const AcceptSentinel = "[[[[ ACCEPT ]]]]"

// Timing markers printed by the compared checker, one per phase.
const (
	MarkerTotal            = "ENTIRE_EXPERIMENT"
	MarkerOneshotConstruct = "ONESHOT_CONS"
	MarkerVerifyInternal   = "SI_VERIFY_INT"
	MarkerPrecedenceGraph  = "SI_GEN_PREC_GRAPH"
	MarkerConstraints      = "SI_GEN_CONSTRAINTS"
	MarkerSolve            = "ONESHOT_SOLVE"
)

// constructMarkers are summed into ComparedRecord.ConstructMs.
var constructMarkers = []string{
	MarkerOneshotConstruct,
	MarkerVerifyInternal,
	MarkerPrecedenceGraph,
	MarkerConstraints,
}

var markerPatterns = func() map[string]*regexp.Regexp {
	m := make(map[string]*regexp.Regexp)
	for _, name := range append([]string{MarkerTotal, MarkerSolve}, constructMarkers...) {
		m[name] = regexp.MustCompile(`^` + regexp.QuoteMeta(name) + `: (\d+)ms`)
	}
	return m
}()

// Record is the result of ParseLog; exactly one field is set, matching Source.
type Record struct {
	Source    Source
	Reference *ReferenceRecord
	Compared  *ComparedRecord
}

// ParseLog parses path as a log written by the given source.
func ParseLog(path string, kind Source) (Record, error) {
	switch kind {
	case SourceReference:
		r, err := ParseReferenceLog(path)
		if err != nil {
			return Record{}, err
		}
		return Record{Source: kind, Reference: &r}, nil
	case SourceCompared:
		r, err := ParseComparedLog(path)
		if err != nil {
			return Record{}, err
		}
		return Record{Source: kind, Compared: &r}, nil
	default:
		return Record{}, fmt.Errorf("parse %s: unknown source %s", path, kind)
	}
}

// referenceLine is the final structured log entry of the reference checker.
type referenceLine struct {
	MinViolation *string  `json:"minViolation"`
	Duration     *float64 `json:"duration"`
}

// ParseReferenceLog reads the last non-blank line of a JSON-lines log.
// Duration is reported in seconds and returned in milliseconds.
func ParseReferenceLog(path string) (ReferenceRecord, error) {
	lines, err := readLines(path)
	if err != nil {
		return ReferenceRecord{}, err
	}
	last := ""
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.TrimSpace(lines[i]) != "" {
			last = lines[i]
			break
		}
	}
	if last == "" {
		return ReferenceRecord{}, &MalformedLogError{Path: path, Field: "result line"}
	}

	var line referenceLine
	if err := json.Unmarshal([]byte(last), &line); err != nil {
		return ReferenceRecord{}, &MalformedLogError{Path: path, Field: "result line", Err: err}
	}
	if line.MinViolation == nil {
		return ReferenceRecord{}, &MalformedLogError{Path: path, Field: "minViolation"}
	}
	if line.Duration == nil {
		return ReferenceRecord{}, &MalformedLogError{Path: path, Field: "duration"}
	}
	verdict, err := ParseVerdict(*line.MinViolation)
	if err != nil {
		return ReferenceRecord{}, &MalformedLogError{Path: path, Field: "minViolation", Err: err}
	}

	return ReferenceRecord{
		Verdict:    verdict,
		Accepted:   verdict.Accepted(),
		DurationMs: *line.Duration * 1000,
	}, nil
}

// ParseComparedLog extracts phase timings and the verdict from a free-text
// checker log. Every marker is required.
func ParseComparedLog(path string) (ComparedRecord, error) {
	lines, err := readLines(path)
	if err != nil {
		return ComparedRecord{}, err
	}

	get := func(marker string) (float64, error) {
		re := markerPatterns[marker]
		for _, l := range lines {
			if m := re.FindStringSubmatch(l); m != nil {
				v, err := strconv.ParseFloat(m[1], 64)
				if err != nil {
					return 0, &MalformedLogError{Path: path, Field: marker, Err: err}
				}
				return v, nil
			}
		}
		return 0, &MalformedLogError{Path: path, Field: marker}
	}

	var rec ComparedRecord
	if rec.TotalMs, err = get(MarkerTotal); err != nil {
		return ComparedRecord{}, err
	}
	for _, m := range constructMarkers {
		v, err := get(m)
		if err != nil {
			return ComparedRecord{}, err
		}
		rec.ConstructMs += v
	}
	if rec.SolveMs, err = get(MarkerSolve); err != nil {
		return ComparedRecord{}, err
	}
	rec.Accepted = strings.TrimRight(lines[len(lines)-1], "\r\n") == AcceptSentinel
	return rec, nil
}

// readLines returns the lines of path with their terminators kept, like
// reading a text file line by line. A trailing newline does not produce an
// extra empty line.
func readLines(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	lines := strings.SplitAfter(string(b), "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}
