// internal/results/errors.go
package results

import (
	"errors"
	"fmt"
)

// ErrNoRecords is returned when a dataset has no compared-tool histories.
var ErrNoRecords = errors.New("no compared-tool records")

// MalformedLogError reports a log file or directory entry that lacks an
// expected field, marker or name pattern.
type MalformedLogError struct {
	Path  string
	Field string
	Err   error
}

func (e *MalformedLogError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed log %s: %s: %v", e.Path, e.Field, e.Err)
	}
	return fmt.Sprintf("malformed log %s: missing %s", e.Path, e.Field)
}

func (e *MalformedLogError) Unwrap() error { return e.Err }

// MissingJoinRecordError reports a compared-tool history with no reference
// record under the same key.
type MissingJoinRecordError struct {
	Key ExperimentKey
}

func (e *MissingJoinRecordError) Error() string {
	return fmt.Sprintf("no reference record for %s", e.Key)
}

// IOError wraps a filesystem failure with the path that caused it.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
