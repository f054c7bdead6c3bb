// internal/results/verdict.go
package results

import "fmt"

// Verdict is the minimal isolation level the reference checker found violated,
// or VerdictOK when the history satisfied every level it checked.
type Verdict int

const (
	VerdictOK Verdict = iota
	VerdictReadCommitted
	VerdictRepeatableRead
	VerdictReadAtomic
	VerdictCausal
	VerdictPrefix
	VerdictSnapshotIsolation
	VerdictSerializable
	VerdictInc
)

var verdictNames = [...]string{
	VerdictOK:                "ok",
	VerdictReadCommitted:     "ReadCommitted",
	VerdictRepeatableRead:    "RepeatableRead",
	VerdictReadAtomic:        "ReadAtomic",
	VerdictCausal:            "Causal",
	VerdictPrefix:            "Prefix",
	VerdictSnapshotIsolation: "SnapshotIsolation",
	VerdictSerializable:      "Serializable",
	VerdictInc:               "Inc",
}

// ParseVerdict maps a minViolation spelling onto a Verdict. Matching is exact.
func ParseVerdict(s string) (Verdict, error) {
	for v, name := range verdictNames {
		if name == s {
			return Verdict(v), nil
		}
	}
	return 0, fmt.Errorf("unknown verdict %q", s)
}

func (v Verdict) String() string {
	if v < 0 || int(v) >= len(verdictNames) {
		return fmt.Sprintf("Verdict(%d)", int(v))
	}
	return verdictNames[v]
}

// Accepted reports whether the history satisfies snapshot isolation: either no
// violation was found or the weakest violated level is serializability.
func (v Verdict) Accepted() bool {
	return v == VerdictOK || v == VerdictSerializable
}

func (v Verdict) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v *Verdict) UnmarshalText(b []byte) error {
	parsed, err := ParseVerdict(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
