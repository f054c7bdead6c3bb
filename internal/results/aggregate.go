// internal/results/aggregate.go
package results

import "sort"

// ConfusionMatrix counts compared-tool verdicts against reference verdicts.
// The positive class is "the compared tool rejected the history".
type ConfusionMatrix struct {
	TruePos  int `json:"true_pos"`
	FalsePos int `json:"false_pos"`
	TrueNeg  int `json:"true_neg"`
	FalseNeg int `json:"false_neg"`
}

// Total is the number of classified pairs.
func (c ConfusionMatrix) Total() int {
	return c.TruePos + c.FalsePos + c.TrueNeg + c.FalseNeg
}

// Classify records one pair of verdicts.
func (c *ConfusionMatrix) Classify(comparedAccepted, referenceAccepted bool) {
	switch {
	case !comparedAccepted && !referenceAccepted:
		c.TruePos++
	case !comparedAccepted && referenceAccepted:
		c.FalsePos++
	case comparedAccepted && referenceAccepted:
		c.TrueNeg++
	default:
		c.FalseNeg++
	}
}

// Bucket accumulates the histories of one (dataset, params) key.
type Bucket struct {
	Key         BucketKey `json:"key"`
	N           int       `json:"n"`
	ReferenceMs float64   `json:"reference_ms"`
	ComparedMs  float64   `json:"compared_ms"`
	ConstructMs float64   `json:"construct_ms"`
	SolveMs     float64   `json:"solve_ms"`
	RejectedN   int       `json:"rejected_n"`
	RejectedMs  float64   `json:"rejected_ms"`

	comparedSamples []float64
}

// MeanReference is the average reference-tool time in milliseconds.
func (b *Bucket) MeanReference() (float64, bool) { return mean(b.ReferenceMs, b.N) }

// MeanCompared is the average compared-tool time in milliseconds.
func (b *Bucket) MeanCompared() (float64, bool) { return mean(b.ComparedMs, b.N) }

// MeanConstruct is the average constraint-construction time in milliseconds.
func (b *Bucket) MeanConstruct() (float64, bool) { return mean(b.ConstructMs, b.N) }

// MeanSolve is the average solver time in milliseconds.
func (b *Bucket) MeanSolve() (float64, bool) { return mean(b.SolveMs, b.N) }

// MeanRejected averages compared-tool time over the histories it rejected.
func (b *Bucket) MeanRejected() (float64, bool) { return mean(b.RejectedMs, b.RejectedN) }

// MeanAccepted averages compared-tool time over the histories it accepted.
func (b *Bucket) MeanAccepted() (float64, bool) {
	return mean(b.ComparedMs-b.RejectedMs, b.N-b.RejectedN)
}

// AcceptedN is the number of histories the compared tool accepted.
func (b *Bucket) AcceptedN() int { return b.N - b.RejectedN }

// ComparedQuantile returns the q-quantile of compared-tool time; NaN when empty.
func (b *Bucket) ComparedQuantile(q float64) float64 {
	return quantile(b.comparedSamples, q)
}

// DatasetReport is the aggregated outcome for one dataset.
type DatasetReport struct {
	Dataset   string          `json:"dataset"`
	Confusion ConfusionMatrix `json:"confusion"`
	Buckets   []*Bucket       `json:"buckets"`
}

// Pairs is the number of joined histories behind the report.
func (r DatasetReport) Pairs() int { return r.Confusion.Total() }

// Accumulator collects statistics for a single dataset. Create a new one per
// dataset; it is not safe for concurrent use.
type Accumulator struct {
	dataset   string
	confusion ConfusionMatrix
	buckets   map[BucketKey]*Bucket
}

func NewAccumulator(dataset string) *Accumulator {
	return &Accumulator{
		dataset: dataset,
		buckets: make(map[BucketKey]*Bucket),
	}
}

// Add folds one joined pair into the accumulator.
func (a *Accumulator) Add(p Pair) {
	k := p.Key.Bucket()
	b, ok := a.buckets[k]
	if !ok {
		b = &Bucket{Key: k}
		a.buckets[k] = b
	}
	b.N++
	b.ReferenceMs += p.Reference.DurationMs
	b.ComparedMs += p.Compared.TotalMs
	b.ConstructMs += p.Compared.ConstructMs
	b.SolveMs += p.Compared.SolveMs
	b.comparedSamples = append(b.comparedSamples, p.Compared.TotalMs)
	if !p.Compared.Accepted {
		b.RejectedN++
		b.RejectedMs += p.Compared.TotalMs
	}

	a.confusion.Classify(p.Compared.Accepted, p.Reference.Accepted)
}

// Report returns the accumulated statistics with buckets ordered by params.
func (a *Accumulator) Report() DatasetReport {
	buckets := make([]*Bucket, 0, len(a.buckets))
	for _, b := range a.buckets {
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Key.Params.Less(buckets[j].Key.Params)
	})
	return DatasetReport{
		Dataset:   a.dataset,
		Confusion: a.confusion,
		Buckets:   buckets,
	}
}

// Aggregate folds pairs into a fresh accumulator for dataset.
func Aggregate(dataset string, pairs []Pair) DatasetReport {
	acc := NewAccumulator(dataset)
	for _, p := range pairs {
		acc.Add(p)
	}
	return acc.Report()
}
