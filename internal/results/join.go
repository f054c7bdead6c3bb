// internal/results/join.go
package results

import "sort"

// Join pairs every compared record of dataset with the reference record of the
// same key. Pairs are ordered by params, then history id. A compared key
// without a reference record fails the whole join.
func Join(dataset string, compared ComparedSet, reference ReferenceSet) ([]Pair, error) {
	var keys []ExperimentKey
	for k := range compared {
		if k.Dataset == dataset {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return nil, ErrNoRecords
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Params != keys[j].Params {
			return keys[i].Params.Less(keys[j].Params)
		}
		return keys[i].History < keys[j].History
	})

	pairs := make([]Pair, 0, len(keys))
	for _, k := range keys {
		ref, ok := reference[k]
		if !ok {
			return nil, &MissingJoinRecordError{Key: k}
		}
		pairs = append(pairs, Pair{Key: k, Reference: ref, Compared: compared[k]})
	}
	return pairs, nil
}
