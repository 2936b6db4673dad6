// Package diffset computes set differences between two identifier
// producers.
package diffset

import (
	"context"
	"sort"
)

// Differences awaits both source and target, treats their results as
// sets, and returns source \ target as a deterministically ordered
// slice (ascending by id) so that batching is reproducible for
// diagnostics.
func Differences(ctx context.Context, source, target func(context.Context) ([]int64, error)) ([]int64, error) {
	sourceIDs, err := source(ctx)
	if err != nil {
		return nil, err
	}
	targetIDs, err := target(ctx)
	if err != nil {
		return nil, err
	}

	inTarget := make(map[int64]struct{}, len(targetIDs))
	for _, id := range targetIDs {
		inTarget[id] = struct{}{}
	}

	seen := make(map[int64]struct{}, len(sourceIDs))
	result := make([]int64, 0, len(sourceIDs))
	for _, id := range sourceIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := inTarget[id]; !ok {
			result = append(result, id)
		}
	}

	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result, nil
}
