// Package dedupe collapses snapshot history down to one price point per
// model per day.
package dedupe

import "github.com/atorrez/pricewatch/pkg/model"

// Merge concatenates existing history and incoming snapshots, keeping the
// first occurrence of every (model, price, day-bucket) key. Relative order
// of first appearance is preserved; existing history always wins over an
// incoming duplicate. Pure function, no I/O.
func Merge(existing, incoming []model.Snapshot) []model.Snapshot {
	seen := make(map[string]struct{}, len(existing)+len(incoming))
	out := make([]model.Snapshot, 0, len(existing)+len(incoming))

	for _, list := range [2][]model.Snapshot{existing, incoming} {
		for _, s := range list {
			k := s.Key()
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}
