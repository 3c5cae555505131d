package index

import "context"

// KeyIndex remembers which observation keys were already collected.
type KeyIndex interface {
	// Known returns the subset of candidates already collected.
	Known(ctx context.Context, candidates []string) (map[string]struct{}, error)
	// Add records keys that were just appended.
	Add(ctx context.Context, keys []string) error
}
