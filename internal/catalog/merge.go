package catalog

// DedupKey extracts a comparison key from a product. An empty key never
// matches anything (a feed entry without a handle cannot collide on handle).
type DedupKey func(Product) string

// DefaultDedupKeys are applied in order when merging the secondary feed:
// id, handle, then normalized name.
var DefaultDedupKeys = []DedupKey{
	func(p Product) string { return p.ID.String() },
	func(p Product) string { return p.Handle },
	func(p Product) string { return NormalizeName(p.Name) },
}

// Merge combines two catalogs, dropping entries of b that collide with an
// already-seen product under any key function. First seen wins: entries of
// a are kept verbatim and keep their order, surviving entries of b are
// appended in their original order.
func Merge(a, b []Product, keys []DedupKey) []Product {
	if len(keys) == 0 {
		keys = DefaultDedupKeys
	}

	seen := make([]map[string]bool, len(keys))
	for i := range seen {
		seen[i] = make(map[string]bool, len(a))
	}

	mark := func(p Product) {
		for i, key := range keys {
			if k := key(p); k != "" {
				seen[i][k] = true
			}
		}
	}
	dup := func(p Product) bool {
		for i, key := range keys {
			if k := key(p); k != "" && seen[i][k] {
				return true
			}
		}
		return false
	}

	out := make([]Product, 0, len(a)+len(b))
	for _, p := range a {
		out = append(out, p)
		mark(p)
	}
	for _, p := range b {
		if dup(p) {
			continue
		}
		out = append(out, p)
		mark(p)
	}
	return out
}
