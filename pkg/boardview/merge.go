package boardview

// DedupeByID keeps the first occurrence of every id, order preserved
func DedupeByID[T any](items []T, id func(T) string) []T {
	seen := make(map[string]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		key := id(item)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}

// MergeBoards owned boards first, then guest boards not already listed
func MergeBoards[T any](owned, guest []T, id func(T) string) []T {
	all := make([]T, 0, len(owned)+len(guest))
	all = append(all, owned...)
	all = append(all, guest...)
	return DedupeByID(all, id)
}
