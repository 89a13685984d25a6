package patch

// Coalesce returns the value pointed to by ptr if it's not nil, otherwise returns fallback
func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}

// Changes reports whether ptr is set to something other than current.
func Changes[T comparable](ptr *T, current T) bool {
	return ptr != nil && *ptr != current
}
