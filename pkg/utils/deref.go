package utils

// SafeDeref dereferences p, returning the zero value when p is nil.
// The AWS SDK models optional fields as pointers, so this shows up on
// nearly every response field.
func SafeDeref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
