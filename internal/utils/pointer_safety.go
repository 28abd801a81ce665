package utils

// Value dereferences v, returning the zero value for nil.
func Value[T any](v *T) T {
	if v == nil {
		return *new(T)
	}
	return *v
}

func Ptr[T any](v T) *T {
	return &v
}

// Assign copies *src into *dst when src is set. Used by partial updates,
// where a nil field in the request means "leave unchanged".
func Assign[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
