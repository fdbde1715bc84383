package types

// Optional holds a value that may be left unset by the caller.
// The zero value is unset. Unset differs from an empty value: Set("") is set.
type Optional[T any] struct {
	value T
	set   bool
}

// Set returns an Optional carrying v.
func Set[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// Unset returns an Optional with no value.
func Unset[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it was set.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSet reports whether a value was supplied.
func (o Optional[T]) IsSet() bool { return o.set }

// OrElse returns the value, or def when unset.
func (o Optional[T]) OrElse(def T) T {
	if !o.set {
		return def
	}
	return o.value
}
