package model

// Ptr returns a pointer to v. Convenience for optional Business fields.
func Ptr[T any](v T) *T { return &v }
