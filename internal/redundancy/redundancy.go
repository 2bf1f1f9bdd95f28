package redundancy

// Cell is the capability surface shared by every container variant.
// Repair reports whether a discrepancy was found and corrected; it is
// idempotent and always safe to call.
type Cell[T comparable] interface {
	Get() T
	Set(v T)
	HasErrors() bool
	Repair() bool
}

// Repairer is the type-erased slice of the Cell contract consumed by the
// scrubber registry, which does not know the concrete value type.
type Repairer interface {
	Repair() bool
}
