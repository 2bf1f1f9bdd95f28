// Package memview exposes the raw byte image of a live value so that
// checksums, fault injection, and scrub registration can treat it as an
// externally owned byte range. The view borrows the memory; it never takes
// ownership, and the caller must keep the value alive for the lifetime of
// the view.
//
// Views are only meaningful for plain-data values. A value containing
// pointers, maps, slices, or strings has a byte image that includes Go
// runtime addresses, and corrupting those is not a single-event-upset
// model, it is undefined behavior.
package memview

import "unsafe"

// BytesOf returns the byte image of *p. The slice aliases p's storage:
// writes through the slice mutate the value in place.
func BytesOf[T any](p *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(p)), unsafe.Sizeof(*p))
}

// SizeOf returns the in-memory size of T in bytes.
func SizeOf[T any]() int {
	var v T
	return int(unsafe.Sizeof(v))
}
