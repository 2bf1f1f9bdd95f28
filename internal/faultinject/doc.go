// Package faultinject deliberately corrupts memory to emulate radiation
// effects and drives repeated resilience trials against the redundancy
// containers. It is consumed only by verification code and the stress CLI,
// never by production call paths.
//
// The injector operates on externally owned byte ranges: it borrows a view
// for the duration of a call and never takes ownership of the memory it
// corrupts. Every fault type has a "count and locality" contract, the
// strictest being SingleBitFlip: exactly one bit differs between the pre-
// and post-images.
package faultinject
