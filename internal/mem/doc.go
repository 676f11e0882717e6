// Package mem defines the boundary between the engine and the observed
// process: typed reads at raw addresses, pointer-chase chains, and the
// resolved per-session layout of everything the sampling pass reads.
//
// The package deliberately contains no OS-specific attachment code. Walking
// a managed runtime's class metadata to turn symbolic field paths into
// offsets is the job of an external Resolver; reading bytes out of the
// target process is the job of an external Reader. The engine only ever
// consumes the resulting opaque chains.
//
// Every failed read surfaces as a ReadError. The error carries no detail
// beyond "this read failed on this tick" - the sampling pass absorbs it into
// the watched values' fallback policy and the system self-heals on the next
// successful read.
package mem
