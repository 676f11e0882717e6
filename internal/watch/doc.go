// Package watch implements typed watched values: sampled quantities that
// retain their immediately prior sample so the decision layer can ask
// edge-detection questions ("did this value just become X?").
//
// A Value starts empty ("never sampled"). Every successful sample shifts
// current into previous before installing the new sample. Failed samples are
// absorbed here - Hold re-installs the last good value, SetZero installs the
// type's zero value - so the rest of the system only ever sees values,
// never read errors.
//
// All queries are pure and O(1). An empty Value answers every query with
// "no signal": Changed and friends report false, Current reports not-ok.
// This is what keeps a session in which a quantity has never been read from
// spuriously triggering a start, split, or reset.
package watch
