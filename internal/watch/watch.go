package watch

// Pair is one step of a watched value's history: the sample from the
// previous tick and the sample from the current tick.
type Pair[T comparable] struct {
	Previous T
	Current  T
}

// Changed reports whether the sample changed between the two ticks.
func (p Pair[T]) Changed() bool {
	return p.Previous != p.Current
}

// ChangedTo reports whether the sample just became v.
func (p Pair[T]) ChangedTo(v T) bool {
	return p.Previous != v && p.Current == v
}

// ChangedFrom reports whether the sample just stopped being v.
func (p Pair[T]) ChangedFrom(v T) bool {
	return p.Previous == v && p.Current != v
}

// Value wraps a single sampled quantity together with its immediately prior
// sample. The zero value is ready to use and means "never sampled".
//
// INVARIANTS:
//   - Once a pair exists, every update shifts Current into Previous before
//     installing the new sample.
//   - A failed sample never installs a sentinel: Hold repeats the last good
//     value, and an empty Value stays empty under Hold.
//   - Updated exactly once per tick by the sampling pass; queries between
//     updates are pure and side-effect free.
type Value[T comparable] struct {
	pair  Pair[T]
	valid bool
}

// Set installs a successful sample, shifting the current sample into the
// previous slot. The first Set seeds both slots with the sample, so no edge
// is reported until a second, different sample arrives.
func (w *Value[T]) Set(v T) {
	if !w.valid {
		w.pair = Pair[T]{Previous: v, Current: v}
		w.valid = true
		return
	}
	w.pair.Previous = w.pair.Current
	w.pair.Current = v
}

// Hold absorbs a failed sample under the hold-on-failure policy: the last
// good value is re-installed, consuming any pending edge. A Value that has
// never been sampled stays empty.
func (w *Value[T]) Hold() {
	if !w.valid {
		return
	}
	w.Set(w.pair.Current)
}

// SetZero absorbs a failed sample under the default-on-failure policy by
// installing the type's zero value. Used only for quantities whose zero is a
// meaningful "nothing" rather than a plausible reading.
func (w *Value[T]) SetZero() {
	var zero T
	w.Set(zero)
}

// Update is the single entry point for the sampling pass: installs the
// sample when ok, otherwise holds the last good value. Never fails.
func (w *Value[T]) Update(v T, ok bool) {
	if ok {
		w.Set(v)
		return
	}
	w.Hold()
}

// Pair returns the (previous, current) pair, and false if never sampled.
func (w *Value[T]) Pair() (Pair[T], bool) {
	return w.pair, w.valid
}

// Current returns the latest sample, and false if never sampled.
func (w *Value[T]) Current() (T, bool) {
	return w.pair.Current, w.valid
}

// Previous returns the prior sample, and false if never sampled.
func (w *Value[T]) Previous() (T, bool) {
	return w.pair.Previous, w.valid
}

// CurrentOr returns the latest sample, or def if never sampled.
func (w *Value[T]) CurrentOr(def T) T {
	if !w.valid {
		return def
	}
	return w.pair.Current
}

// Changed reports whether the value changed between the last two ticks.
// False if the value has never been sampled.
func (w *Value[T]) Changed() bool {
	return w.valid && w.pair.Changed()
}

// ChangedTo reports whether the value just became v.
// False if the value has never been sampled.
func (w *Value[T]) ChangedTo(v T) bool {
	return w.valid && w.pair.ChangedTo(v)
}

// ChangedFrom reports whether the value just stopped being v.
// False if the value has never been sampled.
func (w *Value[T]) ChangedFrom(v T) bool {
	return w.valid && w.pair.ChangedFrom(v)
}
