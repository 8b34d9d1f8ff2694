// Package uniqueid provides the monotonic counter the Inline renamer
// draws suffixes from.
//
// A Source is a small, explicitly threaded stateful helper rather than
// package-level mutable state: a value the caller owns and resets,
// never a global.
package uniqueid

// Source is a resettable, monotonically increasing counter. The zero value
// is ready to use and starts at 0.
type Source struct {
	next int
}

// Next returns the next unused id and advances the counter.
func (s *Source) Next() int {
	id := s.next
	s.next++
	return id
}

// Reset returns the source to its initial state, so that two passes over
// structurally identical input produce byte-identical output regardless
// of what ran before.
func (s *Source) Reset() {
	s.next = 0
}
