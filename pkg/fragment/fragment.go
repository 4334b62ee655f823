package fragment

// Fragment is one immutable line of text.
type Fragment string

// String implements fmt.Stringer.
func (f Fragment) String() string {
	return string(f)
}

// Sequence is an ordered list of fragments.
type Sequence []Fragment

// FromStrings converts plain strings into a Sequence.
func FromStrings(lines ...string) Sequence {
	out := make(Sequence, len(lines))
	for i, line := range lines {
		out[i] = Fragment(line)
	}
	return out
}

// Clone returns a copy that shares no backing array with s. A nil sequence
// clones to an empty, non-nil one so callers can append safely.
func (s Sequence) Clone() Sequence {
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}

// Strings returns the fragments as plain strings.
func (s Sequence) Strings() []string {
	out := make([]string, len(s))
	for i, f := range s {
		out[i] = string(f)
	}
	return out
}

// Last returns the trailing n fragments. n is expected to be within
// [0, len(s)]; out of range values are clamped, validation belongs to the
// caller.
func (s Sequence) Last(n int) Sequence {
	if n <= 0 {
		return Sequence{}
	}
	if n > len(s) {
		n = len(s)
	}
	return s[len(s)-n:]
}

// SameElements reports whether a and b hold the same multiset of fragments,
// regardless of order.
func SameElements(a, b Sequence) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[Fragment]int, len(a))
	for _, f := range a {
		counts[f]++
	}
	for _, f := range b {
		counts[f]--
		if counts[f] < 0 {
			return false
		}
	}
	return true
}
